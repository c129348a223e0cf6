package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ranking_backend/internal/feature/ranking/domain/entity"
	"ranking_backend/internal/feature/ranking/usecase"
)

var ErrDB = errors.New("database error")

// mockCharacterWriter はCharacterWriterインターフェースのモック実装です。
type mockCharacterWriter struct {
	UpsertBatchFunc func(ctx context.Context, characters []entity.Character) error
	batches         [][]entity.Character
}

func (m *mockCharacterWriter) UpsertBatch(ctx context.Context, characters []entity.Character) error {
	m.batches = append(m.batches, append([]entity.Character(nil), characters...))
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, characters)
	}
	return nil
}

func TestImportUsecase_Import(t *testing.T) {
	t.Parallel()

	rows := []entity.Character{
		{CharacterID: " hero01 ", Name: " Alice ", Level: 12},
		{CharacterID: "hero02", Name: "Bob", Level: 0},
		{CharacterID: "", Name: "NoID", Level: 3},
		{CharacterID: "<hero>", Name: "Bad", Level: 3},
		{CharacterID: "hero03", Name: "", Level: 3},
		{CharacterID: "hero04", Name: "Dan", Level: 7, ID: 99, CreatedAt: time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	writer := &mockCharacterWriter{}
	uc := usecase.NewImportUsecase(writer)

	report, err := uc.Import(context.Background(), rows)

	require.NoError(t, err)
	assert.Equal(t, entity.ImportReport{Read: 6, Imported: 3, Skipped: 3}, report)
	require.Len(t, writer.batches, 1)

	got := writer.batches[0]
	require.Len(t, got, 3)
	assert.Equal(t, "hero01", got[0].CharacterID)
	assert.Equal(t, "Alice", got[0].Name)
	assert.Equal(t, 1, got[1].Level, "missing level should default to 1")
	assert.Zero(t, got[2].ID, "client supplied primary key must be dropped")
	assert.True(t, got[2].CreatedAt.IsZero(), "timestamps are assigned by the store")
}

func TestImportUsecase_Import_DuplicateIDsLastWins(t *testing.T) {
	t.Parallel()

	writer := &mockCharacterWriter{}
	uc := usecase.NewImportUsecase(writer)

	report, err := uc.Import(context.Background(), []entity.Character{
		{CharacterID: "hero01", Name: "Old", Level: 1},
		{CharacterID: "hero01", Name: "New", Level: 2},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, writer.batches, 1)
	assert.Equal(t, "New", writer.batches[0][0].Name)
}

func TestImportUsecase_Import_Batches(t *testing.T) {
	t.Parallel()

	rows := make([]entity.Character, 0, 1201)
	for i := 0; i < 1201; i++ {
		rows = append(rows, entity.Character{CharacterID: fmt.Sprintf("c%05d", i), Name: "n", Level: 1})
	}
	writer := &mockCharacterWriter{}
	uc := usecase.NewImportUsecase(writer)

	report, err := uc.Import(context.Background(), rows)

	require.NoError(t, err)
	assert.Equal(t, 1201, report.Imported)
	require.Len(t, writer.batches, 3)
	assert.Len(t, writer.batches[0], 500)
	assert.Len(t, writer.batches[1], 500)
	assert.Len(t, writer.batches[2], 201)
}

func TestImportUsecase_Import_WriterError(t *testing.T) {
	t.Parallel()

	calls := 0
	writer := &mockCharacterWriter{
		UpsertBatchFunc: func(ctx context.Context, characters []entity.Character) error {
			calls++
			if calls == 2 {
				return ErrDB
			}
			return nil
		},
	}
	rows := make([]entity.Character, 0, 1000)
	for i := 0; i < 1000; i++ {
		rows = append(rows, entity.Character{CharacterID: fmt.Sprintf("c%05d", i), Name: "n", Level: 1})
	}
	uc := usecase.NewImportUsecase(writer)

	report, err := uc.Import(context.Background(), rows)

	assert.ErrorIs(t, err, ErrDB)
	assert.Equal(t, 500, report.Imported, "first batch should be counted")
}

func TestImportUsecase_Import_Empty(t *testing.T) {
	t.Parallel()

	writer := &mockCharacterWriter{}
	uc := usecase.NewImportUsecase(writer)

	report, err := uc.Import(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, entity.ImportReport{}, report)
	assert.Empty(t, writer.batches)
}
