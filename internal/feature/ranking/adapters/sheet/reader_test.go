package sheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	data := "\ufeffUID,Name,Level,Job_Name,Job_Code,Money,Play_Time,Exp\n" +
		"hero01,Alice,12,Knight,2,\"1,500\",3600,340\n" +
		"hero02,Bob,,,,,,\n" +
		",,,,,,,\n" +
		"hero03,Carol,7.0,,,,,12.0\n"

	rows, err := ReadCSV(strings.NewReader(data))

	require.NoError(t, err)
	require.Len(t, rows, 3, "blank rows are skipped")

	alice := rows[0]
	assert.Equal(t, "hero01", alice.CharacterID)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, 12, alice.Level)
	require.NotNil(t, alice.JobName)
	assert.Equal(t, "Knight", *alice.JobName)
	require.NotNil(t, alice.JobCode)
	assert.Equal(t, 2, *alice.JobCode)
	require.NotNil(t, alice.Money)
	assert.Equal(t, int64(1500), *alice.Money)
	assert.Equal(t, int64(340), alice.ExpOrZero())

	bob := rows[1]
	assert.Equal(t, 0, bob.Level, "blank level is left for the importer to default")
	assert.Nil(t, bob.JobName)
	assert.Nil(t, bob.JobCode)
	assert.Nil(t, bob.Money)
	assert.Nil(t, bob.PlayTime)
	assert.Nil(t, bob.Exp)

	assert.Equal(t, 7, rows[2].Level)
	assert.Equal(t, int64(12), rows[2].ExpOrZero())
}

func TestReadCSV_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "empty input", data: "", wantErr: "missing header row"},
		{name: "missing id column", data: "name,level\nAlice,1\n", wantErr: `missing required column "character_id"`},
		{name: "missing name column", data: "uid,level\nhero01,1\n", wantErr: `missing required column "name"`},
		{name: "non numeric level", data: "uid,name,level\nhero01,Alice,high\n", wantErr: "row 2: level"},
		{name: "non numeric exp", data: "uid,name,exp\nhero01,Alice,1\nhero02,Bob,lots\n", wantErr: "row 3: exp"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ReadCSV(strings.NewReader(tt.data))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadFile_XLSX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "characters.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"character_id", "name", "level", "exp"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"hero01", "Alice", 50, 100}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"hero02", "Bob", 50, 200}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := ReadFile(path)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "hero02", rows[1].CharacterID)
	assert.Equal(t, 50, rows[1].Level)
	assert.Equal(t, int64(200), rows[1].ExpOrZero())
}

func TestReadFile_CSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "characters.csv")
	require.NoError(t, os.WriteFile(path, []byte("uid,name\nhero01,Alice\n"), 0o600))

	rows, err := ReadFile(path)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].Name)
}

func TestReadFile_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := ReadFile("characters.json")

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
