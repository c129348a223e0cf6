// Package sheet は表計算ファイル（.xlsx / .csv）からキャラクター行を読み込みます。
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ranking_backend/internal/feature/ranking/domain/entity"
)

// ErrUnsupportedFormat は .xlsx / .csv 以外のファイルに対して返されます。
var ErrUnsupportedFormat = errors.New("unsupported file format")

// headerAliases は受け付けるヘッダー名を正規の列キーに対応付けます。
var headerAliases = map[string]string{
	"character_id": "character_id",
	"characterid":  "character_id",
	"uid":          "character_id",
	"id":           "character_id",
	"name":         "name",
	"level":        "level",
	"lv":           "level",
	"job_name":     "job_name",
	"jobname":      "job_name",
	"job_code":     "job_code",
	"jobcode":      "job_code",
	"money":        "money",
	"gold":         "money",
	"play_time":    "play_time",
	"playtime":     "play_time",
	"exp":          "exp",
	"experience":   "exp",
}

// ReadFile は path から全行を読み込みます。先頭行はヘッダーでなければなりません。
func ReadFile(path string) ([]entity.Character, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func readXLSX(path string) ([]entity.Character, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return parseRows(rows)
}

// ReadCSV はCSVデータからキャラクター行を読み込みます。
func ReadCSV(r io.Reader) ([]entity.Character, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) ([]entity.Character, error) {
	if len(rows) == 0 {
		return nil, errors.New("missing header row")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if canonical, ok := headerAliases[key]; ok {
			if _, dup := cols[canonical]; !dup {
				cols[canonical] = i
			}
		}
	}
	for _, required := range []string{"character_id", "name"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	out := make([]entity.Character, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		line := n + 2
		cell := func(key string) string {
			i, ok := cols[key]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		c := entity.Character{
			CharacterID: cell("character_id"),
			Name:        cell("name"),
		}
		var err error
		if c.Level, err = parseInt(cell("level")); err != nil {
			return nil, fmt.Errorf("row %d: level: %w", line, err)
		}
		if v := cell("job_name"); v != "" {
			c.JobName = &v
		}
		if c.JobCode, err = parseOptionalInt(cell("job_code")); err != nil {
			return nil, fmt.Errorf("row %d: job_code: %w", line, err)
		}
		if c.Money, err = parseOptionalInt64(cell("money")); err != nil {
			return nil, fmt.Errorf("row %d: money: %w", line, err)
		}
		if c.PlayTime, err = parseOptionalInt64(cell("play_time")); err != nil {
			return nil, fmt.Errorf("row %d: play_time: %w", line, err)
		}
		if c.Exp, err = parseOptionalInt64(cell("exp")); err != nil {
			return nil, fmt.Errorf("row %d: exp: %w", line, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseInt は "12"、"12.0"、"1,200" のような数値を解析します。空セルは0です。
func parseInt(s string) (int, error) {
	v, err := parseOptionalInt64(s)
	if err != nil || v == nil {
		return 0, err
	}
	return int(*v), nil
}

func parseOptionalInt(s string) (*int, error) {
	v, err := parseOptionalInt64(s)
	if err != nil || v == nil {
		return nil, err
	}
	n := int(*v)
	return &n, nil
}

func parseOptionalInt64(s string) (*int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	n := int64(f)
	return &n, nil
}
