package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

func buildWorkbook(t *testing.T, sheet string, grid [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for r, cells := range grid {
		for c, v := range cells {
			if v == nil {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestDecode(t *testing.T) {
	buf := buildWorkbook(t, "Sheet1", [][]any{
		{"MATCHCODE", " Beginn Mantelzeit ", "Hallen", "Veranstaltungsart"},
		{"A/1", 45000.5, "H1, H2", "Messe"},
		{nil, nil, nil, nil},
		{"B2", 45001, nil, "Wartung"},
	})

	rows, err := Decode(buf, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, domain.RawRow{
		"MATCHCODE":         "A/1",
		"Beginn Mantelzeit": 45000.5,
		"Hallen":            "H1, H2",
		"Veranstaltungsart": "Messe",
	}, rows[0])

	_, ok := rows[1]["Hallen"]
	assert.False(t, ok, "empty cells are omitted")
	assert.Equal(t, 45001.0, rows[1]["Beginn Mantelzeit"])
}

func TestDecodeNamedSheet(t *testing.T) {
	buf := buildWorkbook(t, "Belegung", [][]any{
		{"MATCHCODE"},
		{"X"},
	})

	rows, err := Decode(buf, "Belegung")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "X", rows[0]["MATCHCODE"])
}

func TestDecodeUnknownSheet(t *testing.T) {
	buf := buildWorkbook(t, "Sheet1", [][]any{{"MATCHCODE"}})
	_, err := Decode(buf, "Missing")
	assert.Error(t, err)
}

func TestDecodeNotAWorkbook(t *testing.T) {
	_, err := Decode(strings.NewReader("MATCHCODE;Name\n"), "")
	assert.Error(t, err)
}

func TestDecodeKeepsTextCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellStr("Sheet1", "A1", "MATCHCODE"))
	require.NoError(t, f.SetCellStr("Sheet1", "B1", "Hallen"))
	require.NoError(t, f.SetCellStr("Sheet1", "C1", "Beginn Mantelzeit"))
	require.NoError(t, f.SetCellStr("Sheet1", "A2", "0815"))
	require.NoError(t, f.SetCellStr("Sheet1", "B2", "01"))
	require.NoError(t, f.SetCellFloat("Sheet1", "C2", 45000.5, -1, 64))
	require.NoError(t, f.SetCellStr("Sheet1", "A3", "815"))
	require.NoError(t, f.SetCellStr("Sheet1", "A4", "1.50"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := Decode(buf, "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.RawRow{
		"MATCHCODE":         "0815",
		"Hallen":            "01",
		"Beginn Mantelzeit": 45000.5,
	}, rows[0])
	assert.Equal(t, "815", rows[1]["MATCHCODE"])
	assert.Equal(t, "1.50", rows[2]["MATCHCODE"])
}

func TestFromGrid(t *testing.T) {
	rows := FromGrid([][]any{
		{" A ", "", "C", nil},
		{1.0, "ignored", "NaN", "extra", "beyond"},
		{"", nil, ""},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, domain.RawRow{"A": 1.0, "C": "NaN"}, rows[0])

	assert.Empty(t, FromGrid(nil))
}
