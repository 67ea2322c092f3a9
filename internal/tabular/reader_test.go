package tabular

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	t.Run("header is dropped and short rows are kept for mapping", func(t *testing.T) {
		data := "admission,name,grade,stream\n" +
			"A1,Amal Perera,12,Science\n" +
			"A2,Nimal Silva\n" +
			"A3\n" +
			"A4,Kamala,13\n" +
			"A5,Sunil,12,Arts,extra\n"

		rows, err := ReadCSV(strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, rows, 5)
		assert.Equal(t, 2, rows[0].Line)
		assert.Equal(t, []string{"A1", "Amal Perera", "12", "Science"}, rows[0].Cells)
		assert.Equal(t, []string{"A3"}, rows[2].Cells)
		assert.Equal(t, 6, rows[4].Line)
	})

	t.Run("broken quoting becomes a malformed row", func(t *testing.T) {
		data := "h1,h2\nA1,Amal\nA2,Ni\"mal\nA3,Kamal\n"

		rows, err := ReadCSV(strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.NoError(t, rows[0].Err)
		assert.True(t, errors.Is(rows[1].Err, ErrMalformedRow))
		assert.Equal(t, 3, rows[1].Line)
		assert.Equal(t, []string{"A3", "Kamal"}, rows[2].Cells)
	})

	t.Run("quoted fields", func(t *testing.T) {
		data := "h1,h2\n\"A,1\",\"O'Brien, Jr.\"\n"

		rows, err := ReadCSV(strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, []string{"A,1", "O'Brien, Jr."}, rows[0].Cells)
	})

	t.Run("empty and header-only files", func(t *testing.T) {
		rows, err := ReadCSV(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, rows)

		rows, err = ReadCSV(strings.NewReader("admission,name\n"))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		if len(row) == 0 {
			continue
		}
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadSpreadsheet(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Admission Number", "Full Name"},
		{"X1", "Ruwan Fernando"},
		{"X2"},
		{"X3", "Dilani Jayasuriya", "12", "Science"},
	})

	rows, err := ReadSpreadsheet(buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, []string{"X1", "Ruwan Fernando"}, rows[0].Cells)
	assert.Equal(t, []string{"X2"}, rows[1].Cells)
	assert.Equal(t, 4, rows[2].Line)
}

func TestReadSpreadsheetRejectsNonWorkbook(t *testing.T) {
	_, err := ReadSpreadsheet(strings.NewReader("not a zip archive"))
	assert.Error(t, err)
}

func TestMapRow(t *testing.T) {
	tests := []struct {
		name       string
		format     Format
		row        Row
		wantErr    bool
		wantGrade  string
		wantStream string
	}{
		{name: "two columns", format: FormatCSV, row: Row{Cells: []string{"A1", "Amal"}}},
		{name: "csv grade and stream", format: FormatCSV, row: Row{Cells: []string{"A1", "Amal", "12", "Science"}}, wantGrade: "12", wantStream: "Science"},
		{name: "csv grade only", format: FormatCSV, row: Row{Cells: []string{"A1", "Amal", "13"}}, wantGrade: "13"},
		{name: "spreadsheet ignores extra columns", format: FormatSpreadsheet, row: Row{Cells: []string{"A1", "Amal", "12", "Science"}}},
		{name: "one column", format: FormatCSV, row: Row{Cells: []string{"A1"}}, wantErr: true},
		{name: "blank admission number", format: FormatCSV, row: Row{Cells: []string{"  ", "Amal"}}, wantErr: true},
		{name: "blank name", format: FormatSpreadsheet, row: Row{Cells: []string{"A1", ""}}, wantErr: true},
		{name: "read error", format: FormatSpreadsheet, row: Row{Err: ErrMalformedRow}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := MapRow(tt.format, tt.row)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrMalformedRow))
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "A1", s.AdmissionNumber)
			assert.Equal(t, "Amal", s.FullName)
			assert.Equal(t, tt.wantGrade, s.Grade)
			assert.Equal(t, tt.wantStream, s.Stream)
		})
	}
}

func TestMapRowTrimsCells(t *testing.T) {
	s, err := MapRow(FormatCSV, Row{Cells: []string{" A9 ", " Saman Kumara ", " 12 ", ""}})
	require.NoError(t, err)
	assert.Equal(t, "A9", s.AdmissionNumber)
	assert.Equal(t, "Saman Kumara", s.FullName)
	assert.Equal(t, "12", s.Grade)
	assert.Empty(t, s.Stream)
}
