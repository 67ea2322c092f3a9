package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sims/sims-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

// ErrMalformedRow marks a data row that cannot become a student.
var ErrMalformedRow = errors.New("malformed row")

// Row is one data row of an uploaded file. Line is the 1-based row number in
// the file, header included. Err is set when the row could not be read.
type Row struct {
	Line  int
	Cells []string
	Err   error
}

// Read dispatches to the reader for the given format.
func Read(format Format, r io.Reader) ([]Row, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r)
	case FormatSpreadsheet:
		return ReadSpreadsheet(r)
	}
	return nil, ErrUnsupportedFormat
}

// ReadCSV returns every record after the first. Records may have any number
// of fields. A record the parser rejects is returned as a malformed row and
// reading continues with the next line.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows []Row
	first := true
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			if first {
				first = false
				continue
			}
			rows = append(rows, Row{
				Line: parseErr.StartLine,
				Err:  fmt.Errorf("%w: %v", ErrMalformedRow, parseErr.Err),
			})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if first {
			first = false
			continue
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, Row{Line: line, Cells: record})
	}
	return rows, nil
}

// ReadSpreadsheet returns the rows of the first sheet, skipping row 1 (the
// header) and rows with no cells at all.
func ReadSpreadsheet(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	it, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	defer it.Close()

	var rows []Row
	line := 0
	for it.Next() {
		line++
		cells, err := it.Columns()
		if line == 1 {
			continue
		}
		if err != nil {
			rows = append(rows, Row{Line: line, Err: fmt.Errorf("%w: %v", ErrMalformedRow, err)})
			continue
		}
		if len(cells) == 0 {
			continue
		}
		rows = append(rows, Row{Line: line, Cells: cells})
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// MapRow turns a row into a student. Column 0 is the admission number and
// column 1 the full name. CSV rows may also carry grade and stream in columns
// 2 and 3; spreadsheet rows only map the first two columns.
func MapRow(format Format, row Row) (*model.Student, error) {
	if row.Err != nil {
		return nil, row.Err
	}
	if len(row.Cells) < 2 {
		return nil, fmt.Errorf("%w: expected at least 2 columns, got %d", ErrMalformedRow, len(row.Cells))
	}

	s := &model.Student{
		AdmissionNumber: strings.TrimSpace(row.Cells[0]),
		FullName:        strings.TrimSpace(row.Cells[1]),
	}
	if s.AdmissionNumber == "" {
		return nil, fmt.Errorf("%w: admission number is empty", ErrMalformedRow)
	}
	if s.FullName == "" {
		return nil, fmt.Errorf("%w: full name is empty", ErrMalformedRow)
	}

	if format == FormatCSV {
		if len(row.Cells) > 2 {
			s.Grade = strings.TrimSpace(row.Cells[2])
		}
		if len(row.Cells) > 3 {
			s.Stream = strings.TrimSpace(row.Cells[3])
		}
	}
	return s, nil
}
