package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/sims/sims-backend/internal/logger"
	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/tabular"
)

// ErrImportIO is returned when an uploaded file cannot be read.
var ErrImportIO = errors.New("could not read the uploaded file")

// ImportService loads students in bulk from uploaded files.
type ImportService struct {
	store StudentStore
	log   zerolog.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(store StudentStore, log zerolog.Logger) *ImportService {
	return &ImportService{
		store: store,
		log:   logger.Component(log, "import_service"),
	}
}

// Import reads fileName's rows from r and saves every well-formed row in one
// batch. Malformed rows are skipped and only reported by number. The format
// is checked before anything is read or stored.
func (s *ImportService) Import(ctx context.Context, fileName string, r io.Reader) (*model.ImportReport, error) {
	format, err := tabular.DetectFormat(fileName)
	if err != nil {
		return nil, err
	}

	rows, err := tabular.Read(format, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportIO, err)
	}

	report := &model.ImportReport{
		FileName:    fileName,
		TotalRows:   len(rows),
		SkippedRows: []int{},
	}

	students := make([]*model.Student, 0, len(rows))
	for _, row := range rows {
		student, err := tabular.MapRow(format, row)
		if err != nil {
			s.log.Warn().Err(err).Str("file", fileName).Int("row", row.Line).Msg("Skipping import row")
			report.SkippedRows = append(report.SkippedRows, row.Line)
			continue
		}
		students = append(students, student)
	}

	if err := s.store.CreateBatch(ctx, students); err != nil {
		return nil, err
	}

	report.Imported = len(students)
	report.Skipped = len(report.SkippedRows)

	s.log.Info().
		Str("file", fileName).
		Int("total", report.TotalRows).
		Int("imported", report.Imported).
		Int("skipped", report.Skipped).
		Msg("Import finished")

	return report, nil
}
