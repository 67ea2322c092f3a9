package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sims/sims-backend/internal/logger"
	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/tabular"
)

// StudentService handles student business logic.
type StudentService struct {
	store StudentStore
	log   zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(store StudentStore, log zerolog.Logger) *StudentService {
	return &StudentService{
		store: store,
		log:   logger.Component(log, "student_service"),
	}
}

// Search returns the students matching every present filter. Blank filter
// values count as absent; with no filter left it returns all students.
func (s *StudentService) Search(ctx context.Context, filter model.StudentFilter) ([]model.Student, error) {
	filter = normalizeFilter(filter)
	if filter.IsEmpty() {
		return s.store.List(ctx)
	}
	return s.store.Search(ctx, filter)
}

func normalizeFilter(f model.StudentFilter) model.StudentFilter {
	return model.StudentFilter{
		Query:  trimmedOrNil(f.Query),
		Grade:  trimmedOrNil(f.Grade),
		Stream: trimmedOrNil(f.Stream),
	}
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	return s.store.GetByID(ctx, id)
}

// Create inserts a new student. The admission number must be unique.
func (s *StudentService) Create(ctx context.Context, req model.StudentRequest) (*model.Student, error) {
	student := req.ToStudent(0)
	if err := s.store.Create(ctx, student); err != nil {
		return nil, err
	}
	s.log.Info().Int64("student_id", student.ID).Str("admission_number", student.AdmissionNumber).Msg("Student created")
	return student, nil
}

// Update replaces the fields of an existing student.
func (s *StudentService) Update(ctx context.Context, id int64, req model.StudentRequest) (*model.Student, error) {
	student := req.ToStudent(id)
	if err := s.store.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student by ID.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("student_id", id).Msg("Student deleted")
	return nil
}

// Export writes all students to w as CSV in ID order.
func (s *StudentService) Export(ctx context.Context, w io.Writer) error {
	students, err := s.store.List(ctx)
	if err != nil {
		return err
	}

	sw := tabular.NewStudentWriter(w)
	if err := sw.WriteHeader(); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for i := range students {
		if err := sw.Write(&students[i]); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}
