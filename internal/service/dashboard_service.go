package service

import (
	"context"
	"errors"

	"github.com/sims/sims-backend/internal/model"
)

// ErrUnsupportedField is returned when a distribution is requested for a
// field that cannot be grouped.
var ErrUnsupportedField = errors.New("unsupported field")

// DashboardService aggregates student counts for the dashboard and reports.
type DashboardService struct {
	store StudentStore
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(store StudentStore) *DashboardService {
	return &DashboardService{store: store}
}

// Distribution returns the student count per distinct value of field.
func (s *DashboardService) Distribution(ctx context.Context, field model.StudentField) ([]model.DistributionItem, error) {
	if !field.Valid() {
		return nil, ErrUnsupportedField
	}
	return s.store.GroupCount(ctx, field)
}

// Stats returns the dashboard summary counts.
func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.DashboardStats{TotalStudents: total}
	counts := []struct {
		field model.StudentField
		value string
		dst   *int
	}{
		{model.FieldGrade, model.Grade12, &stats.Grade12Count},
		{model.FieldGrade, model.Grade13, &stats.Grade13Count},
		{model.FieldGender, model.GenderMale, &stats.MaleCount},
		{model.FieldGender, model.GenderFemale, &stats.FemaleCount},
	}

	for _, c := range counts {
		n, err := s.store.CountWhere(ctx, c.field, c.value)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	// Students carry no admission date; grade 12 stands in for this year's intake.
	stats.NewAdmissionsThisYear = stats.Grade12Count
	return stats, nil
}

// Demographics returns the stream, gender and grade distributions.
func (s *DashboardService) Demographics(ctx context.Context) (*model.Demographics, error) {
	stream, err := s.store.GroupCount(ctx, model.FieldStream)
	if err != nil {
		return nil, err
	}
	gender, err := s.store.GroupCount(ctx, model.FieldGender)
	if err != nil {
		return nil, err
	}
	grade, err := s.store.GroupCount(ctx, model.FieldGrade)
	if err != nil {
		return nil, err
	}
	return &model.Demographics{
		StreamDistribution: stream,
		GenderDistribution: gender,
		GradeDistribution:  grade,
	}, nil
}

// StreamSummary returns the student count per stream.
func (s *DashboardService) StreamSummary(ctx context.Context) ([]model.DistributionItem, error) {
	return s.store.GroupCount(ctx, model.FieldStream)
}

// AdmissionStats returns the admission report.
func (s *DashboardService) AdmissionStats(ctx context.Context) (*model.AdmissionStats, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &model.AdmissionStats{TotalAdmissions: total}, nil
}
