package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/response"
	"github.com/sims/sims-backend/internal/service"
)

// Aggregator computes student counts for the dashboard and reports.
type Aggregator interface {
	Distribution(ctx context.Context, field model.StudentField) ([]model.DistributionItem, error)
	Stats(ctx context.Context) (*model.DashboardStats, error)
	Demographics(ctx context.Context) (*model.Demographics, error)
	StreamSummary(ctx context.Context) ([]model.DistributionItem, error)
	AdmissionStats(ctx context.Context) (*model.AdmissionStats, error)
}

var _ Aggregator = (*service.DashboardService)(nil)

// DashboardHandler handles dashboard and report endpoints.
type DashboardHandler struct {
	agg Aggregator
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(agg Aggregator) *DashboardHandler {
	return &DashboardHandler{agg: agg}
}

// GetStats godoc
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.agg.Stats(c.Request.Context())
	if err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// GetDemographics godoc
// GET /api/v1/dashboard/demographics
func (h *DashboardHandler) GetDemographics(c *gin.Context) {
	d, err := h.agg.Demographics(c.Request.Context())
	if err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

// GetDistribution godoc
// GET /api/v1/dashboard/distribution/:field
// Counts students per value of grade, gender or stream.
func (h *DashboardHandler) GetDistribution(c *gin.Context) {
	items, err := h.agg.Distribution(c.Request.Context(), model.StudentField(c.Param("field")))
	if err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GetStreamSummary godoc
// GET /api/v1/reports/stream-summary
func (h *DashboardHandler) GetStreamSummary(c *gin.Context) {
	items, err := h.agg.StreamSummary(c.Request.Context())
	if err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GetAdmissionStats godoc
// GET /api/v1/reports/admission-stats
func (h *DashboardHandler) GetAdmissionStats(c *gin.Context) {
	stats, err := h.agg.AdmissionStats(c.Request.Context())
	if err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
