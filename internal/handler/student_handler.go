package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/repository"
	"github.com/sims/sims-backend/internal/response"
	"github.com/sims/sims-backend/internal/service"
	"github.com/sims/sims-backend/internal/tabular"
	"github.com/sims/sims-backend/internal/validator"
)

// StudentService is the student logic used by StudentHandler.
type StudentService interface {
	Search(ctx context.Context, filter model.StudentFilter) ([]model.Student, error)
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	Create(ctx context.Context, req model.StudentRequest) (*model.Student, error)
	Update(ctx context.Context, id int64, req model.StudentRequest) (*model.Student, error)
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context, w io.Writer) error
}

// Importer loads students from an uploaded file.
type Importer interface {
	Import(ctx context.Context, fileName string, r io.Reader) (*model.ImportReport, error)
}

var (
	_ StudentService = (*service.StudentService)(nil)
	_ Importer       = (*service.ImportService)(nil)
)

// StudentHandler handles student records, import and export.
type StudentHandler struct {
	students       StudentService
	importer       Importer
	maxUploadBytes int64
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(students StudentService, importer Importer, maxUploadBytes int64) *StudentHandler {
	return &StudentHandler{
		students:       students,
		importer:       importer,
		maxUploadBytes: maxUploadBytes,
	}
}

// ListStudents godoc
// GET /api/v1/students?q=&grade=&stream=
// Lists all students, or those matching every given filter.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var filter model.StudentFilter
	if q, ok := c.GetQuery("q"); ok {
		filter.Query = &q
	}
	if grade, ok := c.GetQuery("grade"); ok {
		filter.Grade = &grade
	}
	if stream, ok := c.GetQuery("stream"); ok {
		filter.Stream = &stream
	}

	students, err := h.students.Search(c.Request.Context(), filter)
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, students)
}

// GetStudent godoc
// GET /api/v1/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	student, err := h.students.GetByID(c.Request.Context(), id)
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, student)
}

// CreateStudent godoc
// POST /api/v1/students
// Creates a student. The admission number must be unique.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req model.StudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, student)
}

// UpdateStudent godoc
// PUT /api/v1/students/:id
// Replaces every field of an existing student.
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.StudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.students.Update(c.Request.Context(), id, req)
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, student)
}

// DeleteStudent godoc
// DELETE /api/v1/students/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.MessageResponse{Message: "Student deleted successfully"})
}

// ExportStudents godoc
// GET /api/v1/students/export
// Downloads all students as students.csv.
func (h *StudentHandler) ExportStudents(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.students.Export(c.Request.Context(), &buf); err != nil {
		failWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="students.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ImportStudents godoc
// POST /api/v1/students/import
// Imports students from a multipart "file" field (.csv, .xlsx or .xls).
func (h *StudentHandler) ImportStudents(c *gin.Context) {
	if c.Request.ContentLength > h.maxUploadBytes {
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
			return
		}
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	report, err := h.importer.Import(c.Request.Context(), header.Filename, file)
	if err != nil {
		failImport(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ImportResponse{
		Message: "Uploaded the file successfully: " + header.Filename,
		Report:  *report,
	})
}

func failImport(c *gin.Context, err error) {
	msg := "Could not upload the file: " + err.Error()
	switch {
	case errors.Is(err, tabular.ErrUnsupportedFormat):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrUnsupportedFile, msg)
	case errors.Is(err, service.ErrImportIO):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrImportFailed, msg)
	case errors.Is(err, repository.ErrConstraintViolation):
		response.FailWithMessage(c, http.StatusConflict, response.ErrDuplicateAdmissionNumber, msg)
	default:
		_ = c.Error(err)
		response.FailWithMessage(c, http.StatusInternalServerError, response.ErrImportFailed,
			"Could not upload the file: internal error")
	}
}
