package tabular

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/sims/sims-backend/internal/model"
)

// ExportHeader is the first line of every student export.
const ExportHeader = "ID,Admission Number,Full Name,Grade,Stream"

// EscapeField doubles embedded quotes, then wraps the result in quotes when it
// contains a comma, a line break or a quote.
func EscapeField(s string) string {
	escaped := strings.ReplaceAll(s, `"`, `""`)
	if strings.ContainsAny(escaped, ",\n\r\"") {
		return `"` + escaped + `"`
	}
	return escaped
}

// StudentWriter writes students as CSV rows.
type StudentWriter struct {
	w *bufio.Writer
}

// NewStudentWriter creates a StudentWriter on w. Call Flush when done.
func NewStudentWriter(w io.Writer) *StudentWriter {
	return &StudentWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the export header line.
func (sw *StudentWriter) WriteHeader() error {
	_, err := sw.w.WriteString(ExportHeader + "\n")
	return err
}

// Write writes one student row.
func (sw *StudentWriter) Write(s *model.Student) error {
	fields := []string{
		strconv.FormatInt(s.ID, 10),
		EscapeField(s.AdmissionNumber),
		EscapeField(s.FullName),
		EscapeField(s.Grade),
		EscapeField(s.Stream),
	}
	_, err := sw.w.WriteString(strings.Join(fields, ",") + "\n")
	return err
}

// Flush writes any buffered data to the underlying writer.
func (sw *StudentWriter) Flush() error {
	return sw.w.Flush()
}
