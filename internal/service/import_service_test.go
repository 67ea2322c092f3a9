package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/repository"
	"github.com/sims/sims-backend/internal/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestImportService_SkipsShortRows(t *testing.T) {
	data := "Admission Number,Full Name,Grade,Stream\n" +
		"R1,Row One,12,Science\n" +
		"R2,Row Two\n" +
		"R3\n" +
		"R4,Row Four,13,Arts\n" +
		"R5,Row Five\n"

	var saved []*model.Student
	store := new(MockStudentStore)
	store.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).([]*model.Student) }).
		Return(nil)
	svc := NewImportService(store, zerolog.Nop())

	report, err := svc.Import(context.Background(), "students.csv", strings.NewReader(data))
	require.NoError(t, err)

	require.Len(t, saved, 4)
	var admissions []string
	for _, s := range saved {
		admissions = append(admissions, s.AdmissionNumber)
	}
	assert.Equal(t, []string{"R1", "R2", "R4", "R5"}, admissions)
	assert.Equal(t, "12", saved[0].Grade)
	assert.Equal(t, "Science", saved[0].Stream)
	assert.Empty(t, saved[1].Grade)

	assert.Equal(t, 5, report.TotalRows)
	assert.Equal(t, 4, report.Imported)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, []int{4}, report.SkippedRows)
	store.AssertNumberOfCalls(t, "CreateBatch", 1)
}

func TestImportService_UnsupportedFormat(t *testing.T) {
	store := new(MockStudentStore)
	svc := NewImportService(store, zerolog.Nop())

	_, err := svc.Import(context.Background(), "data.txt", strings.NewReader("A1,Name\n"))
	assert.True(t, errors.Is(err, tabular.ErrUnsupportedFormat))
	store.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestImportService_Spreadsheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Admission Number", "Full Name"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"X1", "Ruwan Fernando", "12", "Science"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"X2"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{"X3", "Dilani Jayasuriya"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	var saved []*model.Student
	store := new(MockStudentStore)
	store.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).([]*model.Student) }).
		Return(nil)
	svc := NewImportService(store, zerolog.Nop())

	report, err := svc.Import(context.Background(), "Intake.XLSX", buf)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "X1", saved[0].AdmissionNumber)
	assert.Empty(t, saved[0].Grade, "spreadsheet rows only map the first two columns")
	assert.Equal(t, "X3", saved[1].AdmissionNumber)
	assert.Equal(t, []int{3}, report.SkippedRows)
}

func TestImportService_UnreadableSpreadsheet(t *testing.T) {
	store := new(MockStudentStore)
	svc := NewImportService(store, zerolog.Nop())

	_, err := svc.Import(context.Background(), "legacy.xls", bytes.NewReader([]byte{0xD0, 0xCF, 0x11, 0xE0}))
	assert.True(t, errors.Is(err, ErrImportIO))
	store.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestImportService_DuplicateRollsBackBatch(t *testing.T) {
	store := newMemStudentStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &model.Student{AdmissionNumber: "D2", FullName: "Existing"}))
	svc := NewImportService(store, zerolog.Nop())

	data := "adm,name\nD1,First\nD2,Clash\nD3,Third\n"
	_, err := svc.Import(ctx, "students.csv", strings.NewReader(data))
	assert.True(t, errors.Is(err, repository.ErrConstraintViolation))

	n, _ := store.Count(ctx)
	assert.Equal(t, 1, n)
}

func TestImportService_HeaderOnly(t *testing.T) {
	store := new(MockStudentStore)
	store.On("CreateBatch", mock.Anything, []*model.Student{}).Return(nil)
	svc := NewImportService(store, zerolog.Nop())

	report, err := svc.Import(context.Background(), "empty.csv", strings.NewReader("adm,name\n"))
	require.NoError(t, err)
	assert.Zero(t, report.TotalRows)
	assert.Zero(t, report.Imported)
	assert.Empty(t, report.SkippedRows)
}
