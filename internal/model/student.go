package model

import (
	"time"
)

// Conventional values for the free-text classification fields. They are not
// enforced at the data layer.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"

	Grade12 = "12"
	Grade13 = "13"
)

// Student represents a student record.
type Student struct {
	ID              int64     `json:"id"`
	AdmissionNumber string    `json:"admissionNumber"`
	FullName        string    `json:"fullName"`
	DateOfBirth     *Date     `json:"dateOfBirth,omitempty"`
	Gender          string    `json:"gender"`
	Address         string    `json:"address,omitempty"`
	ContactNumber   string    `json:"contactNumber,omitempty"`
	Grade           string    `json:"grade"`
	Stream          string    `json:"stream"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// StudentRequest is the payload for creating or fully updating a student.
type StudentRequest struct {
	AdmissionNumber string `json:"admissionNumber" binding:"required,max=50"`
	FullName        string `json:"fullName" binding:"required,max=255"`
	DateOfBirth     *Date  `json:"dateOfBirth"`
	Gender          string `json:"gender" binding:"max=20"`
	Address         string `json:"address" binding:"max=500"`
	ContactNumber   string `json:"contactNumber" binding:"max=30"`
	Grade           string `json:"grade" binding:"max=20"`
	Stream          string `json:"stream" binding:"max=50"`
}

// ToStudent maps the request onto a Student with the given ID (0 for new records).
func (r StudentRequest) ToStudent(id int64) *Student {
	return &Student{
		ID:              id,
		AdmissionNumber: r.AdmissionNumber,
		FullName:        r.FullName,
		DateOfBirth:     r.DateOfBirth,
		Gender:          r.Gender,
		Address:         r.Address,
		ContactNumber:   r.ContactNumber,
		Grade:           r.Grade,
		Stream:          r.Stream,
	}
}

// StudentField names a student column that can be counted or grouped on.
type StudentField string

const (
	FieldGrade  StudentField = "grade"
	FieldGender StudentField = "gender"
	FieldStream StudentField = "stream"
)

// Valid reports whether f is one of the aggregatable fields.
func (f StudentField) Valid() bool {
	switch f {
	case FieldGrade, FieldGender, FieldStream:
		return true
	}
	return false
}

// StudentFilter holds the optional search parameters. A nil field means the
// filter is absent.
type StudentFilter struct {
	Query  *string
	Grade  *string
	Stream *string
}

// IsEmpty reports whether no filter is present.
func (f StudentFilter) IsEmpty() bool {
	return f.Query == nil && f.Grade == nil && f.Stream == nil
}
