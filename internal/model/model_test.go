package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var s Student
	require.NoError(t, json.Unmarshal([]byte(`{"admissionNumber":"S1","dateOfBirth":"2008-04-01"}`), &s))
	require.NotNil(t, s.DateOfBirth)
	assert.Equal(t, NewDate(2008, time.April, 1), *s.DateOfBirth)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"dateOfBirth":"2008-04-01"`)

	s = Student{}
	require.NoError(t, json.Unmarshal([]byte(`{"dateOfBirth":null}`), &s))
	assert.Nil(t, s.DateOfBirth)

	out, err = json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "dateOfBirth")

	assert.Error(t, json.Unmarshal([]byte(`{"dateOfBirth":"01/04/2008"}`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"dateOfBirth":20080401}`), &s))
}

func TestDatePostgresMapping(t *testing.T) {
	d := NewDate(2007, time.December, 31)
	v, err := d.DateValue()
	require.NoError(t, err)
	assert.True(t, v.Valid)

	var back Date
	require.NoError(t, back.ScanDate(v))
	assert.Equal(t, "2007-12-31", back.String())
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, RoleClerk.Valid())
	assert.False(t, Role("JANITOR").Valid())

	assert.ElementsMatch(t, AllPermissionCodes(), RoleAdmin.Permissions())
	assert.Contains(t, RoleClerk.Permissions(), string(PermissionStudentsImport))
	assert.NotContains(t, RoleTeacher.Permissions(), string(PermissionStudentsImport))
	assert.NotContains(t, RoleTeacher.Permissions(), string(PermissionUsersRead))
	assert.NotContains(t, RoleClerk.Permissions(), string(PermissionSystemRead))
	assert.Empty(t, Role("JANITOR").Permissions())
}

func TestStudentField(t *testing.T) {
	assert.True(t, FieldStream.Valid())
	assert.False(t, StudentField("full_name").Valid())
}

func TestStudentRequestToStudent(t *testing.T) {
	req := StudentRequest{AdmissionNumber: "S1", FullName: "Jane", Grade: "12"}
	s := req.ToStudent(7)
	assert.Equal(t, int64(7), s.ID)
	assert.Equal(t, "S1", s.AdmissionNumber)
	assert.Equal(t, "12", s.Grade)
}
