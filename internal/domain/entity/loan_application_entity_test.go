package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmploymentType_IsValid(t *testing.T) {
	valid := []EmploymentType{
		EmploymentFullTime, EmploymentPartTime, EmploymentSelfEmployed,
		EmploymentUnemployed, EmploymentRetired,
	}
	for _, e := range valid {
		assert.True(t, e.IsValid(), string(e))
	}
	assert.False(t, EmploymentType("employed").IsValid())
	assert.False(t, EmploymentType("").IsValid())
}

func TestApplicationStatus(t *testing.T) {
	tests := []struct {
		status   ApplicationStatus
		valid    bool
		terminal bool
	}{
		{StatusPending, true, false},
		{StatusApproved, true, true},
		{StatusRejected, true, true},
		{ApplicationStatus("withdrawn"), false, false},
		{ApplicationStatus(""), false, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.status.IsValid())
			assert.Equal(t, tc.terminal, tc.status.IsTerminal())
		})
	}
}

func TestUser_SplitName(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
	}{
		{"Ada Lovelace", "Ada", "Lovelace"},
		{"Prince", "Prince", ""},
		{"  Mary Jane Watson ", "Mary", "Jane Watson"},
		{"", "", ""},
	}
	for _, tc := range tests {
		u := &User{Name: tc.name}
		first, last := u.SplitName()
		assert.Equal(t, tc.first, first)
		assert.Equal(t, tc.last, last)
	}
}
