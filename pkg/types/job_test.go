package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{name: "applied", status: StatusApplied, want: true},
		{name: "screening", status: StatusScreening, want: true},
		{name: "interview", status: StatusInterview, want: true},
		{name: "offer", status: StatusOffer, want: true},
		{name: "rejected", status: StatusRejected, want: true},
		{name: "accepted", status: StatusAccepted, want: true},
		{name: "withdrawn", status: StatusWithdrawn, want: true},
		{name: "no response", status: StatusNoResponse, want: true},
		{name: "empty string rejected", status: Status(""), want: false},
		{name: "unknown value rejected", status: Status("Ghosted"), want: false},
		{name: "wrong case rejected", status: Status("applied"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Valid())
		})
	}
}

func TestStatuses(t *testing.T) {
	all := Statuses()

	assert.Len(t, all, 8)
	assert.Equal(t, StatusApplied, all[0])
	assert.Equal(t, StatusNoResponse, all[len(all)-1])

	for _, s := range all {
		assert.True(t, s.Valid(), "listed status %q should be valid", s)
	}
}

func TestJobApplicationAppendNote(t *testing.T) {
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	j := &JobApplication{
		CompanyName: "Acme",
		JobTitle:    "Engineer",
		Status:      StatusApplied,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	first := Note{Timestamp: created.Add(time.Hour), Note: "phone screen booked"}
	j.AppendNote(first)

	assert.Len(t, j.Notes, 1)
	assert.Equal(t, first, j.Notes[0])
	assert.Equal(t, first.Timestamp, j.UpdatedAt)

	second := Note{Timestamp: created.Add(2 * time.Hour), Note: "sent follow-up"}
	j.AppendNote(second)

	assert.Len(t, j.Notes, 2)
	assert.Equal(t, second, j.Notes[1], "notes should keep insertion order")
	assert.Equal(t, second.Timestamp, j.UpdatedAt)
}

func TestJobFields(t *testing.T) {
	for _, field := range []string{
		"id", "company_name", "job_title", "job_url", "location",
		"description", "status", "application_date", "salary_range",
		"notes", "created_at", "updated_at",
	} {
		assert.True(t, JobFields[field], "field %q should be recognized", field)
	}

	assert.False(t, JobFields["company"], "unknown field should not be recognized")
}
