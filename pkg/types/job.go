package types

import "time"

// Application statuses. A job application moves through these as the
// process unfolds; there is no enforced transition order.
const (
	StatusApplied    Status = "Applied"
	StatusScreening  Status = "Screening"
	StatusInterview  Status = "Interview"
	StatusOffer      Status = "Offer"
	StatusRejected   Status = "Rejected"
	StatusAccepted   Status = "Accepted"
	StatusWithdrawn  Status = "Withdrawn"
	StatusNoResponse Status = "No Response"
)

// Status is the lifecycle state of a job application.
type Status string

// validStatuses is the set of recognized status values.
var validStatuses = map[Status]bool{
	StatusApplied:    true,
	StatusScreening:  true,
	StatusInterview:  true,
	StatusOffer:      true,
	StatusRejected:   true,
	StatusAccepted:   true,
	StatusWithdrawn:  true,
	StatusNoResponse: true,
}

// Valid reports whether s is a member of the status enumeration.
func (s Status) Valid() bool {
	return validStatuses[s]
}

// Statuses returns all status values in their display order.
func Statuses() []Status {
	return []Status{
		StatusApplied,
		StatusScreening,
		StatusInterview,
		StatusOffer,
		StatusRejected,
		StatusAccepted,
		StatusWithdrawn,
		StatusNoResponse,
	}
}

// Note is a single timestamped entry in a job's note history. Notes are
// immutable once appended; there is no edit or delete for an individual note.
type Note struct {
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

// JobApplication is a tracked application for a single job posting.
// The JSON tags double as the recognized attribute names accepted by the
// services and as the column names in the store.
type JobApplication struct {
	ID              int64     `json:"id"`               // store-assigned, immutable
	CompanyName     string    `json:"company_name"`     // required, non-empty
	JobTitle        string    `json:"job_title"`        // required, non-empty
	JobURL          string    `json:"job_url"`          // unique under its normalized form
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	Status          Status    `json:"status"`           // defaults to StatusApplied
	ApplicationDate time.Time `json:"application_date"` // defaults to creation time
	SalaryRange     string    `json:"salary_range"`
	Notes           []Note    `json:"notes"`            // insertion order, append-only
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AppendNote adds a note to the end of the history and bumps UpdatedAt.
// A nil history is treated as empty. Existing entries are never touched.
func (j *JobApplication) AppendNote(n Note) {
	j.Notes = append(j.Notes, n)
	j.UpdatedAt = n.Timestamp
}

// JobFields is the set of recognized JobApplication attribute names.
// Data maps passed to the job service are validated against this set.
var JobFields = map[string]bool{
	"id":               true,
	"company_name":     true,
	"job_title":        true,
	"job_url":          true,
	"location":         true,
	"description":      true,
	"status":           true,
	"application_date": true,
	"salary_range":     true,
	"notes":            true,
	"created_at":       true,
	"updated_at":       true,
}
