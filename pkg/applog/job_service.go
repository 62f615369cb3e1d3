// This file implements the job application service: field validation,
// duplicate-URL detection, CRUD, and note appending over the entity store.
package applog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/victord03/applog/internal/store"
	"github.com/victord03/applog/pkg/types"
	"github.com/victord03/applog/pkg/urlnorm"
)

// JobService validates and persists job applications. Data maps are keyed by
// the recognized attribute names (the JSON tags on types.JobApplication).
type JobService struct {
	store  *store.Store
	logger zerolog.Logger
}

func newJobService(st *store.Store, logger zerolog.Logger) *JobService {
	return &JobService{store: st, logger: logger}
}

// ValidateJobFields rejects an empty data map and any key that is not a
// recognized job application attribute. Values are not inspected.
func ValidateJobFields(data map[string]any) error {
	if len(data) == 0 {
		return types.ErrEmptyData
	}
	for key := range data {
		if !types.JobFields[key] {
			return fmt.Errorf("field %q: %w", key, types.ErrUnknownField)
		}
	}
	return nil
}

// Create validates data, rejects a duplicate normalized URL, and inserts the
// job. A plain-string notes value is wrapped as a single fresh-timestamped
// note when non-blank, and becomes an empty history when blank. Status
// defaults to Applied and application_date to now.
func (s *JobService) Create(ctx context.Context, data map[string]any) (*types.JobApplication, error) {
	if err := ValidateJobFields(data); err != nil {
		return nil, err
	}
	changes, err := coerceJobData(data)
	if err != nil {
		return nil, err
	}

	job := &types.JobApplication{}
	applyJobChanges(job, changes)

	if norm := urlnorm.Normalize(job.JobURL); norm != "" {
		existing, err := s.store.GetJobByNormalizedURL(ctx, norm)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("job url %q: %w", job.JobURL, types.ErrDuplicateURL)
		}
	}

	created, err := s.store.InsertJob(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	s.logger.Info().
		Int64("id", created.ID).
		Str("company", created.CompanyName).
		Str("title", created.JobTitle).
		Msg("job created")
	return created, nil
}

// GetByID returns the job with the given id, or (nil, nil) when absent.
func (s *JobService) GetByID(ctx context.Context, id int64) (*types.JobApplication, error) {
	return s.store.GetJob(ctx, id)
}

// GetByURL normalizes rawURL and returns the matching job. Returns
// (nil, nil) when the normalized form is empty or unmatched.
func (s *JobService) GetByURL(ctx context.Context, rawURL string) (*types.JobApplication, error) {
	norm := urlnorm.Normalize(rawURL)
	if norm == "" {
		return nil, nil
	}
	return s.store.GetJobByNormalizedURL(ctx, norm)
}

// Update validates changes and applies them as a partial update, leaving
// unnamed fields untouched. Returns (nil, nil) when the id is absent. A
// job_url change that collides with another job's normalized URL fails at
// the store and leaves the row unchanged.
func (s *JobService) Update(ctx context.Context, id int64, data map[string]any) (*types.JobApplication, error) {
	if err := ValidateJobFields(data); err != nil {
		return nil, err
	}
	changes, err := coerceJobData(data)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateJob(ctx, id, changes)
	if err != nil {
		return nil, fmt.Errorf("updating job %d: %w", id, err)
	}
	if updated != nil {
		s.logger.Info().Int64("id", id).Msg("job updated")
	}
	return updated, nil
}

// Delete removes the job. Returns true when a record existed and was
// removed, false when the id was absent.
func (s *JobService) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := s.store.DeleteJob(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting job %d: %w", id, err)
	}
	if removed {
		s.logger.Info().Int64("id", id).Msg("job deleted")
	}
	return removed, nil
}

// AddNote appends a note with the current timestamp to the job's history.
// Returns (nil, nil) when the id is absent. Blankness is not re-validated;
// callers trim and reject empty text themselves.
func (s *JobService) AddNote(ctx context.Context, id int64, text string) (*types.JobApplication, error) {
	note := types.Note{Timestamp: time.Now().UTC(), Note: text}
	updated, err := s.store.AppendJobNote(ctx, id, note)
	if err != nil {
		return nil, fmt.Errorf("adding note to job %d: %w", id, err)
	}
	if updated != nil {
		s.logger.Info().Int64("id", id).Int("notes", len(updated.Notes)).Msg("note added")
	}
	return updated, nil
}

// List returns every job application, newest application date first.
func (s *JobService) List(ctx context.Context) ([]*types.JobApplication, error) {
	return s.store.ListJobs(ctx)
}

// coerceJobData converts validated map values into typed changes. The keys
// id, created_at, and updated_at are recognized but never caller-assignable;
// supplied values are ignored.
func coerceJobData(data map[string]any) (store.JobChanges, error) {
	var changes store.JobChanges
	for key, value := range data {
		switch key {
		case "id", "created_at", "updated_at":
			// Assigned by the store.
		case "company_name":
			v, err := stringValue(key, value)
			if err != nil {
				return store.JobChanges{}, err
			}
			changes.CompanyName = &v
		case "job_title":
			v, err := stringValue(key, value)
			if err != nil {
				return store.JobChanges{}, err
			}
			changes.JobTitle = &v
		case "job_url":
			v, err := stringValue(key, value)
			if err != nil {
				return store.JobChanges{}, err
			}
			changes.JobURL = &v
		case "location":
			v, err := stringValue(key, value)
			if err != nil {
				return store.JobChanges{}, err
			}
			changes.Location = &v
		case "description":
			v, err := stringValue(key, value)
			if err != nil {
				return store.JobChanges{}, err
			}
			changes.Description = &v
		case "salary_range":
			v, err := stringValue(key, value)
			if err != nil {
				return store.JobChanges{}, err
			}
			changes.SalaryRange = &v
		case "status":
			v, err := statusValue(value)
			if err != nil {
				return store.JobChanges{}, err
			}
			changes.Status = &v
		case "application_date":
			v, err := timeValue(key, value)
			if err != nil {
				return store.JobChanges{}, err
			}
			changes.ApplicationDate = &v
		case "notes":
			v, err := notesValue(value)
			if err != nil {
				return store.JobChanges{}, err
			}
			changes.Notes = &v
		}
	}
	return changes, nil
}

// applyJobChanges copies set fields onto a fresh entity for creation.
func applyJobChanges(job *types.JobApplication, changes store.JobChanges) {
	if changes.CompanyName != nil {
		job.CompanyName = *changes.CompanyName
	}
	if changes.JobTitle != nil {
		job.JobTitle = *changes.JobTitle
	}
	if changes.JobURL != nil {
		job.JobURL = *changes.JobURL
	}
	if changes.Location != nil {
		job.Location = *changes.Location
	}
	if changes.Description != nil {
		job.Description = *changes.Description
	}
	if changes.Status != nil {
		job.Status = *changes.Status
	}
	if changes.ApplicationDate != nil {
		job.ApplicationDate = *changes.ApplicationDate
	}
	if changes.SalaryRange != nil {
		job.SalaryRange = *changes.SalaryRange
	}
	if changes.Notes != nil {
		job.Notes = *changes.Notes
	}
}

// stringValue coerces a string field.
func stringValue(key string, value any) (string, error) {
	v, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q: %w", key, types.ErrInvalidValue)
	}
	return v, nil
}

// statusValue coerces a status field from Status or string and enforces the
// enumeration.
func statusValue(value any) (types.Status, error) {
	var status types.Status
	switch v := value.(type) {
	case types.Status:
		status = v
	case string:
		status = types.Status(v)
	default:
		return "", fmt.Errorf("field %q: %w", "status", types.ErrInvalidValue)
	}
	if !status.Valid() {
		return "", fmt.Errorf("status %q: %w", string(status), types.ErrInvalidStatus)
	}
	return status, nil
}

// dateLayouts are accepted application_date string forms.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// timeValue coerces a date field from time.Time or a date string.
func timeValue(key string, value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("field %q: %w", key, types.ErrInvalidValue)
}

// notesValue coerces the notes field. A plain string becomes a single
// fresh-timestamped note when non-blank and an empty history when blank;
// note sequences are accepted natively or as decoded JSON.
func notesValue(value any) ([]types.Note, error) {
	switch v := value.(type) {
	case nil:
		return []types.Note{}, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return []types.Note{}, nil
		}
		return []types.Note{{Timestamp: time.Now().UTC(), Note: v}}, nil
	case []types.Note:
		return v, nil
	case []any:
		notes := make([]types.Note, 0, len(v))
		for _, item := range v {
			note, err := noteValue(item)
			if err != nil {
				return nil, err
			}
			notes = append(notes, note)
		}
		return notes, nil
	}
	return nil, fmt.Errorf("field %q: %w", "notes", types.ErrInvalidValue)
}

// noteValue coerces one note entry from a Note or a {timestamp, note} map.
// A missing timestamp defaults to now.
func noteValue(item any) (types.Note, error) {
	switch v := item.(type) {
	case types.Note:
		return v, nil
	case map[string]any:
		note := types.Note{Timestamp: time.Now().UTC()}
		if raw, ok := v["note"]; ok {
			text, err := stringValue("notes", raw)
			if err != nil {
				return types.Note{}, err
			}
			note.Note = text
		}
		if raw, ok := v["timestamp"]; ok {
			ts, err := timeValue("notes", raw)
			if err != nil {
				return types.Note{}, err
			}
			note.Timestamp = ts
		}
		return note, nil
	}
	return types.Note{}, fmt.Errorf("field %q: %w", "notes", types.ErrInvalidValue)
}
