// This file implements the job_applications table operations for the store.
// Each operation hydrates between SQLite rows and *types.JobApplication
// structs; every mutation runs inside a single transaction.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/victord03/applog/pkg/types"
	"github.com/victord03/applog/pkg/urlnorm"
)

// jobColumns is the SELECT list shared by every job query. The derived
// job_url_norm column is never hydrated; it exists only for the unique index.
const jobColumns = "id, company_name, job_title, job_url, location, description, status, application_date, salary_range, notes, created_at, updated_at"

// JobChanges carries a partial update for a job application. Nil fields are
// left untouched.
type JobChanges struct {
	CompanyName     *string
	JobTitle        *string
	JobURL          *string
	Location        *string
	Description     *string
	Status          *types.Status
	ApplicationDate *time.Time
	SalaryRange     *string
	Notes           *[]types.Note
}

// querier is satisfied by both *sql.DB and *sql.Tx, so hydration helpers can
// run inside or outside a transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InsertJob persists a new job application and assigns its id. Status
// defaults to Applied and application_date to the current time when unset.
// The unique index on the normalized URL rejects duplicates that slipped
// past the service's own check.
func (s *Store) InsertJob(ctx context.Context, job *types.JobApplication) (*types.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	now := time.Now().UTC()
	if job.Status == "" {
		job.Status = types.StatusApplied
	}
	if job.ApplicationDate.IsZero() {
		job.ApplicationDate = now
	}
	if job.Notes == nil {
		job.Notes = []types.Note{}
	}
	job.CreatedAt = now
	job.UpdatedAt = now

	rawNotes, err := marshalNotes(job.Notes)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO job_applications
		 (company_name, job_title, job_url, job_url_norm, location, description,
		  status, application_date, salary_range, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.CompanyName, job.JobTitle, job.JobURL, normValue(job.JobURL),
		job.Location, job.Description, string(job.Status),
		formatTime(job.ApplicationDate), job.SalaryRange, rawNotes,
		formatTime(job.CreatedAt), formatTime(job.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting job: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading job id: %w", err)
	}
	job.ID = id

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing job insert: %w", err)
	}

	s.logger.Debug().Int64("id", id).Str("company", job.CompanyName).Msg("job inserted")
	return job, nil
}

// GetJob retrieves a job by id. Returns (nil, nil) when no row exists.
func (s *Store) GetJob(ctx context.Context, id int64) (*types.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	return getJob(ctx, s.db, id)
}

// GetJobByNormalizedURL retrieves the job whose normalized URL equals norm.
// An empty norm never matches anything. Returns (nil, nil) when absent.
func (s *Store) GetJobByNormalizedURL(ctx context.Context, norm string) (*types.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	if norm == "" {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT "+jobColumns+" FROM job_applications WHERE job_url_norm = ?", norm)
	job, err := hydrateJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting job by url: %w", err)
	}
	return job, nil
}

// ListJobs returns every job application ordered by application date,
// newest first. Returns an empty slice, never nil.
func (s *Store) ListJobs(ctx context.Context) ([]*types.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	return s.queryJobs(ctx,
		"SELECT "+jobColumns+" FROM job_applications ORDER BY application_date DESC, id DESC")
}

// queryJobs runs a SELECT over job_applications and hydrates every row.
// Callers hold the store lock.
func (s *Store) queryJobs(ctx context.Context, query string, args ...any) ([]*types.JobApplication, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*types.JobApplication{}
	for rows.Next() {
		job, err := hydrateJob(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}
	return jobs, nil
}

// UpdateJob applies a partial update inside one transaction, refreshes
// updated_at, and returns the updated row re-read from the same transaction.
// Returns (nil, nil) when the job does not exist. On any failure the
// transaction is rolled back and the stored row is left unchanged.
func (s *Store) UpdateJob(ctx context.Context, id int64, changes JobChanges) (*types.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM job_applications WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checking job %d: %w", id, err)
	}

	var sets []string
	var args []any
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if changes.CompanyName != nil {
		set("company_name", *changes.CompanyName)
	}
	if changes.JobTitle != nil {
		set("job_title", *changes.JobTitle)
	}
	if changes.JobURL != nil {
		set("job_url", *changes.JobURL)
		set("job_url_norm", normValue(*changes.JobURL))
	}
	if changes.Location != nil {
		set("location", *changes.Location)
	}
	if changes.Description != nil {
		set("description", *changes.Description)
	}
	if changes.Status != nil {
		set("status", string(*changes.Status))
	}
	if changes.ApplicationDate != nil {
		set("application_date", formatTime(*changes.ApplicationDate))
	}
	if changes.SalaryRange != nil {
		set("salary_range", *changes.SalaryRange)
	}
	if changes.Notes != nil {
		rawNotes, err := marshalNotes(*changes.Notes)
		if err != nil {
			return nil, err
		}
		set("notes", rawNotes)
	}
	set("updated_at", formatTime(time.Now().UTC()))

	query := "UPDATE job_applications SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("updating job %d: %w", id, err)
	}

	job, err := getJob(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("re-reading job %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing job update: %w", err)
	}

	s.logger.Debug().Int64("id", id).Msg("job updated")
	return job, nil
}

// DeleteJob removes a job. Returns true if a row existed and was removed,
// false if the id was absent.
func (s *Store) DeleteJob(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM job_applications WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting job %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("counting deleted jobs: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing job deletion: %w", err)
	}

	s.logger.Debug().Int64("id", id).Msg("job deleted")
	return true, nil
}

// AppendJobNote appends a note to the job's history and refreshes updated_at
// to the note timestamp, all inside one transaction. Returns the updated job,
// or (nil, nil) when the id is absent.
func (s *Store) AppendJobNote(ctx context.Context, id int64, note types.Note) (*types.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	job, err := getJob(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}

	job.AppendNote(note)
	rawNotes, err := marshalNotes(job.Notes)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE job_applications SET notes = ?, updated_at = ? WHERE id = ?",
		rawNotes, formatTime(job.UpdatedAt), id,
	); err != nil {
		return nil, fmt.Errorf("appending note to job %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing note append: %w", err)
	}

	s.logger.Debug().Int64("id", id).Int("notes", len(job.Notes)).Msg("note appended")
	return job, nil
}

// getJob hydrates a single job by id from db or an open transaction.
// Returns (nil, nil) when no row exists.
func getJob(ctx context.Context, q querier, id int64) (*types.JobApplication, error) {
	row := q.QueryRowContext(ctx,
		"SELECT "+jobColumns+" FROM job_applications WHERE id = ?", id)
	job, err := hydrateJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting job %d: %w", id, err)
	}
	return job, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateJob converts a scanned row into a JobApplication.
func hydrateJob(row scanner) (*types.JobApplication, error) {
	var (
		job       types.JobApplication
		status    string
		appDate   string
		rawNotes  string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(
		&job.ID, &job.CompanyName, &job.JobTitle, &job.JobURL,
		&job.Location, &job.Description, &status, &appDate,
		&job.SalaryRange, &rawNotes, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	job.Status = types.Status(status)

	var err error
	if job.ApplicationDate, err = parseTime(appDate); err != nil {
		return nil, fmt.Errorf("parsing application_date: %w", err)
	}
	if job.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if job.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	if job.Notes, err = unmarshalNotes(rawNotes); err != nil {
		return nil, err
	}
	return &job, nil
}

// normValue computes the job_url_norm column value. Empty normalized URLs
// are stored as NULL so that URL-less jobs never collide under the unique
// index.
func normValue(rawURL string) any {
	if norm := urlnorm.Normalize(rawURL); norm != "" {
		return norm
	}
	return nil
}

// marshalNotes renders the note history for the notes TEXT column.
func marshalNotes(notes []types.Note) (string, error) {
	if notes == nil {
		notes = []types.Note{}
	}
	raw, err := json.Marshal(notes)
	if err != nil {
		return "", fmt.Errorf("marshaling notes: %w", err)
	}
	return string(raw), nil
}

// unmarshalNotes reads the notes TEXT column. Always returns a non-nil
// slice.
func unmarshalNotes(raw string) ([]types.Note, error) {
	notes := []types.Note{}
	if raw == "" {
		return notes, nil
	}
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, fmt.Errorf("unmarshaling notes: %w", err)
	}
	if notes == nil {
		notes = []types.Note{}
	}
	return notes, nil
}
