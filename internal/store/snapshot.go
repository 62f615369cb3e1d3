// This file implements JSONL snapshot export and import. A snapshot is one
// manifest line followed by one line per entity, suitable for backup and for
// moving a collection between stores.
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

// Snapshot record kinds.
const (
	kindManifest = "manifest"
	kindJob      = "job"
	kindTemplate = "template"
)

// ExportStats reports how many entities a snapshot contains.
type ExportStats struct {
	Jobs      int
	Templates int
}

// ImportStats reports what an import did per entity kind.
type ImportStats struct {
	JobsImported      int
	JobsSkipped       int
	TemplatesImported int
	TemplatesSkipped  int
}

type snapshotManifest struct {
	Kind          string    `json:"kind"`
	StoreID       string    `json:"store_id"`
	SchemaVersion int       `json:"schema_version"`
	ExportedAt    time.Time `json:"exported_at"`
	Jobs          int       `json:"jobs"`
	Templates     int       `json:"templates"`
}

type snapshotJob struct {
	Kind string `json:"kind"`
	types.JobApplication
}

type snapshotTemplate struct {
	Kind string `json:"kind"`
	types.NoteTemplate
}

// ExportJSONL writes the full collection to path as a JSONL snapshot. The
// write is atomic; an existing file is replaced only on success.
func (s *Store) ExportJSONL(ctx context.Context, path string) (ExportStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ExportStats{}, ErrClosed
	}

	jobs, err := s.queryJobs(ctx,
		"SELECT "+jobColumns+" FROM job_applications ORDER BY application_date DESC, id DESC")
	if err != nil {
		return ExportStats{}, err
	}
	templates, err := s.queryTemplates(ctx,
		"SELECT "+templateColumns+" FROM note_templates ORDER BY name, id")
	if err != nil {
		return ExportStats{}, err
	}

	records := make([]json.RawMessage, 0, 1+len(jobs)+len(templates))

	manifest := snapshotManifest{
		Kind:          kindManifest,
		StoreID:       s.info.StoreID,
		SchemaVersion: s.info.SchemaVersion,
		ExportedAt:    time.Now().UTC(),
		Jobs:          len(jobs),
		Templates:     len(templates),
	}
	raw, err := json.Marshal(manifest)
	if err != nil {
		return ExportStats{}, fmt.Errorf("marshaling manifest: %w", err)
	}
	records = append(records, raw)

	for _, job := range jobs {
		raw, err := json.Marshal(snapshotJob{Kind: kindJob, JobApplication: *job})
		if err != nil {
			return ExportStats{}, fmt.Errorf("marshaling job %d: %w", job.ID, err)
		}
		records = append(records, raw)
	}
	for _, tpl := range templates {
		raw, err := json.Marshal(snapshotTemplate{Kind: kindTemplate, NoteTemplate: *tpl})
		if err != nil {
			return ExportStats{}, fmt.Errorf("marshaling template %d: %w", tpl.ID, err)
		}
		records = append(records, raw)
	}

	if err := writeJSONL(path, records); err != nil {
		return ExportStats{}, err
	}

	stats := ExportStats{Jobs: len(jobs), Templates: len(templates)}
	s.logger.Info().
		Str("path", path).
		Int("jobs", stats.Jobs).
		Int("templates", stats.Templates).
		Msg("snapshot exported")
	return stats, nil
}

// ImportJSONL restores entities from a JSONL snapshot inside one
// transaction. Jobs whose normalized URL already exists are skipped, as are
// templates identical by name and content; everything imported gets a fresh
// id. Blank and malformed lines are ignored.
func (s *Store) ImportJSONL(ctx context.Context, path string) (ImportStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ImportStats{}, ErrClosed
	}

	records, err := readJSONL(path)
	if err != nil {
		return ImportStats{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportStats{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var stats ImportStats
	for _, rec := range records {
		var probe struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(rec, &probe); err != nil {
			continue
		}

		switch probe.Kind {
		case kindJob:
			var record snapshotJob
			if err := json.Unmarshal(rec, &record); err != nil {
				stats.JobsSkipped++
				continue
			}
			imported, err := importJob(ctx, tx, &record.JobApplication)
			if err != nil {
				return ImportStats{}, err
			}
			if imported {
				stats.JobsImported++
			} else {
				stats.JobsSkipped++
			}
		case kindTemplate:
			var record snapshotTemplate
			if err := json.Unmarshal(rec, &record); err != nil {
				stats.TemplatesSkipped++
				continue
			}
			imported, err := importTemplate(ctx, tx, &record.NoteTemplate)
			if err != nil {
				return ImportStats{}, err
			}
			if imported {
				stats.TemplatesImported++
			} else {
				stats.TemplatesSkipped++
			}
		default:
			// Manifest and unknown kinds carry no entity data.
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportStats{}, fmt.Errorf("committing import: %w", err)
	}

	s.logger.Info().
		Str("path", path).
		Int("jobs_imported", stats.JobsImported).
		Int("jobs_skipped", stats.JobsSkipped).
		Int("templates_imported", stats.TemplatesImported).
		Int("templates_skipped", stats.TemplatesSkipped).
		Msg("snapshot imported")
	return stats, nil
}

// importJob inserts one snapshot job unless its normalized URL is already
// present. Returns whether a row was inserted.
func importJob(ctx context.Context, tx *sql.Tx, job *types.JobApplication) (bool, error) {
	if job.CompanyName == "" || job.JobTitle == "" {
		return false, nil
	}
	if job.Status == "" {
		job.Status = types.StatusApplied
	} else if !job.Status.Valid() {
		return false, nil
	}

	norm := urlnorm.Normalize(job.JobURL)
	if norm != "" {
		var exists int
		err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM job_applications WHERE job_url_norm = ?", norm).Scan(&exists)
		if err == nil {
			return false, nil
		}
		if err != sql.ErrNoRows {
			return false, fmt.Errorf("checking snapshot job url: %w", err)
		}
	}

	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	if job.UpdatedAt.IsZero() {
		job.UpdatedAt = job.CreatedAt
	}
	if job.ApplicationDate.IsZero() {
		job.ApplicationDate = job.CreatedAt
	}

	rawNotes, err := marshalNotes(job.Notes)
	if err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO job_applications
		 (company_name, job_title, job_url, job_url_norm, location, description,
		  status, application_date, salary_range, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.CompanyName, job.JobTitle, job.JobURL, normValue(job.JobURL),
		job.Location, job.Description, string(job.Status),
		formatTime(job.ApplicationDate), job.SalaryRange, rawNotes,
		formatTime(job.CreatedAt), formatTime(job.UpdatedAt),
	); err != nil {
		return false, fmt.Errorf("inserting snapshot job: %w", err)
	}
	return true, nil
}

// importTemplate inserts one snapshot template unless an identical one
// already exists. Returns whether a row was inserted.
func importTemplate(ctx context.Context, tx *sql.Tx, tpl *types.NoteTemplate) (bool, error) {
	if strings.TrimSpace(tpl.Name) == "" || strings.TrimSpace(tpl.Content) == "" {
		return false, nil
	}

	var exists int
	err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM note_templates WHERE name = ? AND content = ?",
		tpl.Name, tpl.Content).Scan(&exists)
	if err == nil {
		return false, nil
	}
	if err != sql.ErrNoRows {
		return false, fmt.Errorf("checking snapshot template: %w", err)
	}

	now := time.Now().UTC()
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = now
	}
	if tpl.UpdatedAt.IsZero() {
		tpl.UpdatedAt = tpl.CreatedAt
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO note_templates (name, content, created_at, updated_at) VALUES (?, ?, ?, ?)",
		tpl.Name, tpl.Content, formatTime(tpl.CreatedAt), formatTime(tpl.UpdatedAt),
	); err != nil {
		return false, fmt.Errorf("inserting snapshot template: %w", err)
	}
	return true, nil
}
