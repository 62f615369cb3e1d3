// This file implements the note_templates table operations for the store.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/victord03/applog/pkg/types"
)

const templateColumns = "id, name, content, created_at, updated_at"

// TemplateChanges carries a partial update for a note template. Nil fields
// are left untouched.
type TemplateChanges struct {
	Name    *string
	Content *string
}

// InsertTemplate persists a new note template and assigns its id.
func (s *Store) InsertTemplate(ctx context.Context, tpl *types.NoteTemplate) (*types.NoteTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO note_templates (name, content, created_at, updated_at) VALUES (?, ?, ?, ?)",
		tpl.Name, tpl.Content, formatTime(tpl.CreatedAt), formatTime(tpl.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting template: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading template id: %w", err)
	}
	tpl.ID = id

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing template insert: %w", err)
	}

	s.logger.Debug().Int64("id", id).Str("name", tpl.Name).Msg("template inserted")
	return tpl, nil
}

// GetTemplate retrieves a template by id. Returns (nil, nil) when absent.
func (s *Store) GetTemplate(ctx context.Context, id int64) (*types.NoteTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT "+templateColumns+" FROM note_templates WHERE id = ?", id)
	tpl, err := hydrateTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting template %d: %w", id, err)
	}
	return tpl, nil
}

// ListTemplates returns every template ordered by name. Returns an empty
// slice, never nil.
func (s *Store) ListTemplates(ctx context.Context) ([]*types.NoteTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	return s.queryTemplates(ctx,
		"SELECT "+templateColumns+" FROM note_templates ORDER BY name, id")
}

// SearchTemplates returns templates whose name or content contains q,
// compared case-insensitively, ordered by name. An empty q matches every
// template.
func (s *Store) SearchTemplates(ctx context.Context, q string) ([]*types.NoteTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	if q == "" {
		return s.queryTemplates(ctx,
			"SELECT "+templateColumns+" FROM note_templates ORDER BY name, id")
	}
	return s.queryTemplates(ctx,
		`SELECT `+templateColumns+` FROM note_templates
		 WHERE instr(lower(name), lower(?)) > 0 OR instr(lower(content), lower(?)) > 0
		 ORDER BY name, id`,
		q, q)
}

// UpdateTemplate applies a partial update inside one transaction, refreshes
// updated_at, and returns the updated row. Returns (nil, nil) when absent;
// rolls back on any failure.
func (s *Store) UpdateTemplate(ctx context.Context, id int64, changes TemplateChanges) (*types.NoteTemplate, error) {
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
		"SELECT 1 FROM note_templates WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checking template %d: %w", id, err)
	}

	var sets []string
	var args []any
	if changes.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *changes.Name)
	}
	if changes.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *changes.Content)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(time.Now().UTC()))
	args = append(args, id)

	query := "UPDATE note_templates SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("updating template %d: %w", id, err)
	}

	row := tx.QueryRowContext(ctx,
		"SELECT "+templateColumns+" FROM note_templates WHERE id = ?", id)
	tpl, err := hydrateTemplate(row)
	if err != nil {
		return nil, fmt.Errorf("re-reading template %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing template update: %w", err)
	}

	s.logger.Debug().Int64("id", id).Msg("template updated")
	return tpl, nil
}

// DeleteTemplate removes a template. Returns true if a row existed and was
// removed, false if the id was absent.
func (s *Store) DeleteTemplate(ctx context.Context, id int64) (bool, error) {
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

	res, err := tx.ExecContext(ctx, "DELETE FROM note_templates WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting template %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("counting deleted templates: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing template deletion: %w", err)
	}

	s.logger.Debug().Int64("id", id).Msg("template deleted")
	return true, nil
}

// queryTemplates runs a SELECT over note_templates and hydrates every row.
func (s *Store) queryTemplates(ctx context.Context, query string, args ...any) ([]*types.NoteTemplate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	templates := []*types.NoteTemplate{}
	for rows.Next() {
		tpl, err := hydrateTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating template: %w", err)
		}
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

// hydrateTemplate converts a scanned row into a NoteTemplate.
func hydrateTemplate(row scanner) (*types.NoteTemplate, error) {
	var (
		tpl       types.NoteTemplate
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&tpl.ID, &tpl.Name, &tpl.Content, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if tpl.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if tpl.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &tpl, nil
}
