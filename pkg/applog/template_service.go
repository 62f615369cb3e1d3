// This file implements the note template service: field validation,
// required-field checks, CRUD, and substring search.
package applog

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/victord03/applog/internal/store"
	"github.com/victord03/applog/pkg/types"
)

// TemplateService validates and persists note templates.
type TemplateService struct {
	store  *store.Store
	logger zerolog.Logger
}

func newTemplateService(st *store.Store, logger zerolog.Logger) *TemplateService {
	return &TemplateService{store: st, logger: logger}
}

// ValidateTemplateFields rejects an empty data map and any key that is not a
// recognized template attribute. Values are not inspected.
func ValidateTemplateFields(data map[string]any) error {
	if len(data) == 0 {
		return types.ErrEmptyData
	}
	for key := range data {
		if !types.TemplateFields[key] {
			return fmt.Errorf("field %q: %w", key, types.ErrUnknownField)
		}
	}
	return nil
}

// Create validates data and inserts the template. Name and content must be
// non-blank after trimming; they are stored as supplied.
func (s *TemplateService) Create(ctx context.Context, data map[string]any) (*types.NoteTemplate, error) {
	if err := ValidateTemplateFields(data); err != nil {
		return nil, err
	}

	var name, content string
	if raw, ok := data["name"]; ok {
		v, err := stringValue("name", raw)
		if err != nil {
			return nil, err
		}
		name = v
	}
	if raw, ok := data["content"]; ok {
		v, err := stringValue("content", raw)
		if err != nil {
			return nil, err
		}
		content = v
	}

	if strings.TrimSpace(name) == "" {
		return nil, types.ErrNameRequired
	}
	if strings.TrimSpace(content) == "" {
		return nil, types.ErrContentRequired
	}

	created, err := s.store.InsertTemplate(ctx, &types.NoteTemplate{
		Name:    name,
		Content: content,
	})
	if err != nil {
		return nil, fmt.Errorf("creating template: %w", err)
	}

	s.logger.Info().Int64("id", created.ID).Str("name", created.Name).Msg("template created")
	return created, nil
}

// GetByID returns the template with the given id, or (nil, nil) when absent.
func (s *TemplateService) GetByID(ctx context.Context, id int64) (*types.NoteTemplate, error) {
	return s.store.GetTemplate(ctx, id)
}

// GetAll returns every template ordered by name.
func (s *TemplateService) GetAll(ctx context.Context) ([]*types.NoteTemplate, error) {
	return s.store.ListTemplates(ctx)
}

// Search returns templates whose name or content contains query,
// case-insensitively. A blank query behaves exactly like GetAll.
func (s *TemplateService) Search(ctx context.Context, query string) ([]*types.NoteTemplate, error) {
	if strings.TrimSpace(query) == "" {
		return s.store.ListTemplates(ctx)
	}
	return s.store.SearchTemplates(ctx, query)
}

// Update validates changes and applies them as a partial update. A supplied
// name or content must still be non-blank after trimming, so stored
// templates never lose their required fields. Returns (nil, nil) when the
// id is absent.
func (s *TemplateService) Update(ctx context.Context, id int64, data map[string]any) (*types.NoteTemplate, error) {
	if err := ValidateTemplateFields(data); err != nil {
		return nil, err
	}

	var changes store.TemplateChanges
	if raw, ok := data["name"]; ok {
		v, err := stringValue("name", raw)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(v) == "" {
			return nil, types.ErrNameRequired
		}
		changes.Name = &v
	}
	if raw, ok := data["content"]; ok {
		v, err := stringValue("content", raw)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(v) == "" {
			return nil, types.ErrContentRequired
		}
		changes.Content = &v
	}

	updated, err := s.store.UpdateTemplate(ctx, id, changes)
	if err != nil {
		return nil, fmt.Errorf("updating template %d: %w", id, err)
	}
	if updated != nil {
		s.logger.Info().Int64("id", id).Msg("template updated")
	}
	return updated, nil
}

// Delete removes the template. Returns true when a record existed and was
// removed, false when the id was absent.
func (s *TemplateService) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := s.store.DeleteTemplate(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting template %d: %w", id, err)
	}
	if removed {
		s.logger.Info().Int64("id", id).Msg("template deleted")
	}
	return removed, nil
}
