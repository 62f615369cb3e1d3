package types

import "time"

// NoteTemplate is a reusable piece of note text, addressed by name.
// Name and content must be non-blank after trimming; both are stored
// as supplied.
type NoteTemplate struct {
	ID        int64     `json:"id"` // store-assigned, immutable
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TemplateFields is the set of recognized NoteTemplate attribute names.
var TemplateFields = map[string]bool{
	"id":         true,
	"name":       true,
	"content":    true,
	"created_at": true,
	"updated_at": true,
}
