package types

import "errors"

// Validation errors. All are raised before any store mutation is attempted
// and leave no partial state behind.
var (
	ErrEmptyData       = errors.New("no fields provided")
	ErrUnknownField    = errors.New("unknown field")
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidValue    = errors.New("invalid field value")
	ErrNameRequired    = errors.New("template name is required")
	ErrContentRequired = errors.New("template content is required")
)

// ErrDuplicateURL is returned by job creation when another job already has
// the same normalized posting URL.
var ErrDuplicateURL = errors.New("a job with this URL already exists")
