// Package types defines the entity types, recognized attribute sets, and
// standard errors shared by the AppLog services, store, and view layer.
package types
