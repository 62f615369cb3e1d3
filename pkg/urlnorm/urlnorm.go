// Package urlnorm canonicalizes job posting URLs for duplicate comparison.
package urlnorm

import (
	"net/url"
	"strings"
)

// Normalize returns the canonical form of a job posting URL. The scheme and
// host are lower-cased, the path, query, and fragment keep their original
// casing, and at most one trailing slash is removed. An empty string
// normalizes to an empty string, and input that cannot be parsed is returned
// as-is apart from the trailing slash. Two URLs identify the same posting
// exactly when their normalized forms are equal strings.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return strings.TrimSuffix(raw, "/")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	return strings.TrimSuffix(u.String(), "/")
}
