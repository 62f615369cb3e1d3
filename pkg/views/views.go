// Package views derives filtered and display-ready data from job
// application collections. Everything here is a pure function over entities
// already loaded from the store; nothing touches storage.
package views

import (
	"sort"
	"strings"

	"github.com/victord03/applog/pkg/types"
)

// Filter sentinels meaning "no narrowing for this dimension". The status
// sentinel is special: it keeps only active applications, dropping Rejected,
// Withdrawn, and No Response.
const (
	AllCompanies = "All Companies"
	AllStatuses  = "All Statuses"
	AllLocations = "All Locations"
)

// JobFilters narrows a job collection. Zero-value fields apply no narrowing.
type JobFilters struct {
	// Search matches company name or job title, case-insensitive substring.
	Search string
	// Company matches the company name exactly unless it is AllCompanies.
	Company string
	// Status matches the status exactly, except AllStatuses which keeps
	// only active applications.
	Status string
	// Location matches the location exactly unless it is AllLocations.
	Location string
}

// hiddenByDefault are the statuses the AllStatuses sentinel filters out.
var hiddenByDefault = map[types.Status]bool{
	types.StatusRejected:   true,
	types.StatusWithdrawn:  true,
	types.StatusNoResponse: true,
}

// FilterJobs applies search, company, status, and location narrowing in that
// order, each step an AND over the previous result. Always returns a
// non-nil slice.
func FilterJobs(jobs []*types.JobApplication, filters JobFilters) []*types.JobApplication {
	result := jobs

	if filters.Search != "" {
		needle := strings.ToLower(filters.Search)
		var narrowed []*types.JobApplication
		for _, job := range result {
			if strings.Contains(strings.ToLower(job.CompanyName), needle) ||
				strings.Contains(strings.ToLower(job.JobTitle), needle) {
				narrowed = append(narrowed, job)
			}
		}
		result = narrowed
	}

	if filters.Company != "" && filters.Company != AllCompanies {
		var narrowed []*types.JobApplication
		for _, job := range result {
			if job.CompanyName == filters.Company {
				narrowed = append(narrowed, job)
			}
		}
		result = narrowed
	}

	if filters.Status != "" {
		var narrowed []*types.JobApplication
		for _, job := range result {
			if filters.Status == AllStatuses {
				if !hiddenByDefault[job.Status] {
					narrowed = append(narrowed, job)
				}
			} else if string(job.Status) == filters.Status {
				narrowed = append(narrowed, job)
			}
		}
		result = narrowed
	}

	if filters.Location != "" && filters.Location != AllLocations {
		var narrowed []*types.JobApplication
		for _, job := range result {
			if job.Location == filters.Location {
				narrowed = append(narrowed, job)
			}
		}
		result = narrowed
	}

	if result == nil {
		result = []*types.JobApplication{}
	}
	return result
}

// UniqueCompanies returns the distinct company names present in jobs,
// sorted, prefixed with the AllCompanies sentinel.
func UniqueCompanies(jobs []*types.JobApplication) []string {
	values := make([]string, 0, len(jobs))
	for _, job := range jobs {
		values = append(values, job.CompanyName)
	}
	return append([]string{AllCompanies}, distinctSorted(values)...)
}

// UniqueStatuses returns the distinct statuses present in jobs, sorted,
// prefixed with the AllStatuses sentinel.
func UniqueStatuses(jobs []*types.JobApplication) []string {
	values := make([]string, 0, len(jobs))
	for _, job := range jobs {
		values = append(values, string(job.Status))
	}
	return append([]string{AllStatuses}, distinctSorted(values)...)
}

// UniqueLocations returns the distinct locations present in jobs, sorted,
// prefixed with the AllLocations sentinel.
func UniqueLocations(jobs []*types.JobApplication) []string {
	values := make([]string, 0, len(jobs))
	for _, job := range jobs {
		values = append(values, job.Location)
	}
	return append([]string{AllLocations}, distinctSorted(values)...)
}

// NotesNewestFirst returns the job's notes in reverse chronological order.
// The stored history is insertion-ordered, so reversing it puts the latest
// note first. Always returns a non-nil slice and never aliases the stored
// history.
func NotesNewestFirst(job *types.JobApplication) []types.Note {
	if job == nil || len(job.Notes) == 0 {
		return []types.Note{}
	}
	reversed := make([]types.Note, len(job.Notes))
	for i, note := range job.Notes {
		reversed[len(job.Notes)-1-i] = note
	}
	return reversed
}

// distinctSorted deduplicates and sorts values.
func distinctSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	distinct := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	sort.Strings(distinct)
	return distinct
}
