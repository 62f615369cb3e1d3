package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victord03/applog/pkg/types"
)

func testJob(company, title string, status types.Status, location string) *types.JobApplication {
	return &types.JobApplication{
		CompanyName: company,
		JobTitle:    title,
		Status:      status,
		Location:    location,
	}
}

func testJobs() []*types.JobApplication {
	return []*types.JobApplication{
		testJob("Imerys", "Project Manager", types.StatusApplied, "Paris"),
		testJob("Acme", "Backend Engineer", types.StatusInterview, "Berlin"),
		testJob("Acme", "Platform Engineer", types.StatusRejected, "Berlin"),
		testJob("Globex", "SRE", types.StatusWithdrawn, "Zurich"),
		testJob("Initech", "Backend Engineer", types.StatusNoResponse, "Paris"),
		testJob("Hooli", "Data Engineer", types.StatusOffer, "Zurich"),
	}
}

func companies(jobs []*types.JobApplication) []string {
	names := make([]string, 0, len(jobs))
	for _, job := range jobs {
		names = append(names, job.CompanyName)
	}
	return names
}

func TestFilterJobsNoFilters(t *testing.T) {
	jobs := testJobs()

	result := FilterJobs(jobs, JobFilters{})

	assert.Len(t, result, len(jobs), "zero-value filters apply no narrowing")
}

func TestFilterJobsAllStatusesHidesClosedApplications(t *testing.T) {
	jobs := testJobs()

	result := FilterJobs(jobs, JobFilters{Status: AllStatuses})

	require.Len(t, result, 3)
	for _, job := range result {
		assert.NotContains(t,
			[]types.Status{types.StatusRejected, types.StatusWithdrawn, types.StatusNoResponse},
			job.Status)
	}
}

func TestFilterJobsConcreteStatus(t *testing.T) {
	result := FilterJobs(testJobs(), JobFilters{Status: string(types.StatusRejected)})

	require.Len(t, result, 1)
	assert.Equal(t, "Acme", result[0].CompanyName)
	assert.Equal(t, "Platform Engineer", result[0].JobTitle)
}

func TestFilterJobsSearchMatchesCompanyOrTitle(t *testing.T) {
	jobs := testJobs()

	byCompany := FilterJobs(jobs, JobFilters{Search: "acme"})
	assert.Equal(t, []string{"Acme", "Acme"}, companies(byCompany))

	byTitle := FilterJobs(jobs, JobFilters{Search: "BACKEND"})
	assert.Equal(t, []string{"Acme", "Initech"}, companies(byTitle))

	none := FilterJobs(jobs, JobFilters{Search: "astronaut"})
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFilterJobsCompanyAndLocation(t *testing.T) {
	jobs := testJobs()

	assert.Len(t, FilterJobs(jobs, JobFilters{Company: "Acme"}), 2)
	assert.Len(t, FilterJobs(jobs, JobFilters{Company: AllCompanies}), len(jobs))
	assert.Len(t, FilterJobs(jobs, JobFilters{Location: "Zurich"}), 2)
	assert.Len(t, FilterJobs(jobs, JobFilters{Location: AllLocations}), len(jobs))
}

func TestFilterJobsCompose(t *testing.T) {
	jobs := testJobs()

	result := FilterJobs(jobs, JobFilters{
		Search:   "engineer",
		Status:   AllStatuses,
		Location: "Berlin",
	})

	require.Len(t, result, 1)
	assert.Equal(t, "Backend Engineer", result[0].JobTitle)
	assert.Equal(t, types.StatusInterview, result[0].Status)
}

func TestUniqueValues(t *testing.T) {
	jobs := testJobs()

	assert.Equal(t,
		[]string{AllCompanies, "Acme", "Globex", "Hooli", "Imerys", "Initech"},
		UniqueCompanies(jobs))

	assert.Equal(t,
		[]string{AllStatuses, "Applied", "Interview", "No Response", "Offer", "Rejected", "Withdrawn"},
		UniqueStatuses(jobs))

	assert.Equal(t,
		[]string{AllLocations, "Berlin", "Paris", "Zurich"},
		UniqueLocations(jobs))
}

func TestUniqueValuesEmptyCollection(t *testing.T) {
	assert.Equal(t, []string{AllCompanies}, UniqueCompanies(nil))
	assert.Equal(t, []string{AllStatuses}, UniqueStatuses(nil))
	assert.Equal(t, []string{AllLocations}, UniqueLocations(nil))
}

func TestNotesNewestFirst(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	job := &types.JobApplication{
		Notes: []types.Note{
			{Timestamp: base, Note: "first"},
			{Timestamp: base.Add(time.Hour), Note: "second"},
			{Timestamp: base.Add(2 * time.Hour), Note: "third"},
		},
	}

	reversed := NotesNewestFirst(job)

	require.Len(t, reversed, 3)
	assert.Equal(t, "third", reversed[0].Note)
	assert.Equal(t, "second", reversed[1].Note)
	assert.Equal(t, "first", reversed[2].Note)

	assert.Equal(t, "first", job.Notes[0].Note, "stored order is untouched")

	reversed[0].Note = "mutated"
	assert.Equal(t, "third", job.Notes[2].Note, "result must not alias the stored history")
}

func TestNotesNewestFirstEmpty(t *testing.T) {
	assert.Empty(t, NotesNewestFirst(&types.JobApplication{}))
	assert.Empty(t, NotesNewestFirst(nil))
}
