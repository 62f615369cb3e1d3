package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victord03/applog/pkg/types"
)

// insertTestJob persists a minimal job, failing the test on error.
func insertTestJob(t *testing.T, s *Store, job *types.JobApplication) *types.JobApplication {
	t.Helper()
	inserted, err := s.InsertJob(context.Background(), job)
	require.NoError(t, err)
	return inserted
}

func TestInsertJobDefaults(t *testing.T) {
	s := setupStore(t)

	job := insertTestJob(t, s, &types.JobApplication{
		CompanyName: "Acme",
		JobTitle:    "Backend Engineer",
		JobURL:      "https://acme.example/jobs/1",
	})

	assert.Greater(t, job.ID, int64(0))
	assert.Equal(t, types.StatusApplied, job.Status)
	assert.NotNil(t, job.Notes)
	assert.Empty(t, job.Notes)
	assert.WithinDuration(t, time.Now(), job.CreatedAt, 5*time.Second)
	assert.WithinDuration(t, time.Now(), job.ApplicationDate, 5*time.Second)
	assert.True(t, job.UpdatedAt.Equal(job.CreatedAt))

	got, err := s.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, "Backend Engineer", got.JobTitle)
	assert.Equal(t, types.StatusApplied, got.Status)
	assert.NotNil(t, got.Notes)
	assert.Empty(t, got.Notes)
}

func TestInsertJobKeepsExplicitValues(t *testing.T) {
	s := setupStore(t)

	appDate := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	job := insertTestJob(t, s, &types.JobApplication{
		CompanyName:     "Globex",
		JobTitle:        "SRE",
		JobURL:          "https://globex.example/jobs/7",
		Location:        "Zurich",
		Description:     "On-call rotation",
		Status:          types.StatusInterview,
		ApplicationDate: appDate,
		SalaryRange:     "120K-140K",
		Notes: []types.Note{
			{Timestamp: appDate, Note: "referred by a friend"},
		},
	})

	got, err := s.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, types.StatusInterview, got.Status)
	assert.True(t, got.ApplicationDate.Equal(appDate))
	assert.Equal(t, "Zurich", got.Location)
	assert.Equal(t, "120K-140K", got.SalaryRange)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "referred by a friend", got.Notes[0].Note)
	assert.True(t, got.Notes[0].Timestamp.Equal(appDate))
}

func TestInsertJobDuplicateNormalizedURL(t *testing.T) {
	s := setupStore(t)

	insertTestJob(t, s, &types.JobApplication{
		CompanyName: "Acme",
		JobTitle:    "Backend Engineer",
		JobURL:      "https://acme.example/jobs/1",
	})

	_, err := s.InsertJob(context.Background(), &types.JobApplication{
		CompanyName: "Acme",
		JobTitle:    "Backend Engineer II",
		JobURL:      "HTTPS://ACME.EXAMPLE/jobs/1/",
	})
	assert.Error(t, err, "unique index should reject URL variants that normalize identically")
}

func TestInsertJobEmptyURLsDoNotCollide(t *testing.T) {
	s := setupStore(t)

	first := insertTestJob(t, s, &types.JobApplication{CompanyName: "A", JobTitle: "X"})
	second := insertTestJob(t, s, &types.JobApplication{CompanyName: "B", JobTitle: "Y"})

	assert.NotEqual(t, first.ID, second.ID)

	jobs, err := s.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestGetJobAbsent(t *testing.T) {
	s := setupStore(t)

	job, err := s.GetJob(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, job)
}

func TestGetJobByNormalizedURL(t *testing.T) {
	s := setupStore(t)

	inserted := insertTestJob(t, s, &types.JobApplication{
		CompanyName: "Acme",
		JobTitle:    "Backend Engineer",
		JobURL:      "HTTPS://ACME.EXAMPLE/jobs/1/",
	})

	got, err := s.GetJobByNormalizedURL(context.Background(), "https://acme.example/jobs/1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, inserted.ID, got.ID)

	got, err = s.GetJobByNormalizedURL(context.Background(), "https://acme.example/jobs/2")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.GetJobByNormalizedURL(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, got, "empty normalized URL should never match")
}

func TestListJobsOrdersByApplicationDateDesc(t *testing.T) {
	s := setupStore(t)

	day := func(d int) time.Time {
		return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
	}
	insertTestJob(t, s, &types.JobApplication{
		CompanyName: "Oldest", JobTitle: "X", ApplicationDate: day(1),
	})
	insertTestJob(t, s, &types.JobApplication{
		CompanyName: "Newest", JobTitle: "X", ApplicationDate: day(20),
	})
	insertTestJob(t, s, &types.JobApplication{
		CompanyName: "Middle", JobTitle: "X", ApplicationDate: day(10),
	})

	jobs, err := s.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "Newest", jobs[0].CompanyName)
	assert.Equal(t, "Middle", jobs[1].CompanyName)
	assert.Equal(t, "Oldest", jobs[2].CompanyName)
}

func TestListJobsEmpty(t *testing.T) {
	s := setupStore(t)

	jobs, err := s.ListJobs(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestUpdateJobPartial(t *testing.T) {
	s := setupStore(t)

	inserted := insertTestJob(t, s, &types.JobApplication{
		CompanyName: "Acme",
		JobTitle:    "Backend Engineer",
		JobURL:      "https://acme.example/jobs/1",
		Location:    "Berlin",
	})
	before, err := s.GetJob(context.Background(), inserted.ID)
	require.NoError(t, err)

	status := types.StatusOffer
	updated, err := s.UpdateJob(context.Background(), inserted.ID, JobChanges{Status: &status})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, types.StatusOffer, updated.Status)
	assert.Equal(t, before.CompanyName, updated.CompanyName)
	assert.Equal(t, before.JobTitle, updated.JobTitle)
	assert.Equal(t, before.JobURL, updated.JobURL)
	assert.Equal(t, before.Location, updated.Location)
	assert.True(t, before.ApplicationDate.Equal(updated.ApplicationDate))
	assert.True(t, before.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(before.UpdatedAt), "updated_at should advance")
}

func TestUpdateJobAbsent(t *testing.T) {
	s := setupStore(t)

	title := "Anything"
	updated, err := s.UpdateJob(context.Background(), 42, JobChanges{JobTitle: &title})
	assert.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUpdateJobURLRecomputesNorm(t *testing.T) {
	s := setupStore(t)

	inserted := insertTestJob(t, s, &types.JobApplication{
		CompanyName: "Acme",
		JobTitle:    "Backend Engineer",
		JobURL:      "https://acme.example/jobs/1",
	})

	newURL := "HTTPS://ACME.EXAMPLE/jobs/2/"
	updated, err := s.UpdateJob(context.Background(), inserted.ID, JobChanges{JobURL: &newURL})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, newURL, updated.JobURL)

	byNew, err := s.GetJobByNormalizedURL(context.Background(), "https://acme.example/jobs/2")
	require.NoError(t, err)
	require.NotNil(t, byNew)
	assert.Equal(t, inserted.ID, byNew.ID)

	byOld, err := s.GetJobByNormalizedURL(context.Background(), "https://acme.example/jobs/1")
	require.NoError(t, err)
	assert.Nil(t, byOld, "old normalized URL should no longer match")
}

func TestUpdateJobRollbackOnConstraintViolation(t *testing.T) {
	s := setupStore(t)

	insertTestJob(t, s, &types.JobApplication{
		CompanyName: "Acme",
		JobTitle:    "Backend Engineer",
		JobURL:      "https://acme.example/jobs/1",
	})
	target := insertTestJob(t, s, &types.JobApplication{
		CompanyName: "Globex",
		JobTitle:    "SRE",
		JobURL:      "https://globex.example/jobs/7",
	})
	before, err := s.GetJob(context.Background(), target.ID)
	require.NoError(t, err)

	// Normalizes to the first job's URL, so the unique index fires mid-update.
	colliding := "HTTPS://ACME.EXAMPLE/jobs/1/"
	updated, err := s.UpdateJob(context.Background(), target.ID, JobChanges{
		JobURL:   &colliding,
		JobTitle: ptr("Should not stick"),
	})
	require.Error(t, err)
	assert.Nil(t, updated)

	after, err := s.GetJob(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed update should leave the row untouched")
}

func TestUpdateJobAfterHandleFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applog.db")
	s, err := Open(path)
	require.NoError(t, err)

	inserted, err := s.InsertJob(context.Background(), &types.JobApplication{
		CompanyName: "Acme",
		JobTitle:    "Backend Engineer",
		JobURL:      "https://acme.example/jobs/1",
	})
	require.NoError(t, err)
	before, err := s.GetJob(context.Background(), inserted.ID)
	require.NoError(t, err)

	// Kill the underlying handle so the next transaction fails outright.
	require.NoError(t, s.db.Close())

	title := "Should not stick"
	_, err = s.UpdateJob(context.Background(), inserted.ID, JobChanges{JobTitle: &title})
	require.Error(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	after, err := reopened.GetJob(context.Background(), inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "row should keep its pre-failure state")
}

func TestDeleteJob(t *testing.T) {
	s := setupStore(t)

	inserted := insertTestJob(t, s, &types.JobApplication{
		CompanyName: "Acme",
		JobTitle:    "Backend Engineer",
	})

	removed, err := s.DeleteJob(context.Background(), inserted.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := s.GetJob(context.Background(), inserted.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	removed, err = s.DeleteJob(context.Background(), inserted.ID)
	require.NoError(t, err)
	assert.False(t, removed, "deleting an absent row should report false")
}

func TestAppendJobNote(t *testing.T) {
	s := setupStore(t)

	inserted := insertTestJob(t, s, &types.JobApplication{
		CompanyName: "Acme",
		JobTitle:    "Backend Engineer",
	})

	first := types.Note{Timestamp: time.Now().UTC(), Note: "phone screen booked"}
	updated, err := s.AppendJobNote(context.Background(), inserted.ID, first)
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Len(t, updated.Notes, 1)

	second := types.Note{Timestamp: time.Now().UTC(), Note: "sent follow-up"}
	updated, err = s.AppendJobNote(context.Background(), inserted.ID, second)
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Len(t, updated.Notes, 2)

	got, err := s.GetJob(context.Background(), inserted.ID)
	require.NoError(t, err)
	require.Len(t, got.Notes, 2)
	assert.Equal(t, "phone screen booked", got.Notes[0].Note)
	assert.Equal(t, "sent follow-up", got.Notes[1].Note)
	assert.True(t, got.Notes[0].Timestamp.Equal(first.Timestamp), "prior note should be unchanged")
	assert.True(t, got.UpdatedAt.Equal(second.Timestamp), "updated_at should follow the last note")
}

func TestAppendJobNoteAbsent(t *testing.T) {
	s := setupStore(t)

	updated, err := s.AppendJobNote(context.Background(), 42, types.Note{
		Timestamp: time.Now().UTC(),
		Note:      "nobody home",
	})
	assert.NoError(t, err)
	assert.Nil(t, updated)
}

// ptr is a test shorthand for taking the address of a literal.
func ptr[T any](v T) *T {
	return &v
}
