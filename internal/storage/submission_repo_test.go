package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"paperdesk/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSubmissionRepoRoundTrip(t *testing.T) {
	dsn := os.Getenv("PAPERDESK_TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("PAPERDESK_TEST_POSTGRES_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := NewDB(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	repo := NewSubmissionRepo(db)
	require.NoError(t, repo.EnsureSchema(ctx))

	id := uuid.NewString()
	require.NoError(t, repo.Record(ctx, models.Submission{
		SubmissionID:   id,
		FileNames:      []string{"a.pdf", "b.pdf"},
		Status:         "failed",
		Classification: "too_large",
		Detail:         "Request Entity Too Large",
		DurationMS:     12,
	}))

	recent, err := repo.ListRecent(ctx, 50)
	require.NoError(t, err)
	var found *models.Submission
	for i := range recent {
		if recent[i].SubmissionID == id {
			found = &recent[i]
		}
	}
	require.NotNil(t, found)
	require.Equal(t, []string{"a.pdf", "b.pdf"}, found.FileNames)
	require.Empty(t, found.ProcessedIDs)
	require.Equal(t, "too_large", found.Classification)
}

func TestNonNil(t *testing.T) {
	require.NotNil(t, nonNil(nil))
	require.Nil(t, nullTime(models.Submission{}))
}
