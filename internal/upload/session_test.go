package upload

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"paperdesk/internal/models"

	"github.com/stretchr/testify/require"
)

func TestSessionRejectsReentrantSubmit(t *testing.T) {
	p := &fakeProcessor{ids: []string{"p1"}, block: make(chan struct{})}
	s := NewSession(p, time.Second)
	s.Pick(pdf("a.pdf"))

	done := make(chan Outcome, 1)
	errs := make(chan error, 1)
	go func() {
		out, err := s.Submit(context.Background())
		errs <- err
		done <- out
	}()
	require.Eventually(t, func() bool { return p.Calls() == 1 }, time.Second, 5*time.Millisecond)
	require.True(t, s.Busy())
	require.False(t, s.CanSubmit())

	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, ErrBusy)

	// Files added mid-flight belong to the next batch.
	s.Drop(pdf("late.pdf"))

	close(p.block)
	require.NoError(t, <-errs)
	out := <-done
	require.True(t, out.Succeeded())
	require.Equal(t, 1, p.Calls())
	require.False(t, s.Busy())
	require.Equal(t, []string{"late.pdf"}, entryNames(s.Selection().Snapshot()))
	require.Equal(t, "Successfully processed 1 paper", s.Status())
}

func TestSessionEmptySubmit(t *testing.T) {
	p := &fakeProcessor{ids: []string{"p1"}}
	s := NewSession(p, time.Second)
	out, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, LocalValidation, out.Failure.Classification)
	require.Equal(t, 0, p.Calls())
	require.Equal(t, LocalValidation, s.LastFailure().Classification)
}

func TestSessionRejectionNoticeClearedByValidAdd(t *testing.T) {
	s := NewSession(&fakeProcessor{}, time.Second)
	s.Drop(file("a.txt", ""))
	require.Equal(t, RejectedFiles, s.LastFailure().Classification)

	s.Drop(pdf("b.pdf"))
	require.Nil(t, s.LastFailure())
	require.Empty(t, s.Status())
}

func TestSessionScenarioDropThenSubmit(t *testing.T) {
	p := &fakeProcessor{ids: []string{"id1", "id2"}}
	s := NewSession(p, time.Second)
	s.Handle(Event{Kind: DragEnter})
	require.Equal(t, Hovering, s.DragState())
	res := s.Drop(file("a.pdf", ""), file("b.txt", ""), file("c.pdf", ""))
	require.Equal(t, Idle, s.DragState())
	require.Len(t, res.Rejected, 1)
	require.Contains(t, s.Status(), "1 file rejected")

	require.False(t, s.RemoveAt(5))
	out, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, [][]string{{"a.pdf", "c.pdf"}}, p.got)
	require.Equal(t, "Successfully processed 2 papers", out.Message())
	require.Equal(t, 0, s.Selection().Len())
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Paper.PDF")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	f, err := FromPath(path)
	require.NoError(t, err)
	require.Equal(t, "Paper.PDF", f.Name)
	require.Equal(t, int64(8), f.Size)
	require.True(t, Classify(f).Accepted)

	rc, err := f.Reader()
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	files, errs := FromPaths([]string{path, filepath.Join(dir, "missing.pdf"), dir})
	require.Len(t, files, 1)
	require.Len(t, errs, 2)
}

func TestCandidateWithoutSourceFailsAtRead(t *testing.T) {
	_, err := models.CandidateFile{Name: "a.pdf"}.Reader()
	require.ErrorIs(t, err, models.ErrNoContent)
}
