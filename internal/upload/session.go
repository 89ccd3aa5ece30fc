package upload

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"paperdesk/internal/models"
)

var ErrBusy = errors.New("an upload is already in progress")

// Session is one upload view: it owns the selection, the drop zone and the
// submitter for as long as the view is open. Events may keep arriving while an
// upload is in flight; they land in the next batch.
type Session struct {
	selection *Selection
	submitter *Submitter
	busy      atomic.Bool

	mu       sync.Mutex
	dropZone *DropZone
	status   string
	lastErr  *Failure
}

func NewSession(p Processor, timeout time.Duration) *Session {
	sel := NewSelection()
	return &Session{
		selection: sel,
		dropZone:  NewDropZone(sel),
		submitter: NewSubmitter(p, sel, timeout),
	}
}

func (s *Session) WithRecorder(r Recorder) *Session {
	s.submitter.WithRecorder(r)
	return s
}

func (s *Session) Selection() *Selection { return s.selection }

func (s *Session) DragState() DragState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropZone.State()
}

// Busy reports whether the submit trigger should be disabled.
func (s *Session) Busy() bool { return s.busy.Load() }

func (s *Session) CanSubmit() bool { return !s.Busy() && s.selection.Len() > 0 }

// Status is the last user-facing message, success or error.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) LastFailure() *Failure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) Handle(ev Event) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.dropZone.Handle(ev)
	switch {
	case res.Notice != nil:
		s.setFailure(res.Notice)
	case len(res.Added) > 0 && s.lastErr != nil && s.lastErr.Classification == RejectedFiles:
		s.lastErr = nil
		s.status = ""
	}
	return res
}

func (s *Session) Pick(files ...models.CandidateFile) Result {
	return s.Handle(Event{Kind: PickerChange, Files: files})
}

func (s *Session) Drop(files ...models.CandidateFile) Result {
	return s.Handle(Event{Kind: Drop, Files: files})
}

func (s *Session) RemoveAt(i int) bool { return s.selection.RemoveAt(i) }

func (s *Session) RemoveAll() {
	s.selection.RemoveAll()
	s.mu.Lock()
	s.dropZone.ClearNotice()
	s.mu.Unlock()
}

// Submit snapshots the selection and uploads it. A call made while another
// is in flight returns ErrBusy and sends nothing.
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return Outcome{}, ErrBusy
	}
	defer s.busy.Store(false)

	out := s.submitter.Submit(ctx, s.selection.Batch())

	s.mu.Lock()
	defer s.mu.Unlock()
	if out.Failure != nil {
		s.setFailure(out.Failure)
		return out, nil
	}
	s.lastErr = nil
	s.status = out.Message()
	s.dropZone.ClearNotice()
	return out, nil
}

func (s *Session) setFailure(f *Failure) {
	s.lastErr = f
	s.status = f.Message()
}
