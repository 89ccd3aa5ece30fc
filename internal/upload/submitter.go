package upload

import (
	"context"
	"fmt"
	"log"
	"time"

	"paperdesk/internal/models"

	"github.com/google/uuid"
)

const DefaultTimeout = 60 * time.Second

// Processor is the remote "process papers" endpoint.
type Processor interface {
	ProcessPapers(ctx context.Context, files []models.CandidateFile) ([]string, error)
}

// Recorder receives every submission outcome. Recording is best effort.
type Recorder interface {
	Record(ctx context.Context, s models.Submission) error
}

type Outcome struct {
	SubmissionID string
	ProcessedIDs []string
	Failure      *Failure
	Duration     time.Duration
}

func (o Outcome) Succeeded() bool { return o.Failure == nil }

func (o Outcome) Message() string {
	if o.Failure != nil {
		return o.Failure.Message()
	}
	noun := "papers"
	if len(o.ProcessedIDs) == 1 {
		noun = "paper"
	}
	return fmt.Sprintf("Successfully processed %d %s", len(o.ProcessedIDs), noun)
}

// Submitter uploads a batch in one request. Callers must not start a second
// Submit while one is in flight; Session enforces that.
type Submitter struct {
	processor Processor
	selection *Selection
	timeout   time.Duration
	recorder  Recorder
}

func NewSubmitter(p Processor, sel *Selection, timeout time.Duration) *Submitter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Submitter{processor: p, selection: sel, timeout: timeout}
}

func (s *Submitter) WithRecorder(r Recorder) *Submitter {
	s.recorder = r
	return s
}

// Submit sends the batch and, only on confirmed success, removes it from the
// selection. Every failure comes back classified inside the Outcome.
func (s *Submitter) Submit(ctx context.Context, b Batch) Outcome {
	out := Outcome{SubmissionID: uuid.NewString()}
	if b.Len() == 0 {
		out.Failure = &Failure{Classification: LocalValidation, Detail: "empty batch"}
		log.Printf("upload rejected submission_id=%s classification=%s", out.SubmissionID, LocalValidation)
		return out
	}

	start := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	ids, err := s.processor.ProcessPapers(callCtx, b.Files())
	cancel()
	out.Duration = time.Since(start)

	switch {
	case err != nil:
		out.Failure = ClassifyError(err)
	case len(ids) == 0:
		out.Failure = &Failure{Classification: EmptyResult, Detail: "server reported zero processed papers"}
	default:
		out.ProcessedIDs = ids
		if s.selection != nil {
			s.selection.Consume(b)
		}
	}

	if out.Failure != nil {
		log.Printf("upload failed submission_id=%s files=%d classification=%s status=%d duration_ms=%d detail=%q",
			out.SubmissionID, b.Len(), out.Failure.Classification, out.Failure.Status, out.Duration.Milliseconds(), out.Failure.Detail)
	} else {
		log.Printf("upload processed submission_id=%s files=%d processed=%d duration_ms=%d",
			out.SubmissionID, b.Len(), len(out.ProcessedIDs), out.Duration.Milliseconds())
	}
	s.record(ctx, b, out)
	return out
}

func (s *Submitter) record(ctx context.Context, b Batch, out Outcome) {
	if s.recorder == nil {
		return
	}
	names := make([]string, 0, b.Len())
	for _, f := range b.Files() {
		names = append(names, f.Name)
	}
	rec := models.Submission{
		SubmissionID: out.SubmissionID,
		FileNames:    names,
		ProcessedIDs: out.ProcessedIDs,
		Status:       "processed",
		DurationMS:   out.Duration.Milliseconds(),
		CreatedAt:    time.Now().UTC(),
	}
	if out.Failure != nil {
		rec.Status = "failed"
		rec.Classification = string(out.Failure.Classification)
		rec.Detail = out.Failure.Detail
	}
	if err := s.recorder.Record(ctx, rec); err != nil {
		log.Printf("record submission failed submission_id=%s err=%v", out.SubmissionID, err)
	}
}
