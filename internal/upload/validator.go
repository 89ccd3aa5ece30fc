package upload

import (
	"fmt"
	"strings"

	"paperdesk/internal/models"
)

type Verdict struct {
	Accepted bool
	Reason   string
}

// Classify accepts a file when its declared media type is exactly
// application/pdf or its name ends in .pdf in any case. Drag sources often
// omit the media type, so the name alone is enough. The file contents are
// never read.
func Classify(f models.CandidateFile) Verdict {
	if f.MIMEType == models.MIMETypePDF {
		return Verdict{Accepted: true}
	}
	if strings.HasSuffix(strings.ToLower(f.Name), ".pdf") {
		return Verdict{Accepted: true}
	}
	return Verdict{Reason: fmt.Sprintf("%s is not a PDF file", displayName(f.Name))}
}

// Partition splits files into accepted and rejected subsets, both in arrival
// order. A rejected file never affects the others.
func Partition(files []models.CandidateFile) (accepted, rejected []models.CandidateFile) {
	for _, f := range files {
		if Classify(f).Accepted {
			accepted = append(accepted, f)
			continue
		}
		rejected = append(rejected, f)
	}
	return accepted, rejected
}

// RejectionFailure builds the notice for files that failed validation, or nil
// when nothing was rejected.
func RejectionFailure(rejected []models.CandidateFile) *Failure {
	if len(rejected) == 0 {
		return nil
	}
	noun := "files"
	if len(rejected) == 1 {
		noun = "file"
	}
	return &Failure{
		Classification: RejectedFiles,
		Detail:         fmt.Sprintf("%d %s rejected (%s). Only PDF files are allowed.", len(rejected), noun, joinNames(rejected)),
	}
}

func joinNames(files []models.CandidateFile) string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, displayName(f.Name))
	}
	return strings.Join(names, ", ")
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(unnamed)"
	}
	return name
}
