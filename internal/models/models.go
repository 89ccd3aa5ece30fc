package models

import (
	"errors"
	"io"
	"strings"
	"time"
)

const MIMETypePDF = "application/pdf"

// CandidateFile is a file offered by the user before validation. MIMEType is
// empty when the source did not declare one.
type CandidateFile struct {
	Name     string
	Size     int64
	MIMEType string
	Open     func() (io.ReadCloser, error)
}

var ErrNoContent = errors.New("candidate file has no content source")

func (f CandidateFile) Reader() (io.ReadCloser, error) {
	if f.Open == nil {
		return nil, ErrNoContent
	}
	return f.Open()
}

type SelectionEntry struct {
	ID      string        `json:"id"`
	File    CandidateFile `json:"-"`
	AddedAt time.Time     `json:"added_at"`
}

type Paper struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ReviewSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Review struct {
	PaperID  string          `json:"paper_id,omitempty"`
	Title    string          `json:"title,omitempty"`
	Content  string          `json:"content,omitempty"`
	Sections []ReviewSection `json:"sections,omitempty"`
}

type Author struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
}

type CitationStyle string

const (
	CitationIEEE CitationStyle = "ieee"
	CitationAPA  CitationStyle = "apa"
	CitationMLA  CitationStyle = "mla"
)

func ParseCitationStyle(raw string) (CitationStyle, bool) {
	switch CitationStyle(strings.ToLower(strings.TrimSpace(raw))) {
	case CitationIEEE:
		return CitationIEEE, true
	case CitationAPA:
		return CitationAPA, true
	case CitationMLA:
		return CitationMLA, true
	default:
		return "", false
	}
}

// Submission is one submit attempt as recorded in the ledger.
type Submission struct {
	SubmissionID   string    `json:"submission_id"`
	FileNames      []string  `json:"file_names"`
	ProcessedIDs   []string  `json:"processed_ids"`
	Status         string    `json:"status"`
	Classification string    `json:"classification,omitempty"`
	Detail         string    `json:"detail,omitempty"`
	DurationMS     int64     `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}
