package upload

import (
	"fmt"

	"paperdesk/internal/models"
)

type DragState int

const (
	Idle DragState = iota
	Hovering
)

func (s DragState) String() string {
	if s == Hovering {
		return "hovering"
	}
	return "idle"
}

type EventKind string

const (
	DragEnter    EventKind = "dragenter"
	DragOver     EventKind = "dragover"
	DragLeave    EventKind = "dragleave"
	Drop         EventKind = "drop"
	PickerChange EventKind = "change"
	// PickerOpen is the click that opens the hidden file picker. It is not a
	// selection by itself.
	PickerOpen EventKind = "click"
)

type Event struct {
	Kind  EventKind
	Files []models.CandidateFile
}

// Result tells the caller what the event did. PreventDefault mirrors the
// browser contract: the drop target must stop the default open-file action.
type Result struct {
	PreventDefault bool
	Added          []models.SelectionEntry
	Rejected       []models.CandidateFile
	Notice         *Failure
}

// DropZone translates drag and picker events into selection changes. It does
// no IO.
type DropZone struct {
	selection *Selection
	state     DragState
	notice    *Failure
}

func NewDropZone(sel *Selection) *DropZone {
	return &DropZone{selection: sel}
}

func (d *DropZone) State() DragState { return d.state }

// Notice is the current validation notice, if any.
func (d *DropZone) Notice() *Failure { return d.notice }

func (d *DropZone) ClearNotice() { d.notice = nil }

func (d *DropZone) Handle(ev Event) Result {
	switch ev.Kind {
	case DragEnter, DragOver:
		d.state = Hovering
		return Result{PreventDefault: true}
	case DragLeave:
		d.state = Idle
		return Result{PreventDefault: true}
	case Drop:
		d.state = Idle
		res := d.ingest(ev.Files, "drop")
		res.PreventDefault = true
		return res
	case PickerChange:
		return d.ingest(ev.Files, "select")
	default:
		return Result{}
	}
}

func (d *DropZone) ingest(files []models.CandidateFile, verb string) Result {
	if len(files) == 0 {
		return Result{}
	}
	accepted, rejected := Partition(files)
	res := Result{Rejected: rejected}
	if len(accepted) > 0 {
		res.Added = d.selection.Add(accepted...)
		// An accepted file retires an earlier rejection notice.
		if d.notice != nil && d.notice.Classification == RejectedFiles {
			d.notice = nil
		}
	}
	switch {
	case len(rejected) == 0:
	case len(accepted) == 0:
		d.notice = &Failure{
			Classification: RejectedFiles,
			Detail:         fmt.Sprintf("No valid PDF files found (%s). Please %s at least one PDF file.", joinNames(rejected), verb),
		}
	default:
		d.notice = RejectionFailure(rejected)
	}
	res.Notice = d.notice
	return res
}
