package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"paperdesk/internal/models"
	"paperdesk/internal/upload"
	"paperdesk/internal/util"
)

// requestError turns a backend error into the user-facing line. A 404 on a
// paper route carries the server's detail instead of the endpoint message.
func requestError(err error) error {
	f := upload.ClassifyError(err)
	if f == nil {
		return nil
	}
	if f.Classification == upload.NotFound && f.Detail != "" && f.Detail != "Not Found" {
		return errors.New("Not found: " + f.Detail)
	}
	return errors.New(f.Message())
}

func printOutcome(w io.Writer, out upload.Outcome) {
	fmt.Fprintln(w, out.Message())
	for _, id := range out.ProcessedIDs {
		fmt.Fprintf(w, "  %s\n", id)
	}
}

func printResult(w io.Writer, res upload.Result) {
	for _, e := range res.Added {
		fmt.Fprintf(w, "added %s (%d bytes)\n", e.File.Name, e.File.Size)
	}
	if res.Notice != nil {
		fmt.Fprintln(w, res.Notice.Message())
	}
}

func printSelection(w io.Writer, entries []models.SelectionEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no files selected")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d bytes\n", i+1, e.File.Name, e.File.Size)
	}
	_ = tw.Flush()
}

func printPapers(w io.Writer, papers []models.Paper) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "no papers processed yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE")
	for _, p := range papers {
		fmt.Fprintf(tw, "%s\t%s\n", p.ID, util.DisplaySnippet(p.Title, 80))
	}
	_ = tw.Flush()
}

func printReview(w io.Writer, r models.Review) {
	if r.Title != "" {
		fmt.Fprintf(w, "# %s\n", r.Title)
	}
	if len(r.Sections) == 0 {
		fmt.Fprintln(w, strings.TrimSpace(r.Content))
		return
	}
	for _, s := range r.Sections {
		fmt.Fprintf(w, "\n## %s\n%s\n", s.Title, strings.TrimSpace(s.Content))
	}
}

func printHistory(w io.Writer, subs []models.Submission) {
	if len(subs) == 0 {
		fmt.Fprintln(w, "no submissions recorded")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tSTATUS\tFILES\tPROCESSED\tDETAIL")
	for _, s := range subs {
		status := s.Status
		if s.Classification != "" {
			status += " (" + s.Classification + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04:05"), status,
			util.DisplaySnippet(strings.Join(s.FileNames, ", "), 60), len(s.ProcessedIDs),
			util.DisplaySnippet(s.Detail, 60))
	}
	_ = tw.Flush()
}
