package commands

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"paperdesk/internal/backend"
	"paperdesk/internal/models"
	"paperdesk/internal/stubserver"
	"paperdesk/internal/upload"

	"github.com/stretchr/testify/require"
)

func stubClient(t *testing.T) *backend.Client {
	t.Helper()
	srv, err := stubserver.New(stubserver.Options{Quiet: true})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return backend.NewClient(ts.URL, 5*time.Second)
}

func writeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("content of "+n), 0o644))
	}
	return dir
}

func TestShellSessionFlow(t *testing.T) {
	dir := writeFiles(t, "a.pdf", "notes.txt", "b.pdf")
	p := func(n string) string { return filepath.Join(dir, n) }
	script := strings.Join([]string{
		"pick " + p("a.pdf") + " " + p("notes.txt"),
		"drop " + p("b.pdf"),
		"ls",
		"rm 9",
		"rm 1",
		"ls",
		"submit",
		"ls",
		"status",
		"frobnicate",
		"quit",
		"ls",
	}, "\n")

	var out bytes.Buffer
	s := upload.NewSession(stubClient(t), time.Second)
	require.NoError(t, runShell(context.Background(), strings.NewReader(script), &out, s))

	text := out.String()
	require.Contains(t, text, "added a.pdf")
	require.Contains(t, text, "1 file rejected (notes.txt). Only PDF files are allowed.")
	require.Contains(t, text, "added b.pdf")
	require.Contains(t, text, "nothing removed")
	require.Contains(t, text, "Successfully processed 1 paper")
	require.Contains(t, text, "no files selected")
	require.Contains(t, text, `unknown command "frobnicate"`)
	require.Equal(t, 0, s.Selection().Len())
}

func TestShellSubmitEmptySelection(t *testing.T) {
	var out bytes.Buffer
	s := upload.NewSession(stubClient(t), time.Second)
	require.NoError(t, runShell(context.Background(), strings.NewReader("submit\n"), &out, s))
	require.Contains(t, out.String(), "Please select at least one file to upload.")
}

func TestShellAllRejectedDropWording(t *testing.T) {
	dir := writeFiles(t, "x.docx")
	var out bytes.Buffer
	s := upload.NewSession(stubClient(t), time.Second)
	require.NoError(t, runShell(context.Background(), strings.NewReader("drop "+filepath.Join(dir, "x.docx")+"\n"), &out, s))
	require.Contains(t, out.String(), "No valid PDF files found (x.docx). Please drop at least one PDF file.")
}

func TestRequestErrorKeepsPaperDetail(t *testing.T) {
	err := requestError(&backend.StatusError{Op: "generate review", Status: 404, Detail: "Paper not found"})
	require.EqualError(t, err, "Not found: Paper not found")

	err = requestError(&backend.StatusError{Op: "list papers", Status: 404, Detail: "Not Found"})
	require.EqualError(t, err, "Server endpoint not found. Please check the server configuration.")

	err = requestError(&backend.TransportError{Op: "list papers", Err: errors.New("connection refused")})
	require.EqualError(t, err, "No response from server. Please check if the server is running.")

	require.NoError(t, requestError(nil))
}

func TestPrintReviewFallsBackToContent(t *testing.T) {
	var out bytes.Buffer
	printReview(&out, models.Review{Title: "T", Content: " body "})
	require.Equal(t, "# T\nbody\n", out.String())
}
