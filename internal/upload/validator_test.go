package upload

import (
	"io"
	"strings"
	"testing"

	"paperdesk/internal/models"

	"github.com/stretchr/testify/require"
)

func pdf(name string) models.CandidateFile {
	return file(name, models.MIMETypePDF)
}

func file(name, mime string) models.CandidateFile {
	return models.CandidateFile{
		Name:     name,
		Size:     int64(len(name)),
		MIMEType: mime,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("%PDF-1.4 " + name)), nil
		},
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		mime string
		want bool
	}{
		{"paper.pdf", models.MIMETypePDF, true},
		{"paper.PDF", "", true},
		{"Paper.Pdf", "application/octet-stream", true},
		{"scan", models.MIMETypePDF, true},
		{"notes.txt", "text/plain", false},
		{"notes.txt", "Application/PDF", false},
		{"notes.txt", " application/pdf", false},
		{"notes.pdf.txt", "", false},
		{"pdf", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got := Classify(file(tc.name, tc.mime))
		require.Equal(t, tc.want, got.Accepted, "name=%q mime=%q", tc.name, tc.mime)
		if !tc.want {
			require.NotEmpty(t, got.Reason)
		}
	}
}

func TestClassifyNeverOpensFile(t *testing.T) {
	f := models.CandidateFile{Name: "a.pdf", Open: func() (io.ReadCloser, error) {
		t.Fatalf("validator must not read file contents")
		return nil, nil
	}}
	require.True(t, Classify(f).Accepted)
}

func TestPartitionKeepsOrder(t *testing.T) {
	accepted, rejected := Partition([]models.CandidateFile{
		file("a.pdf", ""), file("b.txt", "text/plain"), file("c.pdf", ""), file("d.doc", ""),
	})
	require.Equal(t, []string{"a.pdf", "c.pdf"}, names(accepted))
	require.Equal(t, []string{"b.txt", "d.doc"}, names(rejected))
}

func TestRejectionFailureListsNames(t *testing.T) {
	require.Nil(t, RejectionFailure(nil))
	f := RejectionFailure([]models.CandidateFile{file("b.txt", "")})
	require.Equal(t, RejectedFiles, f.Classification)
	require.Contains(t, f.Message(), "1 file rejected")
	require.Contains(t, f.Message(), "b.txt")
}

func names(files []models.CandidateFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}
