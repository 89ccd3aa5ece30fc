package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paperdesk/internal/models"

	"github.com/stretchr/testify/require"
)

func memFile(name, mime, content string) models.CandidateFile {
	return models.CandidateFile{
		Name:     name,
		Size:     int64(len(content)),
		MIMEType: mime,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestProcessPapersSendsRepeatedFilesField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, PathProcessPapers, r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		files := r.MultipartForm.File[FilesField]
		require.Len(t, files, 2)
		require.Equal(t, "a.pdf", files[0].Filename)
		require.Equal(t, "B.PDF", files[1].Filename)
		require.Equal(t, models.MIMETypePDF, files[1].Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"processedPapers":["id1",{"id":"id2"}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	ids, err := c.ProcessPapers(context.Background(), []models.CandidateFile{
		memFile("a.pdf", models.MIMETypePDF, "%PDF-1.4 a"),
		memFile("B.PDF", "", "%PDF-1.4 b"),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"id1", "id2"}, ids)
}

func TestProcessPapersStatusErrorCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail":"Only PDF files are allowed"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).ProcessPapers(context.Background(), []models.CandidateFile{memFile("a.pdf", "", "x")})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusBadRequest, se.Status)
	require.Equal(t, "Only PDF files are allowed", se.Detail)
}

func TestProcessPapersOpenFailureIsRequestError(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	broken := models.CandidateFile{Name: "gone.pdf", Open: func() (io.ReadCloser, error) {
		return nil, errors.New("file vanished")
	}}
	_, err := NewClient(srv.URL, time.Second).ProcessPapers(context.Background(), []models.CandidateFile{broken})
	var re *RequestError
	require.True(t, errors.As(err, &re))
	require.Contains(t, err.Error(), "file vanished")
	require.False(t, called)
}

func TestConnectionRefusedIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := NewClient(base, time.Second).ListPapers(context.Background())
	var te *TransportError
	require.True(t, errors.As(err, &te))
	require.False(t, te.Timeout())
}

func TestDeadlineIsTransportTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewClient(srv.URL, time.Minute).ListPapers(ctx)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	require.True(t, te.Timeout())
}

func TestListPapersAndCitations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == PathPapers:
			_, _ = io.WriteString(w, `{"papers":[{"id":"p1","title":"Deep Learning"}]}`)
		case r.URL.Path == PathCitations+"p1":
			require.Equal(t, "apa", r.URL.Query().Get("style"))
			_, _ = io.WriteString(w, `{"citations":["Mustafa (2024). Deep Learning."]}`)
		case r.URL.Path == PathGenerateReview+"p1" && r.Method == http.MethodPost:
			_, _ = io.WriteString(w, `{"title":"Review","sections":[{"title":"Introduction","content":"..."}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	c := NewClient(srv.URL, time.Second)

	papers, err := c.ListPapers(context.Background())
	require.NoError(t, err)
	require.Equal(t, []models.Paper{{ID: "p1", Title: "Deep Learning"}}, papers)

	cites, err := c.GetCitations(context.Background(), "p1", models.CitationAPA)
	require.NoError(t, err)
	require.Len(t, cites, 1)

	review, err := c.GenerateReview(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "Introduction", review.Sections[0].Title)

	_, err = c.GenerateReview(context.Background(), " ")
	var re *RequestError
	require.True(t, errors.As(err, &re))
}

func TestDetailFromBody(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"detail":"bad pdf"}`, "bad pdf"},
		{`{"error":{"code":"X","message":"nested"}}`, "nested"},
		{`{"error":"flat"}`, "flat"},
		{`plain text failure`, "plain text failure"},
		{``, "Internal Server Error"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, detailFromBody([]byte(tc.body), http.StatusInternalServerError), tc.body)
	}
}

func TestProcessedPaperAcceptsObjectsWithPaperID(t *testing.T) {
	var r processResponse
	require.NoError(t, json.Unmarshal([]byte(`{"processedPapers":[{"paper_id":"abc"},{"id":7}]}`), &r))
	require.Equal(t, []string{"abc", "7"}, r.ids())

	var single processResponse
	require.NoError(t, json.Unmarshal([]byte(`{"message":"ok","paper_id":"solo"}`), &single))
	require.Empty(t, single.ids())
}

func TestProcessPapersCountsEveryProcessedEntry(t *testing.T) {
	cases := []struct {
		body string
		want []string
	}{
		{`{"processedPapers":[1,2]}`, []string{"1", "2"}},
		{`{"processedPapers":[{"title":"A"},{"title":"B"}]}`, []string{`{"title":"A"}`, `{"title":"B"}`}},
		{`{"processedPapers":["id1",{"id":"id2"},3]}`, []string{"id1", "id2", "3"}},
		{`{"processedPapers":[]}`, []string{}},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, tc.body)
		}))
		ids, err := NewClient(srv.URL, time.Second).ProcessPapers(context.Background(), []models.CandidateFile{
			memFile("a.pdf", "", "x"), memFile("b.pdf", "", "y"),
		})
		srv.Close()
		require.NoError(t, err, tc.body)
		require.Equal(t, tc.want, ids, tc.body)
	}
}
