package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"paperdesk/internal/models"
)

const (
	PathProcessPapers  = "/api/process-papers"
	PathPapers         = "/api/papers"
	PathGenerateReview = "/api/generate-review/"
	PathCitations      = "/api/citations/"

	// FilesField is repeated once per uploaded file.
	FilesField = "files"
)

// Client talks to the research assistant backend. No authentication headers
// are sent.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// ProcessPapers sends every file as one multipart request and returns the
// identifiers the server reports as processed.
func (c *Client) ProcessPapers(ctx context.Context, files []models.CandidateFile) ([]string, error) {
	const op = "process papers"
	body, contentType, err := buildMultipart(files)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PathProcessPapers, body)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	var parsed processResponse
	if err := c.do(req, op, &parsed); err != nil {
		return nil, err
	}
	return parsed.ids(), nil
}

func (c *Client) ListPapers(ctx context.Context) ([]models.Paper, error) {
	const op = "list papers"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+PathPapers, nil)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	var parsed struct {
		Papers []models.Paper `json:"papers"`
	}
	if err := c.do(req, op, &parsed); err != nil {
		return nil, err
	}
	if parsed.Papers == nil {
		parsed.Papers = []models.Paper{}
	}
	return parsed.Papers, nil
}

func (c *Client) GenerateReview(ctx context.Context, paperID string) (models.Review, error) {
	const op = "generate review"
	paperID = strings.TrimSpace(paperID)
	if paperID == "" {
		return models.Review{}, &RequestError{Op: op, Err: fmt.Errorf("paper id is required")}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PathGenerateReview+url.PathEscape(paperID), nil)
	if err != nil {
		return models.Review{}, &RequestError{Op: op, Err: err}
	}
	var review models.Review
	if err := c.do(req, op, &review); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

func (c *Client) GetCitations(ctx context.Context, paperID string, style models.CitationStyle) ([]string, error) {
	const op = "get citations"
	paperID = strings.TrimSpace(paperID)
	if paperID == "" {
		return nil, &RequestError{Op: op, Err: fmt.Errorf("paper id is required")}
	}
	u := c.baseURL + PathCitations + url.PathEscape(paperID)
	if style != "" {
		u += "?" + url.Values{"style": []string{string(style)}}.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	var parsed struct {
		Citations []string `json:"citations"`
	}
	if err := c.do(req, op, &parsed); err != nil {
		return nil, err
	}
	return parsed.Citations, nil
}

func (c *Client) do(req *http.Request, op string, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, Status: resp.StatusCode, Detail: detailFromBody(body, resp.StatusCode)}
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func buildMultipart(files []models.CandidateFile) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, f := range files {
		if err := writeFilePart(w, f); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, f models.CandidateFile) error {
	src, err := f.Reader()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer src.Close()

	contentType := f.MIMEType
	if contentType == "" {
		contentType = models.MIMETypePDF
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, FilesField, f.Name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part %s: %w", f.Name, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy %s: %w", f.Name, err)
	}
	return nil
}

type processResponse struct {
	ProcessedPapers []json.RawMessage `json:"processedPapers"`
}

// ids returns one identifier per processedPapers element. Elements are bare
// ids (string or number) or objects carrying id or paper_id; anything else
// still counts and is reported by its raw JSON.
func (r processResponse) ids() []string {
	out := make([]string, 0, len(r.ProcessedPapers))
	for _, raw := range r.ProcessedPapers {
		out = append(out, processedID(raw))
	}
	return out
}

func processedID(raw json.RawMessage) string {
	if id := rawText(raw); id != "" {
		return id
	}
	var obj struct {
		ID      json.RawMessage `json:"id"`
		PaperID json.RawMessage `json:"paper_id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if id := rawText(obj.ID); id != "" {
			return id
		}
		if id := rawText(obj.PaperID); id != "" {
			return id
		}
	}
	return string(bytes.TrimSpace(raw))
}
