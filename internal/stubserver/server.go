package stubserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"paperdesk/internal/backend"
	"paperdesk/internal/models"
	"paperdesk/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	DefaultMaxUploadBytes = 50 << 20
	indexFile             = "catalogue.json"
)

type Options struct {
	// MaxUploadBytes caps the process-papers request body.
	MaxUploadBytes int64
	// DataDir keeps uploaded PDFs and the catalogue index. Empty keeps
	// everything in memory.
	DataDir string
	// Quiet disables request logging.
	Quiet bool
}

// Server is a local stand-in for the research assistant backend.
type Server struct {
	opts   Options
	papers *catalogue
	echo   *echo.Echo
	now    func() time.Time
}

func New(opts Options) (*Server, error) {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	s := &Server{opts: opts, papers: newCatalogue(), now: time.Now}
	if opts.DataDir != "" {
		if err := s.loadIndex(); err != nil {
			return nil, err
		}
	}
	s.echo = s.routes()
	return s, nil
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	if !s.opts.Quiet {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Format: "stub method=${method} uri=${uri} status=${status} latency=${latency_human}\n",
		}))
	}
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"ok": true})
	})

	api := e.Group("/api")
	api.POST("/process-papers", s.handleProcessPapers, middleware.BodyLimit(fmt.Sprintf("%dB", s.opts.MaxUploadBytes)))
	api.GET("/papers", s.handleListPapers)
	api.POST("/generate-review/:paperId", s.handleGenerateReview)
	api.GET("/citations/:paperId", s.handleCitations)
	return e
}

func (s *Server) Handler() http.Handler { return s.echo }

// Start blocks serving addr until Shutdown.
func (s *Server) Start(addr string) error {
	log.Printf("stub server listening addr=%s max_upload_bytes=%d data_dir=%q", addr, s.opts.MaxUploadBytes, s.opts.DataDir)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve stub: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleProcessPapers(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid multipart body: %v", err))
	}
	defer func() { _ = form.RemoveAll() }()

	files := form.File[backend.FilesField]
	if len(files) == 0 {
		if single, ok := firstSingleFile(form.File); ok {
			files = append(files, single)
		}
	}
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No files provided")
	}

	processed := make([]string, 0, len(files))
	for _, fh := range files {
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
			log.Printf("stub skip non-pdf file=%q", fh.Filename)
			continue
		}
		rec, err := s.ingest(fh)
		if err != nil {
			return err
		}
		processed = append(processed, rec.ID)
	}
	if s.opts.DataDir != "" && len(processed) > 0 {
		if err := util.WriteJSONAtomic(filepath.Join(s.opts.DataDir, indexFile), s.papers.list()); err != nil {
			return fmt.Errorf("write catalogue index: %w", err)
		}
	}
	log.Printf("stub processed files=%d papers=%d", len(files), len(processed))
	return c.JSON(http.StatusOK, map[string]any{"processedPapers": processed})
}

func (s *Server) ingest(fh *multipart.FileHeader) (paperRecord, error) {
	src, err := fh.Open()
	if err != nil {
		return paperRecord{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return paperRecord{}, fmt.Errorf("read upload: %w", err)
	}

	title, authors := describe(fh.Filename, data)
	rec := paperRecord{
		ID:         util.SHA256Hex(data),
		Title:      title,
		Authors:    authors,
		Filename:   filepath.Base(fh.Filename),
		Size:       int64(len(data)),
		UploadedAt: s.now().UTC(),
	}
	if s.opts.DataDir != "" {
		if err := util.WriteFileAtomic(util.SafeJoin(s.opts.DataDir, rec.ID+".pdf"), data); err != nil {
			return paperRecord{}, fmt.Errorf("save upload: %w", err)
		}
	}
	s.papers.put(rec)
	return rec, nil
}

func (s *Server) handleListPapers(c echo.Context) error {
	recs := s.papers.list()
	out := make([]models.Paper, 0, len(recs))
	for _, p := range recs {
		out = append(out, p.summary())
	}
	return c.JSON(http.StatusOK, map[string]any{"papers": out})
}

func (s *Server) handleGenerateReview(c echo.Context) error {
	p, err := s.lookup(c.Param("paperId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, buildReview(p))
}

func (s *Server) handleCitations(c echo.Context) error {
	raw := c.QueryParam("style")
	if raw == "" {
		raw = string(models.CitationIEEE)
	}
	style, ok := models.ParseCitationStyle(raw)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Unsupported citation style: %s", raw))
	}
	p, err := s.lookup(c.Param("paperId"))
	if err != nil {
		return err
	}
	text, err := formatCitation(style, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"citations": []string{text}})
}

func (s *Server) lookup(id string) (paperRecord, error) {
	id = strings.TrimSpace(id)
	p, ok := s.papers.get(id)
	if id == "" || !ok {
		return paperRecord{}, echo.NewHTTPError(http.StatusNotFound, "Paper not found")
	}
	return p, nil
}

func (s *Server) loadIndex() error {
	if err := util.EnsureDir(s.opts.DataDir); err != nil {
		return err
	}
	var recs []paperRecord
	err := util.ReadJSON(filepath.Join(s.opts.DataDir, indexFile), &recs)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load catalogue: %w", err)
	}
	for _, r := range recs {
		s.papers.put(r)
	}
	log.Printf("stub catalogue loaded papers=%d", len(recs))
	return nil
}

func firstSingleFile(m map[string][]*multipart.FileHeader) (*multipart.FileHeader, bool) {
	for _, v := range m {
		if len(v) > 0 {
			return v[0], true
		}
	}
	return nil, false
}

// errorHandler renders every failure as {"detail": ...}. Internal errors are
// logged and reported generically.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	detail := "Internal server error. Please retry or check service logs."
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if code < http.StatusInternalServerError {
			detail = fmt.Sprint(he.Message)
		}
	}
	if code >= http.StatusInternalServerError {
		log.Printf("stub error method=%s path=%s err=%v", c.Request().Method, c.Request().URL.Path, err)
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"detail": detail})
	}
	if err != nil {
		log.Printf("stub write error err=%v", err)
	}
}
