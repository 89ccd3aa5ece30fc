package stubserver

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"paperdesk/internal/util"

	"github.com/ledongthuc/pdf"
)

// extractText returns the plain text of an in-memory PDF. The parser panics on
// some malformed inputs, so that is reported as an error too.
func extractText(data []byte) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("parse pdf: %v", p)
		}
	}()
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return "", util.ErrNotPDF
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, reader); err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}
	text = util.SanitizeText(buf.String())
	if text == "" {
		return "", util.ErrNoExtractableText
	}
	return text, nil
}

// headerLines takes the title from the first non-empty line and the author
// list from the second.
func headerLines(text string) (string, []string) {
	s := bufio.NewScanner(strings.NewReader(text))
	nonEmpty := make([]string, 0, 2)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		nonEmpty = append(nonEmpty, line)
		if len(nonEmpty) == 2 {
			break
		}
	}
	title := ""
	var authors []string
	if len(nonEmpty) > 0 {
		title = util.DisplaySnippet(nonEmpty[0], 200)
	}
	if len(nonEmpty) > 1 {
		authors = splitAuthors(nonEmpty[1])
	}
	return title, authors
}

func splitAuthors(line string) []string {
	line = strings.ReplaceAll(line, " and ", ",")
	parts := strings.Split(line, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// describe derives title and authors from the upload. Unreadable PDFs fall
// back to the file name.
func describe(filename string, data []byte) (string, []string) {
	fallback := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	text, err := extractText(data)
	if err != nil {
		return fallback, nil
	}
	title, authors := headerLines(text)
	if title == "" {
		title = fallback
	}
	return title, authors
}
