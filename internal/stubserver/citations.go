package stubserver

import (
	"fmt"
	"strconv"
	"strings"

	"paperdesk/internal/models"
)

type formatter func(p paperRecord) string

var formatters = map[models.CitationStyle]formatter{
	models.CitationIEEE: formatIEEE,
	models.CitationAPA:  formatAPA,
	models.CitationMLA:  formatMLA,
}

func formatCitation(style models.CitationStyle, p paperRecord) (string, error) {
	f, ok := formatters[style]
	if !ok {
		return "", fmt.Errorf("unsupported citation style: %s", style)
	}
	return f(p), nil
}

func yearOf(p paperRecord) string {
	if p.Year <= 0 {
		return "n.d."
	}
	return strconv.Itoa(p.Year)
}

func authorsOrUnknown(p paperRecord) []string {
	if len(p.Authors) == 0 {
		return []string{"Unknown"}
	}
	return p.Authors
}

// IEEE lists up to six authors, then "et al.".
func formatIEEE(p paperRecord) string {
	authors := authorsOrUnknown(p)
	if len(authors) > 6 {
		authors = append(append([]string{}, authors[:6]...), "et al.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s, \"%s,\"", strings.Join(authors, ", "), p.Title)
	if p.Journal != "" {
		fmt.Fprintf(&b, " %s,", p.Journal)
	}
	if p.DOI != "" {
		fmt.Fprintf(&b, " doi: %s,", p.DOI)
	}
	fmt.Fprintf(&b, " %s.", yearOf(p))
	return b.String()
}

func formatAPA(p paperRecord) string {
	authors := authorsOrUnknown(p)
	var author string
	switch len(authors) {
	case 1:
		author = authors[0]
	case 2:
		author = authors[0] + " & " + authors[1]
	default:
		author = authors[0] + " et al."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s). %s.", author, yearOf(p), p.Title)
	if p.Journal != "" {
		fmt.Fprintf(&b, " %s.", p.Journal)
	}
	if p.DOI != "" {
		fmt.Fprintf(&b, " https://doi.org/%s", p.DOI)
	}
	return b.String()
}

func formatMLA(p paperRecord) string {
	authors := authorsOrUnknown(p)
	var author string
	switch len(authors) {
	case 1:
		author = authors[0]
	case 2:
		author = authors[0] + " and " + authors[1]
	default:
		author = authors[0] + ", et al."
	}
	if !strings.HasSuffix(author, ".") {
		author += "."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s \"%s.\"", author, p.Title)
	if p.Journal != "" {
		fmt.Fprintf(&b, " %s,", p.Journal)
	}
	fmt.Fprintf(&b, " %s.", yearOf(p))
	if p.DOI != "" {
		fmt.Fprintf(&b, " doi:%s.", p.DOI)
	}
	return b.String()
}
