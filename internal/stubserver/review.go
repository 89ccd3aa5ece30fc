package stubserver

import (
	"fmt"
	"strings"

	"paperdesk/internal/models"
	"paperdesk/internal/util"
)

var reviewSections = []string{"Introduction", "Methodology", "Results", "Discussion", "Conclusion"}

// buildReview produces a deterministic review so the client can be exercised
// without a language model behind the server.
func buildReview(p paperRecord) models.Review {
	title := "Literature Review: " + util.DisplaySnippet(p.Title, 100)
	by := "unknown authors"
	if len(p.Authors) > 0 {
		by = strings.Join(p.Authors, ", ")
	}

	sections := make([]models.ReviewSection, 0, len(reviewSections))
	var content strings.Builder
	fmt.Fprintf(&content, "# %s\n", title)
	for _, name := range reviewSections {
		body := sectionBody(name, p.Title, by)
		sections = append(sections, models.ReviewSection{Title: name, Content: body})
		fmt.Fprintf(&content, "\n## %s\n%s\n", name, body)
	}
	return models.Review{
		PaperID:  p.ID,
		Title:    title,
		Content:  strings.TrimSpace(content.String()),
		Sections: sections,
	}
}

func sectionBody(section, paperTitle, by string) string {
	switch section {
	case "Introduction":
		return fmt.Sprintf("This review examines %q by %s and places it in the context of related work.", paperTitle, by)
	case "Methodology":
		return "The paper was processed from its uploaded PDF. Sections were derived from the extracted text."
	case "Results":
		return fmt.Sprintf("Key findings reported in %q are summarized against comparable approaches.", paperTitle)
	case "Discussion":
		return "Limitations and open challenges are noted alongside directions for future research."
	default:
		return "Stub output only. Run against the full backend for generated reviews."
	}
}
