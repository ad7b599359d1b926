package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/notekit/supernote/reader"
)

// RenderText writes the notebook's recognized text. Fragments within a
// page are joined with newlines; pages are joined with sep (a page-break
// marker, a form feed, whatever the caller wants). Notebooks without
// recognized text produce no output, not an error.
func RenderText(w io.Writer, r *reader.Reader, sep string) error {
	var pageTexts []string
	var lines []string
	current := -1

	flush := func() {
		if len(lines) > 0 {
			pageTexts = append(pageTexts, strings.Join(lines, "\n"))
			lines = nil
		}
	}

	for frag := range r.TextFragments() {
		if frag.Page != current {
			flush()
			current = frag.Page
		}
		lines = append(lines, frag.Text)
	}
	flush()

	if len(pageTexts) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, strings.Join(pageTexts, sep)); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}
