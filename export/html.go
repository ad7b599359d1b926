package export

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/notekit/supernote/reader"
)

// RenderHTML writes the notebook's recognized text as a minimal HTML
// document: one section per page, one paragraph per fragment. Pages
// without recognized text are omitted.
func RenderHTML(w io.Writer, r *reader.Reader, title string) error {
	doc := buildDocument(r, title)
	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}

func buildDocument(r *reader.Reader, title string) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "html")
	doc.AppendChild(root)

	head := element(atom.Head, "head")
	titleNode := element(atom.Title, "title")
	titleNode.AppendChild(textNode(title))
	head.AppendChild(titleNode)
	root.AppendChild(head)

	body := element(atom.Body, "body")
	root.AppendChild(body)

	var section *html.Node
	current := -1
	for frag := range r.TextFragments() {
		if frag.Page != current {
			current = frag.Page
			section = element(atom.Section, "section")
			heading := element(atom.H2, "h2")
			heading.AppendChild(textNode(fmt.Sprintf("Page %d", frag.Page+1)))
			section.AppendChild(heading)
			body.AppendChild(section)
		}
		p := element(atom.P, "p")
		p.AppendChild(textNode(frag.Text))
		section.AppendChild(p)
	}
	return doc
}

func element(a atom.Atom, name string) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: name}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
