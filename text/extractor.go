package text

import (
	"encoding/base64"
	"encoding/json"
	"iter"

	"golang.org/x/text/unicode/norm"

	"github.com/notekit/supernote/pages"
)

// Fragment is one piece of recognized text with its page association.
type Fragment struct {
	Page int    // page index within the notebook
	Seq  int    // capture order within the page
	Text string // recognized text, NFC-normalized
	Y    int    // vertical position of the first recognized word, 0 if unknown
}

// recognition mirrors the on-device JSON layout. Only the fields we
// consume are declared; firmware adds others freely.
type recognition struct {
	Elements []recognElement `json:"elements"`
}

type recognElement struct {
	Type  string       `json:"type"`
	Label string       `json:"label"`
	Words []recognWord `json:"words"`
}

type recognWord struct {
	BoundingBox *recognBox `json:"bounding-box"`
}

type recognBox struct {
	Y int `json:"y"`
}

// Fragments returns a lazy sequence of all recognized text fragments in
// the notebook, in page order and capture order within each page. Pages
// without recognition data contribute nothing. The sequence is
// restartable: ranging over it twice yields the same fragments.
func Fragments(nb *pages.Notebook) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		for i := 0; i < nb.PageCount(); i++ {
			page, err := nb.Page(i)
			if err != nil {
				return
			}
			for _, frag := range decodePage(i, page.RecognText) {
				if !yield(frag) {
					return
				}
			}
		}
	}
}

// PageFragments returns the recognized text fragments of a single page.
// A page without recognition data, or with recognition data we cannot
// parse, yields nil. Recognition blocks are best-effort firmware output
// and a broken one never fails the page.
func PageFragments(nb *pages.Notebook, index int) ([]Fragment, error) {
	page, err := nb.Page(index)
	if err != nil {
		return nil, err
	}
	return decodePage(index, page.RecognText), nil
}

func decodePage(index int, encoded string) []Fragment {
	if encoded == "" {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	var recogn recognition
	if err := json.Unmarshal(raw, &recogn); err != nil {
		return nil
	}

	var frags []Fragment
	for _, elem := range recogn.Elements {
		if elem.Type != "Text" || elem.Label == "" {
			continue
		}
		y := 0
		for _, word := range elem.Words {
			if word.BoundingBox != nil {
				y = word.BoundingBox.Y
				break
			}
		}
		frags = append(frags, Fragment{
			Page: index,
			Seq:  len(frags),
			Text: norm.NFC.String(elem.Label),
			Y:    y,
		})
	}
	return frags
}
