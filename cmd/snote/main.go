// Command snote converts Supernote .note files to common formats and
// inspects their metadata.
//
// Usage:
//
//	snote convert [flags] <input.note> <output>
//	snote analyze <input.note>
//
// The convert output format is chosen with -format (png, svg, pdf, txt,
// html); png and svg write one file per selected page, deriving per-page
// names from the output path. Exit status: 0 on success, 1 on a
// conversion error, 2 on a usage error.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/notekit/supernote"
	"github.com/notekit/supernote/reader"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		err = runConvert(os.Args[2:])
	case "analyze":
		err = runAnalyze(os.Args[2:])
	case "-h", "-help", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "snote: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "snote: %v\n", err)
		var usageErr usageError
		if errors.As(err, &usageErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  snote convert [flags] <input.note> <output>
  snote analyze <input.note>

Convert flags:
  -format string    output format: png, svg, pdf, txt, html (default png)
  -pages string     comma-separated 1-indexed pages or ranges, e.g. 1,3-5 (default all)
  -palette string   four comma-separated hex colors in black,darkgray,gray,white order
  -scale float      raster scale factor for png output (default 1)
  -ocr string       OCR language fallback for txt output, e.g. eng (needs the ocr build tag)
`)
}

// usageError marks bad invocations so main can exit 2 instead of 1.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.Usage = usage
	format := fs.String("format", "png", "output format: png, svg, pdf, txt, html")
	pageSpec := fs.String("pages", "", "comma-separated 1-indexed pages or ranges")
	paletteSpec := fs.String("palette", "", "four comma-separated hex colors")
	scale := fs.Float64("scale", 1, "raster scale factor")
	ocrLang := fs.String("ocr", "", "OCR language fallback for txt output, e.g. eng")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if fs.NArg() != 2 {
		return usageError{"convert needs an input and an output path"}
	}
	input, output := fs.Arg(0), fs.Arg(1)

	conv := supernote.Open(input).Scale(*scale)
	if *paletteSpec != "" {
		conv = conv.PaletteString(*paletteSpec)
	}
	if *ocrLang != "" {
		conv = conv.OCR(*ocrLang)
	}
	defer func() { conv.Close() }()

	count, err := conv.PageCount()
	if err != nil {
		return err
	}
	selected, err := parsePages(*pageSpec, count)
	if err != nil {
		return err
	}

	switch *format {
	case "png":
		return writePerPage(conv.PNG, selected, output, ".png")
	case "svg":
		return writePerPage(conv.SVG, selected, output, ".svg")
	case "pdf":
		if *pageSpec != "" {
			conv = conv.Pages(selected...)
		}
		return writeWhole(conv.PDF, output)
	case "txt":
		text, err := conv.Text()
		if err != nil {
			return err
		}
		return os.WriteFile(output, []byte(text), 0o644)
	case "html":
		title := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		return writeWhole(func(w io.Writer) error { return conv.HTML(w, title) }, output)
	}
	return usageError{fmt.Sprintf("unknown format %q", *format)}
}

// writePerPage renders each selected page into its own file. With one
// page the output path is used as-is; with several, a _NNNN page suffix
// is inserted before the extension.
func writePerPage(render func(w io.Writer, page int) error, pages []int, output, ext string) error {
	for _, page := range pages {
		path := output
		if len(pages) > 1 {
			base := strings.TrimSuffix(output, filepath.Ext(output))
			path = fmt.Sprintf("%s_%04d%s", base, page, ext)
		}
		if err := writeWhole(func(w io.Writer) error { return render(w, page) }, path); err != nil {
			return err
		}
	}
	return nil
}

func writeWhole(render func(w io.Writer) error, output string) error {
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(output)
		return err
	}
	return f.Close()
}

// parsePages expands a 1-indexed page spec like "1,3-5". An empty spec
// selects every page.
func parsePages(spec string, count int) ([]int, error) {
	if spec == "" {
		all := make([]int, count)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	seen := make(map[int]bool)
	var pages []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		lo, hi := part, part
		if s, e, ok := strings.Cut(part, "-"); ok {
			lo, hi = s, e
		}
		start, err := strconv.Atoi(lo)
		if err != nil {
			return nil, usageError{fmt.Sprintf("bad page spec %q", part)}
		}
		end, err := strconv.Atoi(hi)
		if err != nil {
			return nil, usageError{fmt.Sprintf("bad page spec %q", part)}
		}
		for p := start; p <= end; p++ {
			if p < 1 || p > count {
				return nil, fmt.Errorf("page %d out of range 1..%d", p, count)
			}
			if !seen[p] {
				seen[p] = true
				pages = append(pages, p)
			}
		}
	}
	sort.Ints(pages)
	return pages, nil
}

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.Usage = usage
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if fs.NArg() != 1 {
		return usageError{"analyze needs an input path"}
	}

	r, err := reader.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer r.Close()

	nb := r.Notebook()
	fmt.Printf("signature: %s\n", nb.Signature)
	fmt.Printf("variant:   %s\n", nb.Variant)
	fmt.Printf("geometry:  %dx%d\n", nb.PageWidth, nb.PageHeight)
	fmt.Printf("pages:     %d\n", nb.PageCount())

	printParams("header", nb.Header)
	printParams("footer", nb.Footer)
	for i := 0; i < nb.PageCount(); i++ {
		meta, err := r.PageMetadata(i)
		if err != nil {
			return err
		}
		printParams(fmt.Sprintf("page %d", i+1), meta)
	}
	return nil
}

func printParams(label string, params map[string][]string) {
	fmt.Printf("\n[%s]\n", label)
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range params[k] {
			fmt.Printf("  %s = %s\n", k, v)
		}
	}
}
