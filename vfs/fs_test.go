package vfs

import (
	"bytes"
	"image/png"
	"io/fs"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/notekit/supernote/internal/notetest"
	"github.com/notekit/supernote/model"
	"github.com/notekit/supernote/pages"
	"github.com/notekit/supernote/palette"
	"github.com/notekit/supernote/reader"
)

func notebookFS(t *testing.T, pageCount int) *FS {
	t.Helper()
	ps := make([]notetest.Page, pageCount)
	for i := range ps {
		ps[i] = notetest.Page{
			Layers: []notetest.Layer{
				{Name: "MAINLAYER", Bitmap: notetest.UniformPlane(model.ClassBlack, pages.DefaultPageWidth, pages.DefaultPageHeight)},
			},
		}
	}
	r, err := reader.NewReader(notetest.Build(notetest.Container{
		Signature: "noteSN_FILE_VER_20230001",
		Pages:     ps,
	}))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	return New(r, palette.Default)
}

func TestFSConformance(t *testing.T) {
	fsys := notebookFS(t, 2)
	if err := fstest.TestFS(fsys, "page-0001.png", "page-0002.png"); err != nil {
		t.Fatalf("TestFS failed: %v", err)
	}
}

func TestFSReadPage(t *testing.T) {
	fsys := notebookFS(t, 1)

	data, err := fs.ReadFile(fsys, "page-0001.png")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("page is not a PNG: %v", err)
	}
	if cfg.Width != pages.DefaultPageWidth || cfg.Height != pages.DefaultPageHeight {
		t.Errorf("size = %dx%d, want %dx%d", cfg.Width, cfg.Height,
			pages.DefaultPageWidth, pages.DefaultPageHeight)
	}
}

func TestFSCachesDecodedPages(t *testing.T) {
	fsys := notebookFS(t, 1)

	first, err := fs.ReadFile(fsys, "page-0001.png")
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	second, err := fs.ReadFile(fsys, "page-0001.png")
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeated reads of the same page differ")
	}

	fsys.mu.Lock()
	cached := len(fsys.cache)
	fsys.mu.Unlock()
	if cached != 1 {
		t.Errorf("cache holds %d pages, want 1", cached)
	}
}

func TestFSConcurrentReads(t *testing.T) {
	fsys := notebookFS(t, 1)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := fs.ReadFile(fsys, "page-0001.png"); err != nil {
				t.Errorf("concurrent read failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestFSMissingNames(t *testing.T) {
	fsys := notebookFS(t, 1)

	for _, name := range []string{
		"page-0002.png", // past the end
		"page-0000.png",
		"page-1.png", // wrong padding
		"notes.txt",
		"sub/page-0001.png",
	} {
		if _, err := fsys.Open(name); err == nil {
			t.Errorf("Open(%q) succeeded, want ErrNotExist", name)
		}
	}
}

func TestFSReadDir(t *testing.T) {
	fsys := notebookFS(t, 3)

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Name() != "page-0001.png" || entries[2].Name() != "page-0003.png" {
		t.Errorf("unexpected entry names: %v", entries)
	}
}
