// Package vfs exposes a notebook as a read-only virtual filesystem: one
// PNG file per page, named page-0001.png onward. Pages are decoded on
// first read and the encoded result is cached per page, so repeated reads
// of the same page do not re-decode. The filesystem implements [fs.FS],
// [fs.ReadDirFS] and [fs.StatFS] and works with fs.WalkDir, http.FS and
// friends.
package vfs

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"io/fs"
	"sync"
	"time"

	"github.com/notekit/supernote/palette"
	"github.com/notekit/supernote/reader"
)

// FS is a read-only filesystem view over one opened notebook.
type FS struct {
	r   *reader.Reader
	pal palette.Palette

	mu    sync.Mutex
	cache map[int][]byte // encoded PNG, keyed by page index
	stamp time.Time
}

// New builds a filesystem over an opened reader. The palette fixes the
// colorization for every page; build a second FS for a second palette.
func New(r *reader.Reader, pal palette.Palette) *FS {
	return &FS{
		r:     r,
		pal:   pal,
		cache: make(map[int][]byte),
		stamp: time.Now(),
	}
}

func pageName(index int) string {
	return fmt.Sprintf("page-%04d.png", index+1)
}

// parsePageName maps a file name back to a page index, or -1.
func (f *FS) parsePageName(name string) int {
	var n int
	if _, err := fmt.Sscanf(name, "page-%04d.png", &n); err != nil {
		return -1
	}
	if name != pageName(n-1) || n < 1 || n > f.r.PageCount() {
		return -1
	}
	return n - 1
}

// Open implements fs.FS.
func (f *FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		return &dirHandle{fsys: f}, nil
	}
	index := f.parsePageName(name)
	if index < 0 {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	data, err := f.page(index)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return &pageHandle{
		Reader: *bytes.NewReader(data),
		info:   f.pageInfo(index, int64(len(data))),
	}, nil
}

// ReadDir implements fs.ReadDirFS for the root directory. Listing is
// cheap: entries only decode their page when Info is called.
func (f *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	if name != "." {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	entries := make([]fs.DirEntry, f.r.PageCount())
	for i := range entries {
		entries[i] = dirEntry{fsys: f, index: i}
	}
	return entries, nil
}

// Stat implements fs.StatFS. Sizing a page requires decoding it, so Stat
// of a not-yet-read page pays the first decode; the result is cached.
func (f *FS) Stat(name string) (fs.FileInfo, error) {
	if name == "." {
		return dirInfo{stamp: f.stamp}, nil
	}
	index := f.parsePageName(name)
	if index < 0 {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	data, err := f.page(index)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	return f.pageInfo(index, int64(len(data))), nil
}

// page returns the encoded PNG for a page, decoding it on first access.
// The lock also serializes two concurrent first reads of the same page so
// the page decodes once.
func (f *FS) page(index int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if data, ok := f.cache[index]; ok {
		return data, nil
	}

	img, err := f.r.DecodePage(index, f.pal)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	f.cache[index] = buf.Bytes()
	return buf.Bytes(), nil
}

func (f *FS) pageInfo(index int, size int64) fileInfo {
	return fileInfo{name: pageName(index), size: size, stamp: f.stamp}
}

type fileInfo struct {
	name  string
	size  int64
	stamp time.Time
}

func (i fileInfo) Name() string       { return i.name }
func (i fileInfo) Size() int64        { return i.size }
func (i fileInfo) Mode() fs.FileMode  { return 0o444 }
func (i fileInfo) ModTime() time.Time { return i.stamp }
func (i fileInfo) IsDir() bool        { return false }
func (i fileInfo) Sys() any           { return nil }

type dirInfo struct {
	stamp time.Time
}

func (i dirInfo) Name() string       { return "." }
func (i dirInfo) Size() int64        { return 0 }
func (i dirInfo) Mode() fs.FileMode  { return fs.ModeDir | 0o555 }
func (i dirInfo) ModTime() time.Time { return i.stamp }
func (i dirInfo) IsDir() bool        { return true }
func (i dirInfo) Sys() any           { return nil }

type dirEntry struct {
	fsys  *FS
	index int
}

func (e dirEntry) Name() string      { return pageName(e.index) }
func (e dirEntry) IsDir() bool       { return false }
func (e dirEntry) Type() fs.FileMode { return 0 }

func (e dirEntry) Info() (fs.FileInfo, error) {
	data, err := e.fsys.page(e.index)
	if err != nil {
		return nil, err
	}
	return e.fsys.pageInfo(e.index, int64(len(data))), nil
}

type pageHandle struct {
	bytes.Reader
	info fileInfo
}

func (h *pageHandle) Stat() (fs.FileInfo, error) { return h.info, nil }
func (h *pageHandle) Close() error               { return nil }

type dirHandle struct {
	fsys *FS
	pos  int
}

func (h *dirHandle) Stat() (fs.FileInfo, error) { return dirInfo{stamp: h.fsys.stamp}, nil }
func (h *dirHandle) Close() error               { return nil }

func (h *dirHandle) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: ".", Err: fs.ErrInvalid}
}

// ReadDir implements fs.ReadDirFile with the usual paging contract.
func (h *dirHandle) ReadDir(n int) ([]fs.DirEntry, error) {
	all, err := h.fsys.ReadDir(".")
	if err != nil {
		return nil, err
	}
	rest := all[h.pos:]
	if n <= 0 {
		h.pos = len(all)
		return rest, nil
	}
	if len(rest) == 0 {
		return nil, io.EOF
	}
	if n > len(rest) {
		n = len(rest)
	}
	h.pos += n
	return rest[:n], nil
}
