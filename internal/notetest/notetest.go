// Package notetest assembles valid Supernote containers for tests: it
// run-length-encodes pixel planes, lays out bitmap and metadata blocks,
// and writes the footer and trailing address the way the device does.
package notetest

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/notekit/supernote/model"
)

// Colorcodes used by the encoder. Tests that need the current (X2) gray
// codes build those streams by hand.
var legacyCodes = map[model.PixelClass]byte{
	model.ClassBlack:       0x61,
	model.ClassTransparent: 0x62,
	model.ClassDarkGray:    0x63,
	model.ClassGray:        0x64,
	model.ClassWhite:       0x65,
}

// Run is one run of identical pixels.
type Run struct {
	Class  model.PixelClass
	Length int
}

// maxChainedRun is the longest run one held pair encodes:
// 1 + 0x7f + ((0x7f + 1) << 7).
const maxChainedRun = 16512

// EncodeRLE encodes runs as RATTA_RLE records with the legacy code table.
// Runs up to 128 pixels become plain records; longer runs become held
// pairs, the same chaining the device writes. The 0xFF long-run escape is
// never emitted (its length depends on the all-blank flag), so output
// decodes under either code table and either blank mode.
func EncodeRLE(runs ...Run) []byte {
	var out []byte
	for _, r := range runs {
		code, ok := legacyCodes[r.Class]
		if !ok {
			panic(fmt.Sprintf("notetest: no colorcode for class %v", r.Class))
		}
		for n := r.Length; n > 0; {
			if n <= 128 {
				out = append(out, code, byte(n-1))
				break
			}
			chunk := n
			if chunk > maxChainedRun {
				chunk = maxChainedRun
			}
			// chunk = 1 + low + ((hold + 1) << 7)
			hold := byte((chunk-1)>>7 - 1)
			low := byte(chunk - 1 - ((chunk - 1) >> 7 << 7))
			out = append(out, code, 0x80|hold, code, low)
			n -= chunk
		}
	}
	return out
}

// UniformPlane encodes a full width x height plane of one class.
func UniformPlane(class model.PixelClass, width, height int) []byte {
	return EncodeRLE(Run{Class: class, Length: width * height})
}

// Layer describes one layer of a fixture page. A nil Bitmap means the layer
// is absent (its key is written with address 0).
type Layer struct {
	Name     string // MAINLAYER, BGLAYER, LAYER1..LAYER3
	Protocol string // defaults to RATTA_RLE
	Bitmap   []byte

	// BitmapAddress, when nonzero, is written as the LAYERBITMAP value
	// verbatim and Bitmap is not laid out. For dangling-pointer fixtures.
	BitmapAddress int64
}

// Page describes one fixture page.
type Page struct {
	Style      string
	Layers     []Layer
	LayerInfo  string // raw LAYERINFO value; see LayerInfoJSON
	RecognText string // raw JSON; stored base64-encoded under RECOGNTEXT
	Data       []byte // original-series single plane (used instead of Layers)
	Protocol   string // original-series page protocol

	// DataAddress, when nonzero, is written as the DATA value verbatim
	// and Data is not laid out.
	DataAddress int64
}

// Container describes a whole fixture file.
type Container struct {
	Signature string
	Header    map[string]string
	Pages     []Page
}

// layerKeys is the full key set written into every layered page block.
var layerKeys = []string{"MAINLAYER", "LAYER1", "LAYER2", "LAYER3", "BGLAYER"}

// Build assembles the container bytes: blocks first, footer next, trailing
// footer address last.
func Build(c Container) []byte {
	data := []byte(c.Signature)

	appendBlock := func(payload []byte) int64 {
		addr := int64(len(data))
		var length [4]byte
		binary.LittleEndian.PutUint32(length[:], uint32(len(payload)))
		data = append(data, length[:]...)
		data = append(data, payload...)
		return addr
	}

	var header strings.Builder
	header.WriteString("<MODULE_LABEL:none><FILE_TYPE:NOTE>")
	for k, v := range c.Header {
		fmt.Fprintf(&header, "<%s:%s>", k, v)
	}
	headerAddr := appendBlock([]byte(header.String()))

	var pageAddrs []int64
	layered := false
	for _, p := range c.Pages {
		var page strings.Builder
		if p.Style != "" {
			fmt.Fprintf(&page, "<PAGESTYLE:%s>", p.Style)
		}

		if p.Data != nil || p.DataAddress != 0 { // original-series page
			dataAddr := p.DataAddress
			if dataAddr == 0 {
				dataAddr = appendBlock(p.Data)
			}
			protocol := p.Protocol
			if protocol == "" {
				protocol = "SN_ASA_COMPRESS"
			}
			fmt.Fprintf(&page, "<PROTOCOL:%s><DATA:%d>", protocol, dataAddr)
		} else {
			layered = true
			byName := make(map[string]Layer, len(p.Layers))
			for _, l := range p.Layers {
				byName[l.Name] = l
			}
			for _, key := range layerKeys {
				l, ok := byName[key]
				if !ok || (l.Bitmap == nil && l.BitmapAddress == 0) {
					fmt.Fprintf(&page, "<%s:0>", key)
					continue
				}
				bitmapAddr := l.BitmapAddress
				if bitmapAddr == 0 {
					bitmapAddr = appendBlock(l.Bitmap)
				}
				protocol := l.Protocol
				if protocol == "" {
					protocol = "RATTA_RLE"
				}
				meta := fmt.Sprintf("<LAYERTYPE:NOTE><LAYERNAME:%s><LAYERPROTOCOL:%s><LAYERBITMAP:%d>",
					key, protocol, bitmapAddr)
				layerAddr := appendBlock([]byte(meta))
				fmt.Fprintf(&page, "<%s:%d>", key, layerAddr)
			}
			if p.LayerInfo != "" {
				fmt.Fprintf(&page, "<LAYERINFO:%s>", p.LayerInfo)
			}
		}

		if p.RecognText != "" {
			encoded := base64.StdEncoding.EncodeToString([]byte(p.RecognText))
			fmt.Fprintf(&page, "<RECOGNSTATUS:1><RECOGNTEXT:%s>", encoded)
		}

		pageAddrs = append(pageAddrs, appendBlock([]byte(page.String())))
	}

	var footer strings.Builder
	fmt.Fprintf(&footer, "<FILE_FEATURE:%d>", headerAddr)
	for i, addr := range pageAddrs {
		if layered {
			fmt.Fprintf(&footer, "<PAGE%d:%d>", i+1, addr)
		} else {
			fmt.Fprintf(&footer, "<PAGE:%d>", addr)
		}
	}
	footerAddr := appendBlock([]byte(footer.String()))

	var tail [4]byte
	binary.LittleEndian.PutUint32(tail[:], uint32(footerAddr))
	return append(data, tail[:]...)
}

// LayerInfoJSON renders a LAYERINFO value declaring visibility for the
// given layer ids (0 = main, 1..3 = overlays, background flagged
// separately). The device stores the JSON with '#' in place of ':' so the
// value survives the <KEY:VALUE> record syntax.
func LayerInfoJSON(visible map[int]bool, backgroundVisible bool) string {
	var entries []string
	entries = append(entries, fmt.Sprintf(
		`{"layerId":4,"isBackgroundLayer":true,"isVisible":%v}`, backgroundVisible))
	for id := 0; id <= 3; id++ {
		v, ok := visible[id]
		if !ok {
			continue
		}
		entries = append(entries, fmt.Sprintf(
			`{"layerId":%d,"isBackgroundLayer":false,"isVisible":%v}`, id, v))
	}
	return strings.ReplaceAll("["+strings.Join(entries, ",")+"]", ":", "#")
}
