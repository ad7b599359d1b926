package pages

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/notekit/supernote/core"
)

// Default page geometry shared by every known device panel.
const (
	DefaultPageWidth  = 1404
	DefaultPageHeight = 1872
)

// LayerRole names one of the five fixed bitmap planes of a page.
// Compositing order is the role order: background first, overlays last.
type LayerRole int

const (
	RoleBackground LayerRole = iota
	RoleMain
	RoleOverlay1
	RoleOverlay2
	RoleOverlay3
)

// ZOrder lists the roles bottom-to-top. The order is fixed and independent
// of firmware version; later layers draw over earlier ones.
var ZOrder = [5]LayerRole{RoleBackground, RoleMain, RoleOverlay1, RoleOverlay2, RoleOverlay3}

// Key returns the metadata key holding this role's layer block address.
func (r LayerRole) Key() string {
	switch r {
	case RoleBackground:
		return "BGLAYER"
	case RoleMain:
		return "MAINLAYER"
	case RoleOverlay1:
		return "LAYER1"
	case RoleOverlay2:
		return "LAYER2"
	case RoleOverlay3:
		return "LAYER3"
	}
	return fmt.Sprintf("LAYER(%d)", int(r))
}

// String returns the role name in lower case.
func (r LayerRole) String() string {
	return strings.ToLower(r.Key())
}

// Layer describes one bitmap plane of a page. BitmapAddress 0 means the
// layer is absent or blank; that is a normal state, not an error.
type Layer struct {
	Role          LayerRole
	Name          string
	Protocol      string
	BitmapAddress int64
	Visible       bool
	Meta          core.Params
}

// Present reports whether the layer has bitmap content to decode.
func (l *Layer) Present() bool {
	return l.BitmapAddress != 0
}

// Page describes one page: its raw metadata block and the five layer
// descriptors in role order.
type Page struct {
	Index  int
	Meta   core.Params
	Layers [5]Layer

	// RecognText holds the raw base64 recognized-text payload, or "" when
	// the page (or firmware) has none.
	RecognText string
}

// Layer returns the descriptor for a role.
func (p *Page) Layer(role LayerRole) *Layer {
	return &p.Layers[role]
}

// Style returns the page's background style name.
func (p *Page) Style() string {
	return p.Meta.Get("PAGESTYLE")
}

// Notebook is the resolved metadata model of one container.
type Notebook struct {
	Variant   core.Variant
	Signature string
	Header    core.Params
	Footer    core.Params
	Pages     []*Page

	PageWidth  int
	PageHeight int
}

// PageCount returns the number of pages.
func (n *Notebook) PageCount() int {
	return len(n.Pages)
}

// Page returns the page at index, or ErrIndexOutOfRange.
func (n *Notebook) Page(index int) (*Page, error) {
	if index < 0 || index >= len(n.Pages) {
		return nil, fmt.Errorf("%w: %d of %d", core.ErrIndexOutOfRange, index, len(n.Pages))
	}
	return n.Pages[index], nil
}

// Parse builds the full metadata model from raw container bytes in one
// pass: signature, trailer, footer, header, then every page and layer
// block. Any unreadable block or missing required key fails the whole open
// with ErrMalformedContainer.
func Parse(data []byte) (*Notebook, error) {
	variant, signature, err := core.DetectVariant(data)
	if err != nil {
		return nil, err
	}

	footerAddr, err := core.TrailerAddress(data)
	if err != nil {
		return nil, err
	}
	footer, err := core.ParseBlock(data, footerAddr)
	if err != nil {
		return nil, fmt.Errorf("footer: %w", err)
	}

	headerAddr, err := footer.Int64("FILE_FEATURE")
	if err != nil {
		return nil, err
	}
	header, err := core.ParseBlock(data, headerAddr)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	nb := &Notebook{
		Variant:    variant,
		Signature:  signature,
		Header:     header,
		Footer:     footer,
		PageWidth:  DefaultPageWidth,
		PageHeight: DefaultPageHeight,
	}
	nb.applyGeometry()

	addrs, err := pageAddresses(variant, footer)
	if err != nil {
		return nil, err
	}
	for i, addr := range addrs {
		page, err := parsePage(data, variant, i, addr)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		nb.Pages = append(nb.Pages, page)
	}
	return nb, nil
}

// applyGeometry overrides the default panel geometry from header keys when
// a newer panel declares its own.
func (n *Notebook) applyGeometry() {
	if w, err := strconv.Atoi(n.Header.Get("PAGE_WIDTH")); err == nil && w > 0 {
		n.PageWidth = w
	}
	if h, err := strconv.Atoi(n.Header.Get("PAGE_HEIGHT")); err == nil && h > 0 {
		n.PageHeight = h
	}
}

// pageAddresses resolves the footer's page block addresses in page order.
// Layered firmware numbers its keys (PAGE1, PAGE2, ...); the original
// series repeats a bare PAGE key per page.
func pageAddresses(variant core.Variant, footer core.Params) ([]int64, error) {
	var raw []string
	if variant.HasLayers() {
		for _, key := range footer.PrefixKeys("PAGE") {
			raw = append(raw, footer.Get(key))
		}
	} else {
		raw = footer.All("PAGE")
	}

	addrs := make([]int64, 0, len(raw))
	for _, s := range raw {
		addr, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: page address %q", core.ErrMalformedContainer, s)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

func parsePage(data []byte, variant core.Variant, index int, addr int64) (*Page, error) {
	meta, err := core.ParseBlock(data, addr)
	if err != nil {
		return nil, err
	}
	if len(meta) == 0 {
		return nil, fmt.Errorf("%w: empty page block at %d", core.ErrMalformedContainer, addr)
	}

	page := &Page{Index: index, Meta: meta}
	for _, role := range ZOrder {
		page.Layers[role] = Layer{Role: role, Name: role.Key(), Visible: true}
	}

	if variant.HasLayers() {
		if err := parseLayers(data, page); err != nil {
			return nil, err
		}
		applyVisibility(page)
	} else {
		if err := parseSinglePlane(data, page); err != nil {
			return nil, err
		}
	}

	if variant.HasRecognition() {
		page.RecognText = meta.Get("RECOGNTEXT")
	}
	return page, nil
}

// parseLayers resolves the five named layer blocks of a layered page.
// A missing key or address 0 leaves that role absent.
func parseLayers(data []byte, page *Page) error {
	for _, role := range ZOrder {
		addrStr := page.Meta.Get(role.Key())
		if addrStr == "" || addrStr == "0" {
			continue
		}
		addr, err := strconv.ParseInt(addrStr, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: layer address %q for %s", core.ErrMalformedContainer, addrStr, role.Key())
		}
		meta, err := core.ParseBlock(data, addr)
		if err != nil {
			return fmt.Errorf("layer %s: %w", role.Key(), err)
		}
		layer := page.Layer(role)
		layer.Meta = meta
		if name := meta.Get("LAYERNAME"); name != "" {
			layer.Name = name
		}
		layer.Protocol = meta.Get("LAYERPROTOCOL")
		if layer.Protocol == "" {
			layer.Protocol = "RATTA_RLE"
		}
		if bitmapStr := meta.Get("LAYERBITMAP"); bitmapStr != "" && bitmapStr != "0" {
			bitmap, err := strconv.ParseInt(bitmapStr, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: bitmap address %q for %s", core.ErrMalformedContainer, bitmapStr, role.Key())
			}
			// The bitmap block must land inside the file; a dangling
			// pointer fails the open, not the later decode.
			if _, err := core.ReadBlock(data, bitmap); err != nil {
				return fmt.Errorf("layer %s bitmap: %w", role.Key(), err)
			}
			layer.BitmapAddress = bitmap
		}
	}
	return nil
}

// parseSinglePlane maps an original-series page's DATA plane onto the main
// layer role so the rest of the pipeline sees one shape of page.
func parseSinglePlane(data []byte, page *Page) error {
	addr, err := page.Meta.Int64("DATA")
	if err != nil {
		return err
	}
	if _, err := core.ReadBlock(data, addr); err != nil {
		return fmt.Errorf("page data: %w", err)
	}
	layer := page.Layer(RoleMain)
	layer.BitmapAddress = addr
	layer.Protocol = page.Meta.Get("PROTOCOL")
	if layer.Protocol == "" {
		layer.Protocol = "SN_ASA_COMPRESS"
	}
	return nil
}

// layerInfoEntry is one element of the LAYERINFO visibility list. The
// device stores the JSON with '#' in place of ':' so it survives the
// <KEY:VALUE> record syntax.
type layerInfoEntry struct {
	LayerID           int  `json:"layerId"`
	IsBackgroundLayer bool `json:"isBackgroundLayer"`
	IsVisible         bool `json:"isVisible"`
}

// applyVisibility folds LAYERINFO into the layer descriptors. Layers are
// visible unless an entry says otherwise; an absent or unreadable
// LAYERINFO therefore changes nothing.
func applyVisibility(page *Page) {
	info := page.Meta.Get("LAYERINFO")
	if info == "" || info == "none" {
		return
	}
	var entries []layerInfoEntry
	if err := json.Unmarshal([]byte(strings.ReplaceAll(info, "#", ":")), &entries); err != nil {
		return
	}
	for _, e := range entries {
		switch {
		case e.IsBackgroundLayer:
			page.Layer(RoleBackground).Visible = e.IsVisible
		case e.LayerID == 0:
			page.Layer(RoleMain).Visible = e.IsVisible
		case e.LayerID >= 1 && e.LayerID <= 3:
			page.Layer(RoleOverlay1 + LayerRole(e.LayerID-1)).Visible = e.IsVisible
		}
	}
}
