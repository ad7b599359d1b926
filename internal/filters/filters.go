package filters

import (
	"fmt"

	"github.com/notekit/supernote/core"
	"github.com/notekit/supernote/model"
)

// Protocol names as they appear in layer metadata.
const (
	ProtocolRLE   = "RATTA_RLE"
	ProtocolFlate = "SN_ASA_COMPRESS"
)

// Decode dispatches a compressed layer stream to the filter named by its
// protocol. RLEOptions only apply to the RLE protocol.
func Decode(protocol string, data []byte, width, height int, opts RLEOptions) (*model.Bitmap, error) {
	switch protocol {
	case ProtocolRLE:
		return DecodeRLE(data, width, height, opts)
	case ProtocolFlate:
		return DecodeFlate(data, width, height)
	}
	return nil, fmt.Errorf("%w: unknown layer protocol %q", core.ErrCorruptBitmapStream, protocol)
}
