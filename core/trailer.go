package core

import (
	"encoding/binary"
	"fmt"
)

// AddressSize is the width of an address field in the container.
const AddressSize = 4

// LengthFieldSize is the width of the length prefix of every block.
const LengthFieldSize = 4

// TrailerAddress returns the footer block address stored in the last
// AddressSize bytes of the container.
func TrailerAddress(data []byte) (int64, error) {
	if len(data) < AddressSize {
		return 0, fmt.Errorf("%w: %d bytes is too short for a trailer", ErrMalformedContainer, len(data))
	}
	addr := int64(binary.LittleEndian.Uint32(data[len(data)-AddressSize:]))
	if addr <= 0 || addr >= int64(len(data)) {
		return 0, fmt.Errorf("%w: trailer address %d out of range", ErrMalformedContainer, addr)
	}
	return addr, nil
}

// ReadBlock returns the payload of the length-prefixed block at addr.
// Address 0 is the container's "absent" sentinel and yields a nil payload.
func ReadBlock(data []byte, addr int64) ([]byte, error) {
	if addr == 0 {
		return nil, nil
	}
	if addr < 0 || addr+LengthFieldSize > int64(len(data)) {
		return nil, fmt.Errorf("%w: block address %d out of range", ErrMalformedContainer, addr)
	}
	length := int64(binary.LittleEndian.Uint32(data[addr : addr+LengthFieldSize]))
	start := addr + LengthFieldSize
	if start+length > int64(len(data)) {
		return nil, fmt.Errorf("%w: block at %d runs past end of file (length %d)", ErrMalformedContainer, addr, length)
	}
	return data[start : start+length], nil
}

// ParseBlock reads the metadata block at addr and extracts its records.
// Address 0 yields empty Params, mirroring ReadBlock.
func ParseBlock(data []byte, addr int64) (Params, error) {
	block, err := ReadBlock(data, addr)
	if err != nil {
		return nil, err
	}
	return ExtractParams(block), nil
}
