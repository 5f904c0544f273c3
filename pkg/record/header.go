package record

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the size of the prefix in front of every record payload.
const HeaderSize = 8

// SignatureSize is the length of the file signature that precedes the first
// record of history and user management files.
const SignatureSize = 52

// Header is the fixed-size record prefix.
//
// Bytes (little-endian):
//   - 0..3: payload length
//   - 4..5: two-character type tag
//   - 6..7: CRC-16 of the payload, or 0 when the writer stored none
type Header struct {
	Length   uint32
	Tag      [2]byte
	Checksum uint16
}

// TagString returns the type tag as text.
func (h Header) TagString() string {
	return string(h.Tag[:])
}

// Marshal serializes the header to its 8-byte on-disk form.
func (h Header) Marshal() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Length)
	copy(buf[4:6], h.Tag[:])
	binary.LittleEndian.PutUint16(buf[6:8], h.Checksum)
	return buf
}

// UnmarshalHeader parses a record header.
func UnmarshalHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("record header too short: got %d bytes", len(data))
	}
	var h Header
	h.Length = binary.LittleEndian.Uint32(data[0:4])
	copy(h.Tag[:], data[4:6])
	h.Checksum = binary.LittleEndian.Uint16(data[6:8])
	return h, nil
}
