package object

import (
	"bytes"
	"encoding/binary"
)

// fields reads little-endian values at fixed payload offsets. Reads that
// would run past the payload return zero values, so a decoder can never see
// bytes outside its record.
type fields []byte

func (f fields) u16(off int) uint16 {
	if off < 0 || off+2 > len(f) {
		return 0
	}
	return binary.LittleEndian.Uint16(f[off:])
}

func (f fields) i16(off int) int16 { return int16(f.u16(off)) }

func (f fields) u32(off int) uint32 {
	if off < 0 || off+4 > len(f) {
		return 0
	}
	return binary.LittleEndian.Uint32(f[off:])
}

func (f fields) u8(off int) byte {
	if off < 0 || off >= len(f) {
		return 0
	}
	return f[off]
}

// str returns the NUL-terminated string stored in the n-byte field at off,
// clipped to the payload.
func (f fields) str(off, n int) string {
	if off < 0 || off >= len(f) || n <= 0 {
		return ""
	}
	end := off + n
	if end > len(f) {
		end = len(f)
	}
	b := f[off:end]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// name decodes the 40-byte name block at off.
func (f fields) name(off int) Name {
	return Name{
		Flags:       f.i16(off),
		Short:       f.str(off+2, 34),
		NamesOffset: f.u32(off + 36),
	}
}
