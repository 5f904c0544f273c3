// Package recordtest builds synthetic physical-file images for tests.
package recordtest

import (
	"encoding/binary"

	"github.com/odvcencio/ssphys/pkg/physfile"
	"github.com/odvcencio/ssphys/pkg/record"
)

// Builder appends records to an in-memory file image.
type Builder struct {
	buf     []byte
	offsets []int64
	// Checksums makes Add store the real payload checksum instead of 0.
	Checksums bool
}

// NewBuilder starts an image with prefix (for example a file signature
// header) in front of the first record.
func NewBuilder(prefix []byte) *Builder {
	return &Builder{buf: append([]byte(nil), prefix...)}
}

// Add appends a record and returns its offset.
func (b *Builder) Add(tag string, payload []byte) int64 {
	h := record.Header{Length: uint32(len(payload))}
	copy(h.Tag[:], tag)
	if b.Checksums {
		h.Checksum = record.Checksum16(payload)
	}
	return b.AddRaw(h, payload)
}

// AddRaw appends a header and payload exactly as given, so tests can build
// records whose declared length disagrees with the bytes that follow.
func (b *Builder) AddRaw(h record.Header, payload []byte) int64 {
	off := int64(len(b.buf))
	b.buf = append(b.buf, h.Marshal()...)
	b.buf = append(b.buf, payload...)
	b.offsets = append(b.offsets, off)
	return off
}

// Offset returns the offset the next record will be written at.
func (b *Builder) Offset() int64 { return int64(len(b.buf)) }

// Offsets returns the offsets of all records added so far.
func (b *Builder) Offsets() []int64 { return append([]int64(nil), b.offsets...) }

// Bytes returns the image.
func (b *Builder) Bytes() []byte { return b.buf }

// Source wraps the image as a physfile.Source.
func (b *Builder) Source(name string) physfile.Source {
	return physfile.FromBytes(name, append([]byte(nil), b.buf...))
}

// Payload is a little-endian fixed-layout payload writer.
type Payload []byte

// NewPayload returns a zeroed payload of n bytes.
func NewPayload(n int) Payload { return make(Payload, n) }

func (p Payload) U16(off int, v uint16) Payload {
	binary.LittleEndian.PutUint16(p[off:], v)
	return p
}

func (p Payload) U32(off int, v uint32) Payload {
	binary.LittleEndian.PutUint32(p[off:], v)
	return p
}

// Str copies s into the field at off. The caller sizes fields so a NUL
// terminator remains.
func (p Payload) Str(off int, s string) Payload {
	copy(p[off:], s)
	return p
}

// Name writes a 40-byte name block: flags, 34-byte short name, names.dat offset.
func (p Payload) Name(off int, flags uint16, name string, namesOffset uint32) Payload {
	p.U16(off, flags)
	copy(p[off+2:off+36], name)
	p.U32(off+36, namesOffset)
	return p
}
