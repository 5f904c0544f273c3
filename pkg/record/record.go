package record

import (
	"errors"
	"fmt"

	"github.com/odvcencio/ssphys/pkg/physfile"
)

var (
	ErrTruncatedRecord = errors.New("truncated record")
	ErrNoHeader        = errors.New("no record header")
)

// TruncatedRecordError reports a record whose declared payload runs past the
// end of the file.
type TruncatedRecordError struct {
	Offset    int64
	Declared  uint32
	Remaining int64
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf(
		"%s at offset %d: declared %d payload bytes, %d remain",
		ErrTruncatedRecord,
		e.Offset,
		e.Declared,
		e.Remaining,
	)
}

func (e *TruncatedRecordError) Is(target error) bool {
	return target == ErrTruncatedRecord
}

// Record is one header-prefixed chunk of a physical file. Records are
// immutable; the source reference is non-owning and only valid while the
// session that opened the source keeps it open.
type Record struct {
	Header Header
	Offset int64

	payload []byte
	src     physfile.Source
}

// New builds a detached record around payload, as if it had been read at
// offset. Used for records embedded in other structures and by tests.
func New(h Header, offset int64, payload []byte) *Record {
	return &Record{Header: h, Offset: offset, payload: payload}
}

// Payload returns the record body. Callers must not modify it.
func (r *Record) Payload() []byte { return r.payload }

// Len returns the declared payload length.
func (r *Record) Len() int64 { return int64(r.Header.Length) }

// NextOffset is where the record that follows this one starts.
func (r *Record) NextOffset() int64 { return r.Offset + HeaderSize + r.Len() }

// Tag returns the two-character type tag.
func (r *Record) Tag() string { return r.Header.TagString() }

// Kind classifies the record by its tag.
func (r *Record) Kind() Kind { return KindOf(r.Tag()) }

// Source returns the file the record was read from, or nil for detached
// records.
func (r *Record) Source() physfile.Source { return r.src }

// ChecksumOK reports whether the stored checksum matches the payload. A zero
// checksum means none was stored and always matches.
func (r *Record) ChecksumOK() bool {
	return r.Header.Checksum == 0 || r.Header.Checksum == Checksum16(r.payload)
}

func (r *Record) String() string {
	validity := "valid"
	if !r.ChecksumOK() {
		validity = "invalid"
	}
	return fmt.Sprintf("Offset: %d Type: %s Len: %d crc: %d -> %s", r.Offset, r.Tag(), r.Len(), r.Header.Checksum, validity)
}

// ReadAt reads the record whose header starts at offset.
func ReadAt(src physfile.Source, offset int64) (*Record, error) {
	size := src.Size()
	if offset < 0 || offset > size-HeaderSize {
		return nil, fmt.Errorf("read record at offset %d of %d: %w", offset, size, ErrNoHeader)
	}

	var hdr [HeaderSize]byte
	if _, err := src.ReadAt(hdr[:], offset); err != nil {
		return nil, fmt.Errorf("read record header at offset %d: %w", offset, err)
	}
	h, err := UnmarshalHeader(hdr[:])
	if err != nil {
		return nil, err
	}

	remaining := size - offset - HeaderSize
	if int64(h.Length) > remaining {
		return nil, &TruncatedRecordError{Offset: offset, Declared: h.Length, Remaining: remaining}
	}

	payload, err := readPayload(src, offset+HeaderSize, int64(h.Length))
	if err != nil {
		return nil, fmt.Errorf("read record payload at offset %d: %w", offset, err)
	}

	return &Record{Header: h, Offset: offset, payload: payload, src: src}, nil
}

func readPayload(src physfile.Source, off, n int64) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if sl, ok := src.(physfile.Slicer); ok {
		return sl.Slice(off, n)
	}
	buf := make([]byte, n)
	if _, err := src.ReadAt(buf, off); err != nil {
		return nil, err
	}
	return buf, nil
}
