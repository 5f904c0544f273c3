package physfile

import (
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Source supplies the raw bytes of one physical file. Reads are keyed by
// absolute offset and never move a shared cursor, so independent readers of
// the same Source do not interfere with each other.
type Source interface {
	io.ReaderAt
	io.Closer
	Size() int64
	Name() string
}

// Slicer is implemented by sources that can hand out read-only views of
// their backing memory without copying. Callers must not modify the result.
type Slicer interface {
	Slice(off, n int64) ([]byte, error)
}

// FromBytes wraps an in-memory image of a physical file.
func FromBytes(name string, data []byte) Source {
	return &memSource{name: name, data: data}
}

type memSource struct {
	name string
	data []byte
}

func (s *memSource) ReadAt(p []byte, off int64) (int, error) {
	return readAtSlice(s.data, p, off)
}

func (s *memSource) Slice(off, n int64) ([]byte, error) {
	return sliceRange(s.data, off, n)
}

func (s *memSource) Size() int64  { return int64(len(s.data)) }
func (s *memSource) Name() string { return s.name }
func (s *memSource) Close() error { return nil }

// Open maps the file at path read-only. Files carrying a zstd frame header
// are decompressed into memory first so archived databases can be inspected
// in place.
func Open(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open physical file: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat physical file: %w", err)
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("open physical file %s: is a directory", path)
	}
	if st.Size() == 0 {
		// mmap rejects zero-length mappings.
		_ = f.Close()
		return FromBytes(path, nil), nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("map physical file: %w", err)
	}

	if isZstdFrame(m) {
		raw, err := decompressZstd(m)
		_ = m.Unmap()
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
		return FromBytes(path, raw), nil
	}

	return &mappedSource{name: path, f: f, m: m}, nil
}

type mappedSource struct {
	name string
	f    *os.File
	m    mmap.MMap
}

func (s *mappedSource) ReadAt(p []byte, off int64) (int, error) {
	return readAtSlice(s.m, p, off)
}

func (s *mappedSource) Slice(off, n int64) ([]byte, error) {
	return sliceRange(s.m, off, n)
}

func (s *mappedSource) Size() int64  { return int64(len(s.m)) }
func (s *mappedSource) Name() string { return s.name }

func (s *mappedSource) Close() error {
	if s.m == nil {
		return nil
	}
	unmapErr := s.m.Unmap()
	s.m = nil
	closeErr := s.f.Close()
	if unmapErr != nil {
		return fmt.Errorf("unmap %s: %w", s.name, unmapErr)
	}
	return closeErr
}

func readAtSlice(data, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("read at negative offset %d", off)
	}
	if off >= int64(len(data)) {
		return 0, io.EOF
	}
	n := copy(p, data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func sliceRange(data []byte, off, n int64) ([]byte, error) {
	if off < 0 || n < 0 || off > int64(len(data)) || n > int64(len(data))-off {
		return nil, fmt.Errorf("slice [%d,+%d) outside file of %d bytes", off, n, len(data))
	}
	end := off + n
	return data[off:end:end], nil
}
