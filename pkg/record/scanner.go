package record

import "github.com/odvcencio/ssphys/pkg/physfile"

// Scanner walks the records of a source front to back, in the manner of
// bufio.Scanner. It stops cleanly when fewer than HeaderSize bytes remain and
// stops with an error on the first record that cannot be read; no partial
// record is ever returned.
type Scanner struct {
	src  physfile.Source
	next int64
	rec  *Record
	err  error
	done bool
}

// NewScanner returns a scanner that starts at offset start. Scanning again
// means constructing a new scanner.
func NewScanner(src physfile.Source, start int64) *Scanner {
	return &Scanner{src: src, next: start}
}

// Next advances to the next record.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}
	if s.next > s.src.Size()-HeaderSize {
		s.finish(nil)
		return false
	}
	rec, err := ReadAt(s.src, s.next)
	if err != nil {
		s.finish(err)
		return false
	}
	s.rec = rec
	s.next = rec.NextOffset()
	return true
}

// Record returns the record produced by the last successful Next.
func (s *Scanner) Record() *Record { return s.rec }

// Offset is where the next record is expected.
func (s *Scanner) Offset() int64 { return s.next }

// Err returns the error that stopped the scan, or nil at a clean end.
func (s *Scanner) Err() error { return s.err }

func (s *Scanner) finish(err error) {
	s.done = true
	s.rec = nil
	s.err = err
}
