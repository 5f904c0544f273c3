// Package vss opens SourceSafe physical files, recognizes which family they
// belong to, and runs the object consumers over them.
package vss

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/odvcencio/ssphys/pkg/physfile"
	"github.com/odvcencio/ssphys/pkg/record"
	"github.com/odvcencio/ssphys/pkg/validate"
)

// Layout is the file family of a physical file. It decides where the first
// record starts and which signature, if any, precedes it.
type Layout int

const (
	Plain Layout = iota
	History
	Users
	NamesCache
	Project
)

var layoutNames = [...]string{
	Plain:      "plain",
	History:    "history",
	Users:      "users",
	NamesCache: "names cache",
	Project:    "project",
}

func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutNames) {
		return fmt.Sprintf("Layout(%d)", int(l))
	}
	return layoutNames[l]
}

// Start is the offset of the first record.
func (l Layout) Start() int64 {
	if l == History || l == Users {
		return record.SignatureSize
	}
	return 0
}

var ErrFileNotRecognized = errors.New("file not recognized")

// FileNotRecognizedError reports a file that cannot be opened, or that holds
// no known record at any of the offsets a physical file can start with. Err
// is set when opening failed.
type FileNotRecognizedError struct {
	Name string
	Size int64
	Err  error
}

func (e *FileNotRecognizedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Name, ErrFileNotRecognized, e.Err)
	}
	return fmt.Sprintf("%s: %s (%d bytes)", e.Name, ErrFileNotRecognized, e.Size)
}

func (e *FileNotRecognizedError) Unwrap() error { return e.Err }

func (e *FileNotRecognizedError) Is(target error) bool {
	return target == ErrFileNotRecognized
}

// Recognize decides the layout of src by peeking at record headers. Only the
// headers are read, so a file whose first record is truncated still gets a
// layout and the truncation surfaces during the scan.
func Recognize(src physfile.Source) (Layout, error) {
	first := kindAt(src, 0)
	switch first {
	case record.NamesCache:
		return NamesCache, nil
	case record.ProjectEntry:
		return Project, nil
	}
	switch kindAt(src, record.SignatureSize) {
	case record.Item:
		return History, nil
	case record.UsersHeader:
		return Users, nil
	}
	if first.Known() {
		return Plain, nil
	}
	return Plain, &FileNotRecognizedError{Name: src.Name(), Size: src.Size()}
}

func kindAt(src physfile.Source, off int64) record.Kind {
	if src.Size()-off < record.HeaderSize {
		return record.None
	}
	var buf [record.HeaderSize]byte
	if _, err := src.ReadAt(buf[:], off); err != nil {
		return record.None
	}
	h, err := record.UnmarshalHeader(buf[:])
	if err != nil {
		return record.None
	}
	return record.KindOf(h.TagString())
}

const (
	historyMagic = "SourceSafe@Microsoft"
	usersMagic   = "UserManagement@Microsoft\x00"
)

// CheckSignature inspects the 52-byte signature of history and user files.
// Anomalies are warnings; other layouts have no signature.
func CheckSignature(src physfile.Source, layout Layout) []validate.Finding {
	var magic string
	var from int
	var expect map[int]func(byte) bool
	switch layout {
	case History:
		magic, from = historyMagic, len(historyMagic)+1
		expect = map[int]func(byte) bool{
			32: func(b byte) bool { return b == 1 || b == 2 },
			34: func(b byte) bool { return b == 6 },
		}
	case Users:
		magic, from = usersMagic, len(usersMagic)+1
		expect = map[int]func(byte) bool{
			32: func(b byte) bool { return b == 8 },
		}
	default:
		return nil
	}

	sig := make([]byte, record.SignatureSize)
	if _, err := src.ReadAt(sig, 0); err != nil {
		return []validate.Finding{signatureFinding("cannot read signature: %v", err)}
	}

	var out []validate.Finding
	if !bytes.Equal(sig[:len(magic)], []byte(magic)) {
		out = append(out, signatureFinding("signature %q, want %q", bytes.TrimRight(sig[:len(magic)], "\x00"), bytes.TrimRight([]byte(magic), "\x00")))
	}
	var odd []int
	for i := from; i < len(sig); i++ {
		ok := sig[i] == 0
		if check, special := expect[i]; special {
			ok = check(sig[i])
		}
		if !ok {
			odd = append(odd, i)
		}
	}
	if len(odd) > 0 {
		out = append(out, signatureFinding("unexpected signature bytes at %v", odd))
	}
	return out
}

func signatureFinding(format string, args ...any) validate.Finding {
	return validate.Finding{
		Severity: validate.Warning,
		Problem:  validate.ProblemSignature,
		Kind:     record.None,
		Message:  fmt.Sprintf(format, args...),
	}
}
