package object

import (
	"errors"
	"fmt"

	"github.com/odvcencio/ssphys/pkg/record"
)

var (
	ErrInvalidPayload = errors.New("invalid payload")
	ErrUnknownKind    = errors.New("unknown record kind")
)

// InvalidPayloadError marks a record of a known kind whose payload does not
// fit the kind's layout.
type InvalidPayloadError struct {
	Kind   record.Kind
	Offset int64
	Need   int
	Have   int
	Reason string
}

func (e *InvalidPayloadError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s record at offset %d: %s", ErrInvalidPayload, e.Kind, e.Offset, e.Reason)
	}
	return fmt.Sprintf("%s: %s record at offset %d needs %d bytes, has %d", ErrInvalidPayload, e.Kind, e.Offset, e.Need, e.Have)
}

func (e *InvalidPayloadError) Is(target error) bool {
	return target == ErrInvalidPayload
}

// UnknownKindError names a record tag missing from the catalog. It is never
// fatal.
type UnknownKindError struct {
	Tag    string
	Offset int64
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("%s %q at offset %d", ErrUnknownKind, e.Tag, e.Offset)
}

func (e *UnknownKindError) Is(target error) bool {
	return target == ErrUnknownKind
}
