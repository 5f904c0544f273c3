package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a link has no predecessor.
	ErrNotFound     = errors.New("end of chain")
	ErrBrokenChain  = errors.New("broken chain")
	ErrChainTooLong = errors.New("chain too long")
)

// BrokenChainError reports a link whose target cannot be followed.
type BrokenChainError struct {
	From   int64 // offset of the link record
	Offset int64 // offset it points at
	Reason string
	Err    error
}

func (e *BrokenChainError) Error() string {
	msg := fmt.Sprintf("%s: link at %d points to %d: %s", ErrBrokenChain, e.From, e.Offset, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BrokenChainError) Unwrap() error { return e.Err }

func (e *BrokenChainError) Is(target error) bool {
	return target == ErrBrokenChain
}

// ChainTooLongError reports a walk that exceeded its hop bound, which in a
// well-formed file means the links form a cycle.
type ChainTooLongError struct {
	Offset int64 // where the walk started
	Hops   int
}

func (e *ChainTooLongError) Error() string {
	return fmt.Sprintf("%s: walk from offset %d exceeded %d hops", ErrChainTooLong, e.Offset, e.Hops)
}

func (e *ChainTooLongError) Is(target error) bool {
	return target == ErrChainTooLong
}
