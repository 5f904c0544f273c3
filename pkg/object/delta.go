package object

import (
	"errors"
	"fmt"
)

// Delta commands.
const (
	DeltaInsert int16 = 0
	DeltaCopy   int16 = 1
	DeltaStop   int16 = 2
)

const deltaOpSize = 12

var ErrDeltaOutOfBounds = errors.New("delta copy out of bounds")

// DeltaOp is one instruction of a reverse delta. Insert ops carry their
// literal bytes in Data; copy ops take Length bytes at Start of the newer
// revision.
type DeltaOp struct {
	Command int16
	Start   uint32
	Length  uint32
	Data    []byte
}

// FileDelta turns a revision back into its predecessor.
type FileDelta struct {
	base
	Ops []DeltaOp
}

func newFileDelta(b base) *FileDelta {
	o := &FileDelta{base: b}
	f, _ := o.fields(0)
	ops, err := decodeDeltaOps(f)
	if err != nil {
		o.invalidate(err.Error())
		return o
	}
	o.Ops = ops
	return o
}

func decodeDeltaOps(f fields) ([]DeltaOp, error) {
	var ops []DeltaOp
	for off := 0; off < len(f); {
		if len(f)-off < deltaOpSize {
			return nil, fmt.Errorf("truncated delta op at %d", off)
		}
		op := DeltaOp{Command: f.i16(off), Start: f.u32(off + 4), Length: f.u32(off + 8)}
		off += deltaOpSize

		switch op.Command {
		case DeltaInsert:
			if uint64(op.Length) > uint64(len(f)-off) {
				return nil, fmt.Errorf("delta insert of %d bytes at %d runs past the record", op.Length, off)
			}
			op.Data = f[off : off+int(op.Length)]
			off += int(op.Length)
		case DeltaCopy:
		case DeltaStop:
			return append(ops, op), nil
		default:
			return nil, fmt.Errorf("invalid delta command %d at %d", op.Command, off-deltaOpSize)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// ApplyReverseDelta rebuilds the previous revision from newer.
func ApplyReverseDelta(newer []byte, ops []DeltaOp) ([]byte, error) {
	out := make([]byte, 0, len(newer))
	for i, op := range ops {
		switch op.Command {
		case DeltaInsert:
			if uint64(len(op.Data)) != uint64(op.Length) {
				return nil, fmt.Errorf("delta op %d: insert carries %d bytes, declares %d", i, len(op.Data), op.Length)
			}
			out = append(out, op.Data...)
		case DeltaCopy:
			start, end := uint64(op.Start), uint64(op.Start)+uint64(op.Length)
			if end > uint64(len(newer)) {
				return nil, fmt.Errorf("delta op %d: copy [%d,%d) of %d bytes: %w", i, start, end, len(newer), ErrDeltaOutOfBounds)
			}
			out = append(out, newer[start:end]...)
		case DeltaStop:
			return out, nil
		default:
			return nil, fmt.Errorf("delta op %d: invalid command %d", i, op.Command)
		}
	}
	return out, nil
}
