package object_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/odvcencio/ssphys/pkg/object"
)

func encodeOps(ops ...object.DeltaOp) []byte {
	var out []byte
	for _, op := range ops {
		var hdr [12]byte
		binary.LittleEndian.PutUint16(hdr[0:], uint16(op.Command))
		binary.LittleEndian.PutUint32(hdr[4:], op.Start)
		binary.LittleEndian.PutUint32(hdr[8:], op.Length)
		out = append(out, hdr[:]...)
		out = append(out, op.Data...)
	}
	return out
}

func TestFileDeltaDecodeAndApply(t *testing.T) {
	newer := []byte("hello there world\n")
	payload := encodeOps(
		object.DeltaOp{Command: object.DeltaCopy, Start: 0, Length: 6},
		object.DeltaOp{Command: object.DeltaInsert, Length: 4, Data: []byte("big ")},
		object.DeltaOp{Command: object.DeltaCopy, Start: 12, Length: 6},
		object.DeltaOp{Command: object.DeltaStop},
	)
	fd := build("FD", payload).(*object.FileDelta)
	if !fd.Valid() {
		t.Fatalf("delta invalid: %v", fd.Err())
	}
	if len(fd.Ops) != 4 {
		t.Fatalf("ops = %d, want 4", len(fd.Ops))
	}

	got, err := object.ApplyReverseDelta(newer, fd.Ops)
	if err != nil {
		t.Fatalf("ApplyReverseDelta: %v", err)
	}
	if want := []byte("hello big world\n"); !bytes.Equal(got, want) {
		t.Fatalf("result = %q, want %q", got, want)
	}
}

func TestFileDeltaStopEndsDecoding(t *testing.T) {
	payload := append(encodeOps(object.DeltaOp{Command: object.DeltaStop}), 0xde, 0xad)
	fd := build("FD", payload).(*object.FileDelta)
	if !fd.Valid() || len(fd.Ops) != 1 {
		t.Fatalf("valid=%v ops=%d err=%v", fd.Valid(), len(fd.Ops), fd.Err())
	}
}

func TestFileDeltaMalformed(t *testing.T) {
	cases := map[string][]byte{
		"truncated op":   make([]byte, 7),
		"insert overrun": encodeOps(object.DeltaOp{Command: object.DeltaInsert, Length: 50}),
		"bad command":    encodeOps(object.DeltaOp{Command: 9}),
	}
	for name, payload := range cases {
		fd := build("FD", payload)
		if fd.Valid() {
			t.Fatalf("%s: delta must be invalid", name)
		}
		if !errors.Is(fd.Err(), object.ErrInvalidPayload) {
			t.Fatalf("%s: Err() = %v", name, fd.Err())
		}
	}
}

func TestApplyReverseDeltaCopyOutOfBounds(t *testing.T) {
	_, err := object.ApplyReverseDelta([]byte("abc"), []object.DeltaOp{
		{Command: object.DeltaCopy, Start: 2, Length: 5},
	})
	if !errors.Is(err, object.ErrDeltaOutOfBounds) {
		t.Fatalf("err = %v, want ErrDeltaOutOfBounds", err)
	}
}

func TestApplyReverseDeltaEmpty(t *testing.T) {
	got, err := object.ApplyReverseDelta([]byte("abc"), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty delta = %q, %v", got, err)
	}
}
