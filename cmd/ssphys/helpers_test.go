package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/odvcencio/ssphys/pkg/object"
	"github.com/odvcencio/ssphys/pkg/record"
	"github.com/odvcencio/ssphys/pkg/record/recordtest"
)

const (
	latestText = "hello brave new world\n"
	firstText  = "hello old world\n"
)

// reverseDelta turns latestText back into firstText.
func reverseDelta() []byte {
	var out []byte
	op := func(cmd int16, start, length uint32, data string) {
		var hdr [12]byte
		binary.LittleEndian.PutUint16(hdr[0:], uint16(cmd))
		binary.LittleEndian.PutUint32(hdr[4:], start)
		binary.LittleEndian.PutUint32(hdr[8:], length)
		out = append(out, hdr[:]...)
		out = append(out, data...)
	}
	op(object.DeltaCopy, 0, 6, "")
	op(object.DeltaInsert, 0, 4, "old ")
	op(object.DeltaCopy, 16, 6, "")
	op(object.DeltaStop, 0, 0, "")
	return out
}

// historyFile builds a file item with two versions. When branchTo is set
// the item also links to a branch-file record naming that physical file.
func historyFile(t *testing.T, name, branchTo string) []byte {
	t.Helper()
	delta := reverseDelta()
	itemOff := int64(record.SignatureSize)
	createdOff := itemOff + record.HeaderSize + 356
	deltaOff := createdOff + record.HeaderSize + 88 + 50
	checkinOff := deltaOff + record.HeaderSize + int64(len(delta))
	end := checkinOff + record.HeaderSize + 88 + 268

	sig := make([]byte, record.SignatureSize)
	copy(sig, "SourceSafe@Microsoft")
	sig[32], sig[34] = 1, 6

	item := recordtest.NewPayload(356).
		U16(0, uint16(object.ItemFile)).
		U16(2, 2).
		Name(4, 0, name, 0).
		Str(46, ".A").
		U32(48, uint32(createdOff)).
		U32(52, uint32(checkinOff)).
		U32(56, uint32(end))
	if branchTo != "" {
		item.U32(92, uint32(end))
	}

	b := recordtest.NewBuilder(sig)
	b.Checksums = true
	b.Add("DH", item)
	b.Add("EL", recordtest.NewPayload(88+50).
		U16(4, uint16(object.ActionCreatedFile)).
		U16(6, 1).
		Str(12, "admin").
		Name(88, 0, name, 0))
	b.Add("FD", delta)
	b.Add("EL", recordtest.NewPayload(88+268).
		U32(0, uint32(createdOff)).
		U16(4, uint16(object.ActionCheckedIn)).
		U16(6, 2).
		Str(12, "admin").
		U32(88, uint32(deltaOff)).
		Str(88+8, "$/docs/"+name))
	if branchTo != "" {
		b.Add("BF", recordtest.NewPayload(16).Str(4, branchTo))
	}
	return b.Bytes()
}

// writePhysical stores image as data/<bucket>/<phys> under root, with its
// latest data file next to it.
func writePhysical(t *testing.T, root, phys string, image []byte) string {
	t.Helper()
	dir := filepath.Join(root, "data", phys[:1])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	path := filepath.Join(dir, phys)
	if err := os.WriteFile(path, image, 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	if err := os.WriteFile(path+".a", []byte(latestText), 0o644); err != nil {
		t.Fatalf("WriteFile(%s.a): %v", path, err)
	}
	return path
}

// plainFile is a branch-file record followed by an unregistered tag.
func plainFile(t *testing.T) string {
	t.Helper()
	b := recordtest.NewBuilder(nil)
	b.Add("BF", recordtest.NewPayload(10).Str(4, "BAAAAA"))
	b.Add("ZZ", []byte{1, 2, 3, 4})
	path := filepath.Join(t.TempDir(), "mixed")
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}
