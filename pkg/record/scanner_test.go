package record_test

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/odvcencio/ssphys/pkg/physfile"
	"github.com/odvcencio/ssphys/pkg/record"
	"github.com/odvcencio/ssphys/pkg/record/recordtest"
)

func TestScannerYieldsEveryRecord(t *testing.T) {
	b := recordtest.NewBuilder(nil)
	payloads := [][]byte{
		bytes.Repeat([]byte{1}, 16),
		nil,
		[]byte("comment text\x00"),
		bytes.Repeat([]byte{7}, 3),
	}
	tags := []string{"BF", "MC", "MC", "ZZ"}
	for i := range payloads {
		b.Add(tags[i], payloads[i])
	}
	want := b.Offsets()

	sc := record.NewScanner(b.Source("mem"), 0)
	var got []*record.Record
	for sc.Next() {
		got = append(got, sc.Record())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	if len(got) != len(payloads) {
		t.Fatalf("records = %d, want %d", len(got), len(payloads))
	}
	for i, rec := range got {
		if rec.Offset != want[i] {
			t.Fatalf("record %d offset = %d, want %d", i, rec.Offset, want[i])
		}
		wantNext := want[i] + record.HeaderSize + int64(len(payloads[i]))
		if rec.NextOffset() != wantNext {
			t.Fatalf("record %d NextOffset = %d, want %d", i, rec.NextOffset(), wantNext)
		}
		if rec.Tag() != tags[i] {
			t.Fatalf("record %d tag = %q, want %q", i, rec.Tag(), tags[i])
		}
		if !bytes.Equal(rec.Payload(), payloads[i]) {
			t.Fatalf("record %d payload = %x, want %x", i, rec.Payload(), payloads[i])
		}
	}
	if sc.Next() {
		t.Fatal("Next after end returned true")
	}
}

func TestScannerRandomLayouts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 50; iter++ {
		b := recordtest.NewBuilder(nil)
		n := rng.Intn(20)
		for i := 0; i < n; i++ {
			p := make([]byte, rng.Intn(64))
			rng.Read(p)
			b.Add("EL", p)
		}

		sc := record.NewScanner(b.Source("mem"), 0)
		count := 0
		for sc.Next() {
			if sc.Record().Offset != b.Offsets()[count] {
				t.Fatalf("iter %d record %d offset = %d, want %d", iter, count, sc.Record().Offset, b.Offsets()[count])
			}
			count++
		}
		if sc.Err() != nil {
			t.Fatalf("iter %d: Err: %v", iter, sc.Err())
		}
		if count != n {
			t.Fatalf("iter %d: records = %d, want %d", iter, count, n)
		}
	}
}

func TestScannerStopsCleanlyOnShortTail(t *testing.T) {
	b := recordtest.NewBuilder(nil)
	b.Add("MC", []byte("x"))
	data := append(b.Bytes(), 0x01, 0x02, 0x03)

	sc := record.NewScanner(physfile.FromBytes("mem", data), 0)
	count := 0
	for sc.Next() {
		count++
	}
	if count != 1 {
		t.Fatalf("records = %d, want 1", count)
	}
	if sc.Err() != nil {
		t.Fatalf("short tail should end cleanly, got %v", sc.Err())
	}
}

func TestScannerTruncatedRecord(t *testing.T) {
	b := recordtest.NewBuilder(nil)
	b.Add("MC", []byte("first"))
	h := record.Header{Length: 100}
	copy(h.Tag[:], "EL")
	badOffset := b.AddRaw(h, bytes.Repeat([]byte{0xaa}, 40))

	sc := record.NewScanner(b.Source("mem"), 0)
	count := 0
	for sc.Next() {
		count++
	}
	if count != 1 {
		t.Fatalf("records = %d, want 1", count)
	}

	err := sc.Err()
	if !errors.Is(err, record.ErrTruncatedRecord) {
		t.Fatalf("Err = %v, want ErrTruncatedRecord", err)
	}
	var trunc *record.TruncatedRecordError
	if !errors.As(err, &trunc) {
		t.Fatalf("Err = %T, want *TruncatedRecordError", err)
	}
	if trunc.Offset != badOffset {
		t.Fatalf("truncated offset = %d, want %d", trunc.Offset, badOffset)
	}
	if trunc.Declared != 100 || trunc.Remaining != 40 {
		t.Fatalf("truncated = %+v, want declared 100 remaining 40", trunc)
	}
	if sc.Next() {
		t.Fatal("Next after truncation returned true")
	}
}

func TestScannerStartOffset(t *testing.T) {
	b := recordtest.NewBuilder(make([]byte, 52))
	b.Add("DH", make([]byte, 60))

	sc := record.NewScanner(b.Source("mem"), 52)
	if !sc.Next() {
		t.Fatalf("Next = false, err %v", sc.Err())
	}
	if sc.Record().Offset != 52 {
		t.Fatalf("offset = %d, want 52", sc.Record().Offset)
	}
}

func TestReadAtOutOfBounds(t *testing.T) {
	b := recordtest.NewBuilder(nil)
	b.Add("BF", make([]byte, 16))
	src := b.Source("mem")

	for _, off := range []int64{-1, 20, 24, 1000} {
		if _, err := record.ReadAt(src, off); !errors.Is(err, record.ErrNoHeader) {
			t.Fatalf("ReadAt(%d) = %v, want ErrNoHeader", off, err)
		}
	}

	rec, err := record.ReadAt(src, 0)
	if err != nil {
		t.Fatalf("ReadAt(0): %v", err)
	}
	if rec.Source() != src {
		t.Fatal("record does not reference its source")
	}
}

func TestChecksum(t *testing.T) {
	b := recordtest.NewBuilder(nil)
	b.Checksums = true
	b.Add("MC", []byte("checked comment"))
	h := record.Header{Length: 3, Checksum: 0x1234}
	copy(h.Tag[:], "MC")
	b.AddRaw(h, []byte("bad"))

	sc := record.NewScanner(b.Source("mem"), 0)
	var recs []*record.Record
	for sc.Next() {
		recs = append(recs, sc.Record())
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[0].Header.Checksum == 0 || !recs[0].ChecksumOK() {
		t.Fatalf("record 0 checksum %#x should verify", recs[0].Header.Checksum)
	}
	if recs[1].ChecksumOK() && record.Checksum16([]byte("bad")) != 0x1234 {
		t.Fatal("record 1 checksum should not verify")
	}
}

func TestChecksumKnownValues(t *testing.T) {
	if got := record.Checksum16(nil); got != 0 {
		t.Fatalf("Checksum16(nil) = %#x, want 0", got)
	}
	a := record.Checksum16([]byte("abc"))
	if a == record.Checksum16([]byte("abd")) {
		t.Fatal("checksum does not depend on content")
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	h := record.Header{Length: 0x01020304, Checksum: 0xbeef}
	copy(h.Tag[:], "JP")
	raw := h.Marshal()
	if !bytes.Equal(raw, []byte{0x04, 0x03, 0x02, 0x01, 'J', 'P', 0xef, 0xbe}) {
		t.Fatalf("Marshal = %x", raw)
	}
	got, err := record.UnmarshalHeader(raw)
	if err != nil {
		t.Fatalf("UnmarshalHeader: %v", err)
	}
	if got != h {
		t.Fatalf("UnmarshalHeader = %+v, want %+v", got, h)
	}
	if _, err := record.UnmarshalHeader(raw[:7]); err == nil {
		t.Fatal("expected short header error")
	}
}
