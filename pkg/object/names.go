package object

import "fmt"

const (
	namesCacheMinSize = 80
	nameEntryMinSize  = 4
	nameSlotSize      = 4
)

// NamesCache is the header record of names.dat.
type NamesCache struct {
	base
	NamesFileLength uint32
}

func newNamesCache(b base) *NamesCache {
	o := &NamesCache{base: b}
	f, ok := o.fields(namesCacheMinSize)
	if !ok {
		return o
	}
	o.NamesFileLength = f.u32(16)
	return o
}

// NameSlot is one alternative name of an entry.
type NameSlot struct {
	Kind int16
	Name string
}

// NameCacheEntry holds every stored variant of one long name.
type NameCacheEntry struct {
	base
	Slots []NameSlot
}

// Name returns the variant of the given kind.
func (e *NameCacheEntry) Name(kind int16) (string, bool) {
	for _, s := range e.Slots {
		if s.Kind == kind {
			return s.Name, true
		}
	}
	return "", false
}

func newNameCacheEntry(b base) *NameCacheEntry {
	o := &NameCacheEntry{base: b}
	f, ok := o.fields(nameEntryMinSize)
	if !ok {
		return o
	}
	count := int(f.i16(0))
	if count < 0 {
		o.invalidate(fmt.Sprintf("negative name count %d", count))
		return o
	}
	table := nameEntryMinSize + count*nameSlotSize
	if table > len(f) {
		o.invalidate(fmt.Sprintf("%d name slots need %d bytes, have %d", count, table, len(f)))
		return o
	}
	o.Slots = make([]NameSlot, 0, count)
	for i := 0; i < count; i++ {
		slot := nameEntryMinSize + i*nameSlotSize
		off := table + int(f.i16(slot+2))
		if off < table || off >= len(f) {
			o.invalidate(fmt.Sprintf("name slot %d points outside the string table", i))
			o.Slots = nil
			return o
		}
		o.Slots = append(o.Slots, NameSlot{Kind: f.i16(slot), Name: f.str(off, len(f)-off)})
	}
	return o
}
