package object

import "strconv"

// Project entry flags.
const (
	EntryDeleted    uint16 = 0x01
	EntryBinary     uint16 = 0x02
	EntryLatestOnly uint16 = 0x04
	EntryShared     uint16 = 0x08
)

const projectEntrySize = 56

// ProjectEntry is one child of a project, as listed in the project file.
type ProjectEntry struct {
	base
	Type            int16
	Flags           uint16
	Name            Name
	PinnedToVersion int16
	Phys            string
}

func (p *ProjectEntry) Deleted() bool    { return p.Flags&EntryDeleted != 0 }
func (p *ProjectEntry) Binary() bool     { return p.Flags&EntryBinary != 0 }
func (p *ProjectEntry) LatestOnly() bool { return p.Flags&EntryLatestOnly != 0 }
func (p *ProjectEntry) Shared() bool     { return p.Flags&EntryShared != 0 }

// DisplayName is the entry name, suffixed with ";<version>" when pinned.
func (p *ProjectEntry) DisplayName() string {
	if p.PinnedToVersion > 0 {
		return p.Name.Short + ";" + strconv.Itoa(int(p.PinnedToVersion))
	}
	return p.Name.Short
}

func newProjectEntry(b base) *ProjectEntry {
	o := &ProjectEntry{base: b}
	f, ok := o.fields(projectEntrySize)
	if !ok {
		return o
	}
	o.Type = f.i16(0)
	o.Flags = f.u16(2)
	o.Name = f.name(4)
	o.PinnedToVersion = f.i16(44)
	o.Phys = f.str(46, 10)
	return o
}
