package object

import "fmt"

// Item type codes stored in the first field of an item header.
const (
	ItemProject int16 = 1
	ItemFile    int16 = 2
)

// File item flags.
const (
	FileLocked     uint16 = 0x01
	FileBinary     uint16 = 0x02
	FileLatestOnly uint16 = 0x04
	FileShared     uint16 = 0x20
	FileCheckedOut uint16 = 0x40
)

const (
	itemHeaderSize = 60
	itemFullSize   = 356
)

// Item is the header record at the start of every history file.
type Item struct {
	base
	Type               int16
	NumberOfActions    int16
	Name               Name
	LatestExt          string
	HistoryOffsetBegin uint32
	HistoryOffsetLast  uint32
	HistoryOffsetEnd   uint32

	// Exactly one of Project and File is set on a valid item.
	Project *ProjectInfo
	File    *FileInfo
}

// ProjectInfo holds the project-specific part of an item header.
type ProjectInfo struct {
	ParentSpec       string
	ParentPhys       string
	NumberOfItems    int16
	NumberOfProjects int16
}

// FileInfo holds the file-specific part of an item header.
type FileInfo struct {
	Flags              uint16
	ShareSrcPhys       string
	OffsetBranchFile   uint32
	OffsetParentFolder uint32
	NumberOfBranches   int16
	NumberOfReferences int16
	OffsetCheckOut1    uint32
	OffsetCheckOut2    uint32
	NumberOfItems      int16
	NumberOfProjects   int16
}

func (f *FileInfo) Locked() bool     { return f.Flags&FileLocked != 0 }
func (f *FileInfo) Binary() bool     { return f.Flags&FileBinary != 0 }
func (f *FileInfo) LatestOnly() bool { return f.Flags&FileLatestOnly != 0 }
func (f *FileInfo) Shared() bool     { return f.Flags&FileShared != 0 }
func (f *FileInfo) CheckedOut() bool { return f.Flags&FileCheckedOut != 0 }

// IsProject reports whether the item describes a project.
func (i *Item) IsProject() bool { return i.Type == ItemProject }

// TypeName returns "project", "file" or "unknown".
func (i *Item) TypeName() string {
	switch i.Type {
	case ItemProject:
		return "project"
	case ItemFile:
		return "file"
	}
	return "unknown"
}

func newItem(b base) *Item {
	o := &Item{base: b}
	f, ok := o.fields(itemHeaderSize)
	if !ok {
		return o
	}
	o.Type = f.i16(0)
	o.NumberOfActions = f.i16(2)
	o.Name = f.name(4)
	o.LatestExt = f.str(46, 2)
	o.HistoryOffsetBegin = f.u32(48)
	o.HistoryOffsetLast = f.u32(52)
	o.HistoryOffsetEnd = f.u32(56)

	switch o.Type {
	case ItemProject:
		if _, ok := o.fields(itemFullSize); !ok {
			return o
		}
		o.Project = &ProjectInfo{
			ParentSpec:       f.str(80, 258),
			ParentPhys:       f.str(340, 10),
			NumberOfItems:    f.i16(352),
			NumberOfProjects: f.i16(354),
		}
	case ItemFile:
		if _, ok := o.fields(itemFullSize); !ok {
			return o
		}
		o.File = &FileInfo{
			Flags:              f.u16(80),
			ShareSrcPhys:       f.str(82, 10),
			OffsetBranchFile:   f.u32(92),
			OffsetParentFolder: f.u32(96),
			NumberOfBranches:   f.i16(100),
			NumberOfReferences: f.i16(102),
			OffsetCheckOut1:    f.u32(104),
			OffsetCheckOut2:    f.u32(108),
			NumberOfItems:      f.i16(352),
			NumberOfProjects:   f.i16(354),
		}
	default:
		o.invalidate(fmt.Sprintf("unsupported item type %d", o.Type))
	}
	return o
}
