package object

const linkMinSize = 4

// ParentFolder links a file to one of the projects that contain it. Links
// form a backward chain through PreviousOffset; zero ends it.
type ParentFolder struct {
	base
	PreviousOffset uint32
	ParentPhys     string
}

// BranchFile links a file to one of its branches. Links form a backward
// chain through PreviousOffset; zero ends it.
type BranchFile struct {
	base
	PreviousOffset uint32
	BranchToPhys   string
}

func newParentFolder(b base) *ParentFolder {
	o := &ParentFolder{base: b}
	f, ok := o.fields(linkMinSize)
	if !ok {
		return o
	}
	o.PreviousOffset = f.u32(0)
	o.ParentPhys = f.str(4, 10)
	return o
}

func newBranchFile(b base) *BranchFile {
	o := &BranchFile{base: b}
	f, ok := o.fields(linkMinSize)
	if !ok {
		return o
	}
	o.PreviousOffset = f.u32(0)
	o.BranchToPhys = f.str(4, 10)
	return o
}

// CheckOut describes who has the file checked out and where.
type CheckOut struct {
	base
	User             string
	Folder           string
	Computer         string
	ParentSpec       string
	Comment          string
	Flag1            byte
	Flag2            byte
	Flag3            byte
	NumberOfVersions int32
}

const checkOutSize = 668

// Active reports whether the record describes a current checkout.
func (c *CheckOut) Active() bool { return c.Flag1 == 0x01 }

func newCheckOut(b base) *CheckOut {
	o := &CheckOut{base: b}
	f, ok := o.fields(checkOutSize)
	if !ok {
		return o
	}
	o.User = f.str(0, 32)
	o.Folder = f.str(36, 256)
	o.Computer = f.str(296, 32)
	o.ParentSpec = f.str(328, 260)
	o.Comment = f.str(588, 13)
	o.Flag1 = f.u8(652)
	o.Flag2 = f.u8(654)
	o.Flag3 = f.u8(663)
	o.NumberOfVersions = int32(f.u32(664))
	return o
}
