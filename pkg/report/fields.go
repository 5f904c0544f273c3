// Package report renders logical objects as a text dump or an XML tree.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/odvcencio/ssphys/pkg/object"
)

// Field is one decoded value in display order.
type Field struct {
	Name  string
	Value string
}

type fieldList []Field

func (l *fieldList) add(name, value string)         { *l = append(*l, Field{Name: name, Value: value}) }
func (l *fieldList) signed(name string, v int64)    { l.add(name, strconv.FormatInt(v, 10)) }
func (l *fieldList) unsigned(name string, v uint64) { l.add(name, strconv.FormatUint(v, 10)) }
func (l *fieldList) flags(name string, v uint64)    { l.add(name, fmt.Sprintf("0x%02x", v)) }
func (l *fieldList) flag(name string, v bool)       { l.add(name, strconv.FormatBool(v)) }

func (l *fieldList) name(prefix string, n object.Name, names object.NameResolver) {
	l.add(prefix, n.FullName(names))
	l.add(prefix+"Type", n.Type())
	if n.NamesOffset != 0 {
		l.unsigned(prefix+"NamesOffset", uint64(n.NamesOffset))
	}
}

// emitter receives the decoded fields of valid objects and the raw bytes of
// invalid ones.
type emitter interface {
	emit(o object.Object, fields []Field) error
	raw(o object.Object) error
}

// fieldVisitor turns every kind into a field list for an emitter.
type fieldVisitor struct {
	names object.NameResolver
	out   emitter
}

func (v fieldVisitor) VisitItem(i *object.Item) error {
	var l fieldList
	l.add("Type", i.TypeName())
	l.name("Name", i.Name, v.names)
	l.signed("NumberOfActions", int64(i.NumberOfActions))
	l.add("LatestExt", i.LatestExt)
	l.unsigned("HistoryOffsetBegin", uint64(i.HistoryOffsetBegin))
	l.unsigned("HistoryOffsetLast", uint64(i.HistoryOffsetLast))
	l.unsigned("HistoryOffsetEnd", uint64(i.HistoryOffsetEnd))
	if p := i.Project; p != nil {
		l.add("ParentSpec", p.ParentSpec)
		l.add("ParentPhys", p.ParentPhys)
		l.signed("NumberOfItems", int64(p.NumberOfItems))
		l.signed("NumberOfProjects", int64(p.NumberOfProjects))
	}
	if f := i.File; f != nil {
		l.flags("Flags", uint64(f.Flags))
		l.flag("Locked", f.Locked())
		l.flag("Binary", f.Binary())
		l.flag("LatestOnly", f.LatestOnly())
		l.flag("Shared", f.Shared())
		l.flag("CheckedOut", f.CheckedOut())
		l.add("ShareSrcPhys", f.ShareSrcPhys)
		l.unsigned("OffsetBranchFile", uint64(f.OffsetBranchFile))
		l.unsigned("OffsetParentFolder", uint64(f.OffsetParentFolder))
		l.signed("NumberOfBranches", int64(f.NumberOfBranches))
		l.signed("NumberOfReferences", int64(f.NumberOfReferences))
		l.unsigned("OffsetCheckOut1", uint64(f.OffsetCheckOut1))
		l.unsigned("OffsetCheckOut2", uint64(f.OffsetCheckOut2))
		l.signed("NumberOfItems", int64(f.NumberOfItems))
		l.signed("NumberOfProjects", int64(f.NumberOfProjects))
	}
	return v.out.emit(i, l)
}

func (v fieldVisitor) VisitHistory(h *object.History) error {
	var l fieldList
	l.unsigned("Previous", uint64(h.Previous))
	l.add("Action", h.ActionLabel())
	l.unsigned("ActionCode", uint64(h.ActionCode))
	l.signed("Version", int64(h.Version))
	l.add("Date", h.Date().Format(time.RFC3339))
	l.add("User", h.User)
	if h.Label != "" {
		l.add("Label", h.Label)
	}
	l.unsigned("OffsetToNextRecordOrComment", uint64(h.OffsetToNextRecordOrComment))
	l.unsigned("OffsetToLabelComment", uint64(h.OffsetToLabelComment))
	l.signed("LengthComment", int64(h.LengthComment))
	l.signed("LengthLabelComment", int64(h.LengthLabelComment))
	l.add("Description", h.Describe())
	v.actionFields(&l, h.Detail)
	if h.ActionErr != nil {
		l.add("ActionError", h.ActionErr.Error())
	}
	return v.out.emit(h, l)
}

func (v fieldVisitor) actionFields(l *fieldList, d object.ActionDetail) {
	switch d := d.(type) {
	case *object.ItemAction:
		l.name("ItemName", d.Name, v.names)
		l.add("Physical", d.Phys)
	case *object.DestroyedAction:
		l.name("ItemName", d.Name, v.names)
		l.add("Physical", d.Phys)
	case *object.RenamedAction:
		l.name("NewName", d.NewName, v.names)
		l.name("OldName", d.OldName, v.names)
		l.add("Physical", d.Phys)
	case *object.SharedAction:
		l.add("SrcPath", d.SrcPath)
		l.name("ItemName", d.Name, v.names)
		l.signed("SubAction", int64(d.SubAction))
		l.signed("PinnedToVersion", int64(d.PinnedToVersion))
		l.signed("UnpinnedVersion", int64(d.UnpinnedVersion()))
		l.add("Physical", d.Phys)
	case *object.MovedAction:
		l.add("Path", d.Path)
		l.name("ItemName", d.Name, v.names)
		l.add("Physical", d.Phys)
	case *object.CheckedInAction:
		l.unsigned("DeltaOffset", uint64(d.DeltaOffset))
		l.add("Spec", d.Spec)
	case *object.BranchAction:
		l.name("ItemName", d.Name, v.names)
		l.add("Physical", d.Phys)
		l.add("Parent", d.Parent)
	case *object.ArchiveVersionsAction:
		l.name("ItemName", d.Name, v.names)
		l.add("Physical", d.Phys)
		l.signed("ArchiveVersion", int64(d.ArchiveVersion))
		l.add("Target", d.Target)
	case *object.ArchiveAction:
		l.name("ItemName", d.Name, v.names)
		l.add("Physical", d.Phys)
		l.add("Filename", d.Filename)
	}
}

func (v fieldVisitor) VisitComment(c *object.Comment) error {
	return v.out.emit(c, []Field{{Name: "Text", Value: c.Text}})
}

func (v fieldVisitor) VisitCheckOut(c *object.CheckOut) error {
	var l fieldList
	l.add("User", c.User)
	l.add("Folder", c.Folder)
	l.add("Computer", c.Computer)
	l.add("ParentSpec", c.ParentSpec)
	l.add("Comment", c.Comment)
	l.flags("Flag1", uint64(c.Flag1))
	l.flags("Flag2", uint64(c.Flag2))
	l.flags("Flag3", uint64(c.Flag3))
	l.signed("NumberOfVersions", int64(c.NumberOfVersions))
	return v.out.emit(c, l)
}

func (v fieldVisitor) VisitParentFolder(p *object.ParentFolder) error {
	var l fieldList
	l.unsigned("PreviousOffset", uint64(p.PreviousOffset))
	l.add("ParentPhys", p.ParentPhys)
	return v.out.emit(p, l)
}

func (v fieldVisitor) VisitBranchFile(b *object.BranchFile) error {
	var l fieldList
	l.unsigned("PreviousOffset", uint64(b.PreviousOffset))
	l.add("BranchToPhys", b.BranchToPhys)
	return v.out.emit(b, l)
}

func (v fieldVisitor) VisitFileDelta(d *object.FileDelta) error {
	var l fieldList
	l.signed("Ops", int64(len(d.Ops)))
	for _, op := range d.Ops {
		switch op.Command {
		case object.DeltaInsert:
			l.add("Op", fmt.Sprintf("insert len=%d", op.Length))
		case object.DeltaCopy:
			l.add("Op", fmt.Sprintf("copy start=%d len=%d", op.Start, op.Length))
		case object.DeltaStop:
			l.add("Op", "stop")
		}
	}
	return v.out.emit(d, l)
}

func (v fieldVisitor) VisitNamesCache(n *object.NamesCache) error {
	var l fieldList
	l.unsigned("NamesFileLength", uint64(n.NamesFileLength))
	return v.out.emit(n, l)
}

func (v fieldVisitor) VisitNameCacheEntry(e *object.NameCacheEntry) error {
	var l fieldList
	for _, s := range e.Slots {
		l.add(fmt.Sprintf("Name%d", s.Kind), s.Name)
	}
	return v.out.emit(e, l)
}

func (v fieldVisitor) VisitProjectEntry(p *object.ProjectEntry) error {
	var l fieldList
	l.signed("Type", int64(p.Type))
	l.add("Name", p.DisplayName())
	l.add("NameType", p.Name.Type())
	l.flags("Flags", uint64(p.Flags))
	l.flag("Deleted", p.Deleted())
	l.flag("Binary", p.Binary())
	l.flag("LatestOnly", p.LatestOnly())
	l.flag("Shared", p.Shared())
	l.signed("PinnedToVersion", int64(p.PinnedToVersion))
	l.add("Physical", p.Phys)
	return v.out.emit(p, l)
}

func (v fieldVisitor) VisitUsersHeader(h *object.UsersHeader) error {
	return v.out.emit(h, nil)
}

func (v fieldVisitor) VisitUser(u *object.User) error {
	var l fieldList
	l.add("Name", u.Name)
	l.flags("Flags", uint64(u.Flags))
	return v.out.emit(u, l)
}

func (v fieldVisitor) VisitUnknown(u *object.Unknown) error {
	return v.out.emit(u, nil)
}

func (v fieldVisitor) VisitInvalid(o object.Object) error {
	return v.out.raw(o)
}

// tagOf returns the on-disk tag of o's record.
func tagOf(o object.Object) string {
	return o.Record().Tag()
}
