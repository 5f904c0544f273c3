package object

import "fmt"

// Visitor receives objects by concrete kind. Invalid objects of any kind go
// to VisitInvalid instead of their kind's method.
type Visitor interface {
	VisitItem(*Item) error
	VisitHistory(*History) error
	VisitComment(*Comment) error
	VisitCheckOut(*CheckOut) error
	VisitParentFolder(*ParentFolder) error
	VisitFileDelta(*FileDelta) error
	VisitNamesCache(*NamesCache) error
	VisitNameCacheEntry(*NameCacheEntry) error
	VisitProjectEntry(*ProjectEntry) error
	VisitUsersHeader(*UsersHeader) error
	VisitUser(*User) error
	VisitBranchFile(*BranchFile) error
	VisitUnknown(*Unknown) error
	VisitInvalid(Object) error
}

// Dispatch hands o to the matching Visitor method.
func Dispatch(o Object, v Visitor) error {
	if !o.Valid() {
		return v.VisitInvalid(o)
	}
	switch o := o.(type) {
	case *Item:
		return v.VisitItem(o)
	case *History:
		return v.VisitHistory(o)
	case *Comment:
		return v.VisitComment(o)
	case *CheckOut:
		return v.VisitCheckOut(o)
	case *ParentFolder:
		return v.VisitParentFolder(o)
	case *FileDelta:
		return v.VisitFileDelta(o)
	case *NamesCache:
		return v.VisitNamesCache(o)
	case *NameCacheEntry:
		return v.VisitNameCacheEntry(o)
	case *ProjectEntry:
		return v.VisitProjectEntry(o)
	case *UsersHeader:
		return v.VisitUsersHeader(o)
	case *User:
		return v.VisitUser(o)
	case *BranchFile:
		return v.VisitBranchFile(o)
	case *Unknown:
		return v.VisitUnknown(o)
	default:
		return fmt.Errorf("dispatch: unhandled object type %T", o)
	}
}

// NopVisitor implements Visitor with methods that do nothing. Embed it to
// handle only some kinds.
type NopVisitor struct{}

func (NopVisitor) VisitItem(*Item) error                     { return nil }
func (NopVisitor) VisitHistory(*History) error               { return nil }
func (NopVisitor) VisitComment(*Comment) error               { return nil }
func (NopVisitor) VisitCheckOut(*CheckOut) error             { return nil }
func (NopVisitor) VisitParentFolder(*ParentFolder) error     { return nil }
func (NopVisitor) VisitFileDelta(*FileDelta) error           { return nil }
func (NopVisitor) VisitNamesCache(*NamesCache) error         { return nil }
func (NopVisitor) VisitNameCacheEntry(*NameCacheEntry) error { return nil }
func (NopVisitor) VisitProjectEntry(*ProjectEntry) error     { return nil }
func (NopVisitor) VisitUsersHeader(*UsersHeader) error       { return nil }
func (NopVisitor) VisitUser(*User) error                     { return nil }
func (NopVisitor) VisitBranchFile(*BranchFile) error         { return nil }
func (NopVisitor) VisitUnknown(*Unknown) error               { return nil }
func (NopVisitor) VisitInvalid(Object) error                 { return nil }
