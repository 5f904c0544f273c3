// Package object builds typed logical objects from physical-file records.
//
// Every record kind has one concrete pointer type implementing Object. The
// set is closed: consumers switch over it through Dispatch, and records with
// unregistered tags become *Unknown instead of failing.
package object

import "github.com/odvcencio/ssphys/pkg/record"

// Object is the logical view of one record.
type Object interface {
	Kind() record.Kind
	Record() *record.Record
	Offset() int64
	// Valid is false when the payload was too short or malformed for the
	// kind's layout. Decoded fields of an invalid object must not be trusted.
	Valid() bool
	// Err describes why the object is invalid.
	Err() error

	isObject()
}

type base struct {
	kind record.Kind
	rec  *record.Record
	err  error
}

func (b *base) Kind() record.Kind      { return b.kind }
func (b *base) Record() *record.Record { return b.rec }
func (b *base) Offset() int64          { return b.rec.Offset }
func (b *base) Valid() bool            { return b.err == nil }
func (b *base) Err() error             { return b.err }
func (b *base) isObject()              {}

// fields returns the payload if it holds at least min bytes, otherwise it
// marks the object invalid.
func (b *base) fields(min int) (fields, bool) {
	p := b.rec.Payload()
	if len(p) < min {
		b.err = &InvalidPayloadError{Kind: b.kind, Offset: b.rec.Offset, Need: min, Have: len(p)}
		return nil, false
	}
	return fields(p), true
}

func (b *base) invalidate(reason string) {
	b.err = &InvalidPayloadError{Kind: b.kind, Offset: b.rec.Offset, Have: len(b.rec.Payload()), Reason: reason}
}

// Build constructs the logical object for rec. It never fails: unknown tags
// yield *Unknown and short or malformed payloads yield an invalid object of
// the record's kind.
func Build(rec *record.Record) Object {
	b := base{kind: rec.Kind(), rec: rec}
	switch b.kind {
	case record.Item:
		return newItem(b)
	case record.History:
		return newHistory(b)
	case record.Comment:
		return newComment(b)
	case record.CheckOut:
		return newCheckOut(b)
	case record.ParentFolder:
		return newParentFolder(b)
	case record.FileDelta:
		return newFileDelta(b)
	case record.NamesCache:
		return newNamesCache(b)
	case record.NameCacheEntry:
		return newNameCacheEntry(b)
	case record.ProjectEntry:
		return newProjectEntry(b)
	case record.UsersHeader:
		return &UsersHeader{base: b}
	case record.User:
		return newUser(b)
	case record.BranchFile:
		return newBranchFile(b)
	default:
		b.kind = record.Unknown
		return &Unknown{base: b, Tag: rec.Tag()}
	}
}

// IsValid reports whether o can be trusted: it has a record, its tag names a
// known kind (or acceptUnknown is set) and its payload fits the kind's layout.
func IsValid(o Object, acceptUnknown bool) bool {
	if o == nil || o.Record() == nil || o.Record().Len() < 0 {
		return false
	}
	if o.Kind() == record.Unknown && !acceptUnknown {
		return false
	}
	return o.Valid()
}

// Unknown is a record whose tag is not in the catalog. Only the tag is kept.
type Unknown struct {
	base
	Tag string
}

// KindError describes the unrecognised tag.
func (u *Unknown) KindError() *UnknownKindError {
	return &UnknownKindError{Tag: u.Tag, Offset: u.Offset()}
}

// UsersHeader is the first record of the user management file. Its payload
// is not decoded.
type UsersHeader struct {
	base
}

// User is one account in the user management file.
type User struct {
	base
	Flags uint16
	Name  string
}

const userMinSize = 34

func newUser(b base) *User {
	o := &User{base: b}
	f, ok := o.fields(userMinSize)
	if !ok {
		return o
	}
	o.Flags = f.u16(0)
	o.Name = f.str(2, 32)
	return o
}

// Comment is free text attached to a history entry or label.
type Comment struct {
	base
	Text string
}

func newComment(b base) *Comment {
	o := &Comment{base: b}
	f, _ := o.fields(0)
	o.Text = f.str(0, len(f))
	return o
}
