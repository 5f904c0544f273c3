package report

import (
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"

	"github.com/odvcencio/ssphys/pkg/object"
)

// Dumper writes one line per object, ending with the kind's key fields:
//
//	Offset: 0x00000034 Kind: Item Tag: DH Len: 356 Type: file Name: notes.txt
//
// History lines end with the action label. With Verbose set, every decoded
// field follows on its own indented line. Invalid objects get the reason and
// a hex dump of the payload instead of decoded fields.
type Dumper struct {
	fieldVisitor
	w       io.Writer
	Verbose bool
	// Charset is the database code page. Nil means Windows-1252.
	Charset *charmap.Charmap
}

// NewDumper returns a Dumper writing to w. names may be nil.
func NewDumper(w io.Writer, names object.NameResolver) *Dumper {
	d := &Dumper{w: w}
	d.fieldVisitor = fieldVisitor{names: names, out: d}
	return d
}

func (d *Dumper) text(s string) string {
	t, _ := decodeText(d.Charset, s)
	return t
}

func (d *Dumper) header(o object.Object) error {
	line := fmt.Sprintf("Offset: 0x%08x Kind: %s Tag: %s Len: %d", o.Offset(), o.Kind(), tagOf(o), o.Record().Len())
	if o.Valid() {
		line += d.keyFields(o)
	}
	_, err := io.WriteString(d.w, line+"\n")
	return err
}

// keyFields summarises o on its header line.
func (d *Dumper) keyFields(o object.Object) string {
	switch o := o.(type) {
	case *object.Item:
		return fmt.Sprintf(" Type: %s Name: %s", o.TypeName(), d.text(o.Name.FullName(d.names)))
	case *object.History:
		return fmt.Sprintf(" Version: %d User: %s Action: %s", o.Version, d.text(o.User), o.ActionLabel())
	case *object.CheckOut:
		return " User: " + d.text(o.User)
	case *object.BranchFile:
		return fmt.Sprintf(" Prev: %d BranchTo: %s", o.PreviousOffset, d.text(o.BranchToPhys))
	case *object.ParentFolder:
		return fmt.Sprintf(" Prev: %d Parent: %s", o.PreviousOffset, d.text(o.ParentPhys))
	case *object.FileDelta:
		return fmt.Sprintf(" Ops: %d", len(o.Ops))
	case *object.NamesCache:
		return fmt.Sprintf(" NamesFileLength: %d", o.NamesFileLength)
	case *object.NameCacheEntry:
		return fmt.Sprintf(" Names: %d", len(o.Slots))
	case *object.ProjectEntry:
		return fmt.Sprintf(" Type: %s Name: %s Phys: %s", o.Name.Type(), d.text(o.DisplayName()), d.text(o.Phys))
	case *object.User:
		return " User: " + d.text(o.Name)
	}
	return ""
}

func (d *Dumper) emit(o object.Object, fields []Field) error {
	if err := d.header(o); err != nil {
		return err
	}
	if !d.Verbose {
		return nil
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(d.w, "  %s: %s\n", f.Name, d.text(f.Value)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dumper) raw(o object.Object) error {
	if err := d.header(o); err != nil {
		return err
	}
	if o.Err() != nil {
		if _, err := fmt.Fprintf(d.w, "  Invalid: %v\n", o.Err()); err != nil {
			return err
		}
	}
	if p := o.Record().Payload(); len(p) > 0 {
		if _, err := io.WriteString(d.w, hex.Dump(p)); err != nil {
			return err
		}
	}
	return nil
}
