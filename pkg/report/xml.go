package report

import (
	"encoding/hex"
	"encoding/xml"
	"io"
	"strconv"

	"golang.org/x/text/encoding/charmap"

	"github.com/odvcencio/ssphys/pkg/object"
)

// XMLExporter writes objects as children of a <PhysicalFile> root:
//
//	<Record kind="BranchFile" tag="BF" offset="52" length="16">
//	  <PreviousOffset>0</PreviousOffset>
//	  <BranchToPhys>BAAAAAAA</BranchToPhys>
//	</Record>
//
// Invalid objects carry an <Error> and their payload as hex in <Raw>.
// Text fields are decoded from Charset. A value that cannot be represented
// in XML is written as hex with encoding="hex" so no byte is lost.
type XMLExporter struct {
	fieldVisitor
	enc *xml.Encoder
	// Charset is the database code page. Nil means Windows-1252.
	Charset *charmap.Charmap
}

// NewXMLExporter returns an exporter writing to w. names may be nil.
func NewXMLExporter(w io.Writer, indent string, names object.NameResolver) *XMLExporter {
	x := &XMLExporter{enc: xml.NewEncoder(w)}
	if indent != "" {
		x.enc.Indent("", indent)
	}
	x.fieldVisitor = fieldVisitor{names: names, out: x}
	return x
}

var rootElement = xml.Name{Local: "PhysicalFile"}

// Begin opens the root element for the file called name.
func (x *XMLExporter) Begin(name string) error {
	if err := x.enc.EncodeToken(xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8"`)}); err != nil {
		return err
	}
	return x.enc.EncodeToken(xml.StartElement{
		Name: rootElement,
		Attr: []xml.Attr{{Name: xml.Name{Local: "name"}, Value: name}},
	})
}

// End closes the root element and flushes the encoder.
func (x *XMLExporter) End() error {
	if err := x.enc.EncodeToken(xml.EndElement{Name: rootElement}); err != nil {
		return err
	}
	return x.enc.Flush()
}

func (x *XMLExporter) start(o object.Object, valid bool) xml.StartElement {
	attrs := []xml.Attr{
		{Name: xml.Name{Local: "kind"}, Value: o.Kind().String()},
		{Name: xml.Name{Local: "tag"}, Value: tagOf(o)},
		{Name: xml.Name{Local: "offset"}, Value: strconv.FormatInt(o.Offset(), 10)},
		{Name: xml.Name{Local: "length"}, Value: strconv.FormatInt(o.Record().Len(), 10)},
	}
	if !valid {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "valid"}, Value: "false"})
	}
	return xml.StartElement{Name: xml.Name{Local: "Record"}, Attr: attrs}
}

func (x *XMLExporter) element(name, value string) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if text, ok := decodeText(x.Charset, value); ok && xmlSafe(text) {
		return x.enc.EncodeElement(text, start)
	}
	start.Attr = []xml.Attr{{Name: xml.Name{Local: "encoding"}, Value: "hex"}}
	return x.enc.EncodeElement(hex.EncodeToString([]byte(value)), start)
}

func (x *XMLExporter) emit(o object.Object, fields []Field) error {
	start := x.start(o, true)
	if err := x.enc.EncodeToken(start); err != nil {
		return err
	}
	for _, f := range fields {
		if err := x.element(f.Name, f.Value); err != nil {
			return err
		}
	}
	return x.enc.EncodeToken(start.End())
}

func (x *XMLExporter) raw(o object.Object) error {
	start := x.start(o, false)
	if err := x.enc.EncodeToken(start); err != nil {
		return err
	}
	if o.Err() != nil {
		if err := x.element("Error", o.Err().Error()); err != nil {
			return err
		}
	}
	if err := x.element("Raw", hex.EncodeToString(o.Record().Payload())); err != nil {
		return err
	}
	return x.enc.EncodeToken(start.End())
}
