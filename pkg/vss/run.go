package vss

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/odvcencio/ssphys/pkg/object"
	"github.com/odvcencio/ssphys/pkg/record"
	"github.com/odvcencio/ssphys/pkg/report"
	"github.com/odvcencio/ssphys/pkg/validate"
)

// Validate runs the validator over the whole session. On a truncated file
// the report holds every finding up to the truncation, including a
// truncated finding, and the scan error is returned alongside it.
func (s *Session) Validate() (*validate.Report, error) {
	v := validate.New(s.src, validate.Options{
		AcceptUnknown: s.opts.AcceptUnknown,
		MaxHops:       s.opts.MaxHops,
		Logger:        s.log,
		Locator:       s.opts.Locator,
	})
	for _, f := range CheckSignature(s.src, s.layout) {
		v.Add(f)
	}

	err := s.Each(v.Check)
	var te *record.TruncatedRecordError
	if errors.As(err, &te) {
		v.Add(validate.Finding{
			Severity: validate.Error,
			Problem:  validate.ProblemTruncated,
			Offset:   te.Offset,
			Kind:     record.None,
			Message:  te.Error(),
		})
	}
	return v.Report(), err
}

// Dump writes one line per object, with every field when verbose is set.
func (s *Session) Dump(w io.Writer, verbose bool) error {
	d := report.NewDumper(w, s.opts.Names)
	d.Verbose = verbose
	d.Charset = s.opts.Charset
	return s.Each(func(o object.Object) error {
		return object.Dispatch(o, d)
	})
}

// Export writes the session as one XML document. The document is closed
// even when the scan stops early.
func (s *Session) Export(w io.Writer, indent string) error {
	x := report.NewXMLExporter(w, indent, s.opts.Names)
	x.Charset = s.opts.Charset
	if err := x.Begin(filepath.Base(s.src.Name())); err != nil {
		return err
	}
	err := s.Each(func(o object.Object) error {
		return object.Dispatch(o, x)
	})
	if endErr := x.End(); err == nil {
		err = endErr
	}
	return err
}

// ValidateFile opens path and validates it. See Session.Validate.
func ValidateFile(path string, opts Options) (*validate.Report, error) {
	s, err := Open(path, opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Validate()
}

// DumpFile opens path and dumps it to w.
func DumpFile(path string, w io.Writer, verbose bool, opts Options) error {
	s, err := Open(path, opts)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Dump(w, verbose)
}

// ExportFile opens path and exports it to w as XML.
func ExportFile(path string, w io.Writer, indent string, opts Options) error {
	s, err := Open(path, opts)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Export(w, indent)
}
