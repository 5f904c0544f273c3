package vss

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"

	"github.com/odvcencio/ssphys/pkg/chain"
	"github.com/odvcencio/ssphys/pkg/object"
	"github.com/odvcencio/ssphys/pkg/physfile"
	"github.com/odvcencio/ssphys/pkg/record"
)

// Options configures a Session and the consumers run over it. Zero values
// receive defaults.
type Options struct {
	AcceptUnknown bool
	// MaxHops bounds chain walks. Zero derives the bound from the file size.
	MaxHops int
	Logger  logrus.Ext1FieldLogger
	// Locator finds other physical files of the same database.
	Locator *physfile.Locator
	// Names expands long names in dumps and exports. Nil prints short names.
	Names object.NameResolver
	// Charset decodes text fields in dumps and exports. Nil means
	// Windows-1252.
	Charset *charmap.Charmap
}

func (o Options) logger() logrus.Ext1FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}

func (o Options) chainOptions() chain.Options {
	return chain.Options{MaxHops: o.MaxHops, Logger: o.logger(), Locator: o.Locator}
}

// State is the lifecycle of a Session.
type State int

const (
	Scanning State = iota
	Done
)

func (s State) String() string {
	if s == Done {
		return "done"
	}
	return "scanning"
}

var ErrSessionDone = errors.New("session already scanned")

// Session owns one opened physical file for a single front-to-back scan.
// Objects handed out by Each borrow the session's source and must not be
// used after Close.
type Session struct {
	src    physfile.Source
	layout Layout
	opts   Options
	log    logrus.Ext1FieldLogger
	state  State
	owned  bool

	records int
}

// Open maps the file at path and recognizes its layout. A path that cannot
// be opened yields *FileNotRecognizedError wrapping the cause.
func Open(path string, opts Options) (*Session, error) {
	src, err := physfile.Open(path)
	if err != nil {
		return nil, &FileNotRecognizedError{Name: path, Err: err}
	}
	layout, err := Recognize(src)
	if err != nil {
		_ = src.Close()
		return nil, err
	}
	s := OpenSource(src, layout, opts)
	s.owned = true
	return s, nil
}

// OpenSource starts a session over an already opened source. The caller
// keeps ownership of src.
func OpenSource(src physfile.Source, layout Layout, opts Options) *Session {
	log := opts.logger()
	log.Debugf("vss: %s is a %s file of %d bytes", src.Name(), layout, src.Size())
	return &Session{src: src, layout: layout, opts: opts, log: log}
}

func (s *Session) Source() physfile.Source { return s.src }
func (s *Session) Layout() Layout          { return s.layout }
func (s *Session) State() State            { return s.state }

// Records is the number of records handed out so far.
func (s *Session) Records() int { return s.records }

// Resolver returns a chain resolver over the session's source.
func (s *Session) Resolver() *chain.Resolver {
	return chain.NewResolver(s.src, s.opts.chainOptions())
}

// Each builds the object of every record in file order and passes it to fn.
// It stops at the first error from fn or the first record that cannot be
// read; a truncated record yields *record.TruncatedRecordError. The session
// is Done afterwards whatever the outcome.
func (s *Session) Each(fn func(object.Object) error) error {
	if s.state == Done {
		return ErrSessionDone
	}
	defer func() { s.state = Done }()

	sc := record.NewScanner(s.src, s.layout.Start())
	for sc.Next() {
		s.records++
		if err := fn(object.Build(sc.Record())); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		s.log.Warnf("vss: %s: scan stopped at offset %d after %d records: %v", s.src.Name(), sc.Offset(), s.records, err)
		return fmt.Errorf("scan %s: %w", s.src.Name(), err)
	}
	s.log.Debugf("vss: %s: %d records", s.src.Name(), s.records)
	return nil
}

// Close releases the source if the session opened it.
func (s *Session) Close() error {
	s.state = Done
	if !s.owned || s.src == nil {
		return nil
	}
	err := s.src.Close()
	s.src = nil
	return err
}
