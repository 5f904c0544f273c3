package vss

import (
	"errors"
	"fmt"
	"io"

	"github.com/odvcencio/ssphys/pkg/object"
	"github.com/odvcencio/ssphys/pkg/physfile"
	"github.com/odvcencio/ssphys/pkg/record"
)

var (
	ErrNotFileHistory     = errors.New("not the history file of a file item")
	ErrVersionOutOfRange  = errors.New("version out of range")
	ErrArchivedVersions   = errors.New("older versions were archived")
	ErrUnsupportedAction  = errors.New("action cannot be reversed")
	ErrNoDelta            = errors.New("check-in has no delta record")
	errReachedTargetEntry = errors.New("reached target version")
)

// Reconstruct rebuilds the content of the file item at path as of version.
// A version of zero or less counts back from the latest, so -1 is the
// revision before it. Only the database is read; the caller decides where
// the bytes go.
func Reconstruct(path string, version int, opts Options) ([]byte, error) {
	s, err := Open(path, opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Reconstruct(version)
}

// Reconstruct walks the history from the latest entry back to version,
// reversing each check-in against the latest data file.
func (s *Session) Reconstruct(version int) ([]byte, error) {
	if s.layout != History {
		return nil, fmt.Errorf("reconstruct %s: %w", s.src.Name(), ErrNotFileHistory)
	}
	item, err := s.Item()
	if err != nil {
		return nil, err
	}
	if item.Type != object.ItemFile {
		return nil, fmt.Errorf("reconstruct %s: %s item: %w", s.src.Name(), item.TypeName(), ErrNotFileHistory)
	}

	last, err := s.HistoryAt(item.HistoryOffsetLast)
	if err != nil {
		return nil, fmt.Errorf("reconstruct %s: last history entry: %w", s.src.Name(), err)
	}
	latest := int(last.Version)
	target := version
	if target <= 0 {
		target = latest + version
	}
	if target < 1 || target > latest {
		return nil, fmt.Errorf("reconstruct %s: version %d of %d: %w", s.src.Name(), version, latest, ErrVersionOutOfRange)
	}

	content, err := s.latestContent(item)
	if err != nil {
		return nil, err
	}

	err = s.Resolver().Walk(last, func(o object.Object) error {
		h := o.(*object.History)
		if int(h.Version) <= target {
			return errReachedTargetEntry
		}
		s.log.Debugf("vss: reverse version %d (%s)", h.Version, h.ActionLabel())
		switch h.Action() {
		case object.ActionCheckedIn:
			content, err = s.reverseCheckIn(h, content)
			return err
		case object.ActionCreatedFile:
			content = nil
		case object.ActionLabeled, object.ActionRollback:
		case object.ActionArchiveVersions:
			return fmt.Errorf("version %d: %w", h.Version, ErrArchivedVersions)
		default:
			return fmt.Errorf("version %d %q: %w", h.Version, h.ActionLabel(), ErrUnsupportedAction)
		}
		return nil
	})
	if err != nil && !errors.Is(err, errReachedTargetEntry) {
		return nil, fmt.Errorf("reconstruct %s: %w", s.src.Name(), err)
	}
	return content, nil
}

// Item reads the item record that opens a history file.
func (s *Session) Item() (*object.Item, error) {
	rec, err := record.ReadAt(s.src, s.layout.Start())
	if err != nil {
		return nil, fmt.Errorf("read item of %s: %w", s.src.Name(), err)
	}
	item, ok := object.Build(rec).(*object.Item)
	if !ok {
		return nil, fmt.Errorf("%s: first record is %s, want Item", s.src.Name(), rec.Kind())
	}
	if !item.Valid() {
		return nil, fmt.Errorf("%s: %w", s.src.Name(), item.Err())
	}
	return item, nil
}

// HistoryAt reads the history entry at off.
func (s *Session) HistoryAt(off uint32) (*object.History, error) {
	rec, err := record.ReadAt(s.src, int64(off))
	if err != nil {
		return nil, err
	}
	h, ok := object.Build(rec).(*object.History)
	if !ok {
		return nil, fmt.Errorf("record at %d is %s, want History", off, rec.Kind())
	}
	if !h.Valid() {
		return nil, h.Err()
	}
	return h, nil
}

// latestContent reads the data file holding the newest revision.
func (s *Session) latestContent(item *object.Item) ([]byte, error) {
	path, err := physfile.DataFile(s.src.Name(), item.LatestExt)
	if err != nil {
		return nil, err
	}
	data, err := physfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer data.Close()
	content, err := io.ReadAll(io.NewSectionReader(data, 0, data.Size()))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}

func (s *Session) reverseCheckIn(h *object.History, newer []byte) ([]byte, error) {
	ci, ok := h.Detail.(*object.CheckedInAction)
	if !ok || ci.DeltaOffset == 0 {
		return nil, fmt.Errorf("version %d: %w", h.Version, ErrNoDelta)
	}
	rec, err := record.ReadAt(s.src, int64(ci.DeltaOffset))
	if err != nil {
		return nil, fmt.Errorf("version %d: delta record: %w", h.Version, err)
	}
	fd, ok := object.Build(rec).(*object.FileDelta)
	if !ok {
		return nil, fmt.Errorf("version %d: record at %d is %s: %w", h.Version, ci.DeltaOffset, rec.Kind(), ErrNoDelta)
	}
	if !fd.Valid() {
		return nil, fmt.Errorf("version %d: %w", h.Version, fd.Err())
	}
	return object.ApplyReverseDelta(newer, fd.Ops)
}
