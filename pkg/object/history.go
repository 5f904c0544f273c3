package object

import (
	"fmt"
	"time"
)

const (
	historyHeaderSize = 88
	actionOffset      = historyHeaderSize
)

// History is one version entry in an item's history chain.
type History struct {
	base
	Previous                    uint32
	ActionCode                  uint16
	Version                     int16
	Timestamp                   uint32
	User                        string
	Label                       string
	OffsetToNextRecordOrComment uint32
	OffsetToLabelComment        uint32
	LengthComment               int16
	LengthLabelComment          int16

	// Detail is the decoded action payload. It is nil when the action has
	// no known payload layout or the payload was too short, in which case
	// ActionErr says why. Neither makes the entry invalid.
	Detail    ActionDetail
	ActionErr error
}

// Date returns the entry's timestamp in UTC.
func (h *History) Date() time.Time {
	return time.Unix(int64(h.Timestamp), 0).UTC()
}

// Action returns the effective action. Shared entries report Pinned or
// Unpinned when their sub-action says so.
func (h *History) Action() Action {
	if s, ok := h.Detail.(*SharedAction); ok {
		return s.Effective()
	}
	return Action(h.ActionCode)
}

// ActionLabel returns the display label of the effective action.
func (h *History) ActionLabel() string { return h.Action().String() }

// Describe renders the action as a sentence, for example
// "Checked in $/proj/file.c".
func (h *History) Describe() string {
	if h.Detail == nil {
		return h.ActionLabel()
	}
	return h.Detail.describe(h)
}

// ActionDetail is the decoded payload of one action family.
type ActionDetail interface {
	describe(h *History) string
}

// ItemAction covers created, added, deleted and recovered items.
type ItemAction struct {
	Name Name
	Phys string
}

// DestroyedAction records a destroyed project or file.
type DestroyedAction struct {
	Name Name
	Phys string
}

// RenamedAction records a rename from OldName to NewName.
type RenamedAction struct {
	NewName Name
	OldName Name
	Phys    string
}

// SharedAction records a share, pin or unpin.
type SharedAction struct {
	SrcPath         string
	Name            Name
	SubAction       int16 // <0 shared, 0 pinned, >0 unpinned version
	PinnedToVersion int16
	Phys            string
}

// Effective maps the sub-action onto Shared, Pinned or Unpinned.
func (s *SharedAction) Effective() Action {
	switch {
	case s.SubAction < 0:
		return ActionSharedFile
	case s.SubAction == 0:
		return ActionPinnedFile
	}
	return ActionUnpinnedFile
}

// UnpinnedVersion is the version an unpin released, or 0.
func (s *SharedAction) UnpinnedVersion() int16 {
	if s.SubAction > 0 {
		return s.SubAction
	}
	return 0
}

// MovedAction records a project moved from or to Path.
type MovedAction struct {
	Path string
	Name Name
	Phys string
}

// CheckedInAction points at the file delta that undoes the check-in.
type CheckedInAction struct {
	DeltaOffset uint32
	Spec        string
}

// BranchAction covers branches and rollbacks. Parent is the physical file
// the item was branched from.
type BranchAction struct {
	Name   Name
	Phys   string
	Parent string
}

// ArchiveVersionsAction records versions moved out to an archive.
type ArchiveVersionsAction struct {
	Name           Name
	Phys           string
	ArchiveVersion int16
	Target         string
}

// ArchiveAction covers archive and restore of files and projects.
type ArchiveAction struct {
	Name     Name
	Phys     string
	Filename string
}

// LabelAction carries no payload; the label text lives on the entry.
type LabelAction struct{}

func itemPrefix(n Name) string {
	if n.IsProject() {
		return "$"
	}
	return ""
}

func (a *ItemAction) describe(h *History) string {
	return fmt.Sprintf("%s %s%s", Action(h.ActionCode), itemPrefix(a.Name), a.Name.Short)
}

func (a *DestroyedAction) describe(*History) string {
	return "Destroyed " + itemPrefix(a.Name) + a.Name.Short
}

func (a *RenamedAction) describe(*History) string {
	p := itemPrefix(a.NewName)
	return fmt.Sprintf("Renamed %s%s to %s%s", p, a.OldName.Short, p, a.NewName.Short)
}

func (a *SharedAction) describe(*History) string {
	switch a.Effective() {
	case ActionPinnedFile:
		return fmt.Sprintf("Pinned %s%s at version %d", a.SrcPath, a.Name.Short, a.PinnedToVersion)
	case ActionUnpinnedFile:
		return fmt.Sprintf("Unpinned %s%s from version %d", a.SrcPath, a.Name.Short, a.UnpinnedVersion())
	}
	return "Shared " + a.SrcPath + a.Name.Short
}

func (a *MovedAction) describe(h *History) string {
	if Action(h.ActionCode) == ActionMovedProjectFrom {
		return fmt.Sprintf("Moved $%s from %s", a.Name.Short, a.Path)
	}
	return fmt.Sprintf("Moved $%s to %s", a.Name.Short, a.Path)
}

func (a *CheckedInAction) describe(*History) string {
	return "Checked in " + a.Spec
}

func (a *BranchAction) describe(h *History) string {
	if Action(h.ActionCode) == ActionRollback {
		return "Rolled back " + a.Name.Short
	}
	return "Branched file " + a.Name.Short
}

func (a *ArchiveVersionsAction) describe(*History) string {
	return "Archived versions of " + a.Name.Short
}

func (a *ArchiveAction) describe(h *History) string {
	verb := "Archive "
	switch Action(h.ActionCode) {
	case ActionRestoreFile, ActionRestoreProject:
		verb = "Restore "
	}
	return verb + itemPrefix(a.Name) + a.Name.Short
}

func (LabelAction) describe(h *History) string {
	return "Labeled " + h.Label
}

// actionLayouts lists the minimum payload size of each decodable action.
var actionLayouts = map[Action]int{
	ActionLabeled:          0,
	ActionCreatedProject:   50,
	ActionAddedProject:     50,
	ActionAddedFile:        50,
	ActionCreatedFile:      50,
	ActionDeletedProject:   50,
	ActionDeletedFile:      50,
	ActionRecoveredProject: 50,
	ActionRecoveredFile:    50,
	ActionDestroyedProject: 52,
	ActionDestroyedFile:    52,
	ActionRenamedProject:   90,
	ActionRenamedFile:      90,
	ActionMovedProjectFrom: 310,
	ActionMovedProjectTo:   310,
	ActionSharedFile:       316,
	ActionCheckedIn:        268,
	ActionBranchFile:       60,
	ActionRollback:         60,
	ActionArchiveVersions:  318,
	ActionArchiveFile:      316,
	ActionArchiveProject:   316,
	ActionRestoreFile:      316,
	ActionRestoreProject:   316,
}

// ActionPayloadSize returns the minimum payload size of action a beyond the
// fixed history header, and false when a has no known layout.
func ActionPayloadSize(a Action) (int, bool) {
	n, ok := actionLayouts[a]
	return n, ok
}

func newHistory(b base) *History {
	o := &History{base: b}
	f, ok := o.fields(historyHeaderSize)
	if !ok {
		return o
	}
	o.Previous = f.u32(0)
	o.ActionCode = f.u16(4)
	o.Version = f.i16(6)
	o.Timestamp = f.u32(8)
	o.User = f.str(12, 32)
	o.Label = f.str(44, 32)
	o.OffsetToNextRecordOrComment = f.u32(76)
	o.OffsetToLabelComment = f.u32(80)
	o.LengthComment = f.i16(84)
	o.LengthLabelComment = f.i16(86)
	o.Detail, o.ActionErr = decodeAction(Action(o.ActionCode), f[actionOffset:])
	return o
}

func decodeAction(a Action, p fields) (ActionDetail, error) {
	need, ok := actionLayouts[a]
	if !ok {
		return nil, fmt.Errorf("action code %d has no known payload layout", int(a))
	}
	if len(p) < need {
		return nil, fmt.Errorf("%s payload needs %d bytes, has %d", a, need, len(p))
	}

	switch a {
	case ActionLabeled:
		return LabelAction{}, nil
	case ActionDestroyedProject, ActionDestroyedFile:
		return &DestroyedAction{Name: p.name(0), Phys: p.str(42, 10)}, nil
	case ActionRenamedProject, ActionRenamedFile:
		return &RenamedAction{NewName: p.name(0), OldName: p.name(40), Phys: p.str(80, 10)}, nil
	case ActionMovedProjectFrom, ActionMovedProjectTo:
		return &MovedAction{Path: p.str(0, 260), Name: p.name(260), Phys: p.str(300, 10)}, nil
	case ActionSharedFile:
		return &SharedAction{
			SrcPath:         p.str(0, 260),
			Name:            p.name(260),
			SubAction:       p.i16(300),
			PinnedToVersion: p.i16(302),
			Phys:            p.str(306, 10),
		}, nil
	case ActionCheckedIn:
		return &CheckedInAction{DeltaOffset: p.u32(0), Spec: p.str(8, 260)}, nil
	case ActionBranchFile, ActionRollback:
		return &BranchAction{Name: p.name(0), Phys: p.str(40, 10), Parent: p.str(50, 10)}, nil
	case ActionArchiveVersions:
		return &ArchiveVersionsAction{
			Name:           p.name(0),
			Phys:           p.str(40, 10),
			ArchiveVersion: p.i16(64),
			Target:         p.str(66, 252),
		}, nil
	case ActionArchiveFile, ActionArchiveProject, ActionRestoreFile, ActionRestoreProject:
		return &ArchiveAction{Name: p.name(0), Phys: p.str(40, 10), Filename: p.str(52, 264)}, nil
	default:
		return &ItemAction{Name: p.name(0), Phys: p.str(40, 10)}, nil
	}
}
