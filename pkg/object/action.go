package object

// Action is the operation a history entry records.
type Action int

const (
	ActionLabeled Action = iota
	ActionCreatedProject
	ActionAddedProject
	ActionAddedFile
	ActionDestroyedProject
	ActionDestroyedFile
	ActionDeletedProject
	ActionDeletedFile
	ActionRecoveredProject
	ActionRecoveredFile
	ActionRenamedProject
	ActionRenamedFile
	ActionMovedProjectFrom
	ActionMovedProjectTo
	ActionSharedFile
	ActionBranchFile
	ActionCreatedFile
	ActionCheckedIn
	action18
	ActionRollback
	ActionArchiveVersions
	action21
	ActionArchiveFile
	ActionArchiveProject
	ActionRestoreFile
	ActionRestoreProject
	ActionPinnedFile
	ActionUnpinnedFile
)

// Codes 18 and 21 have never been seen with a known meaning; their labels are
// kept as the historical placeholders.
var actionLabels = [...]string{
	ActionLabeled:          "Labeled",
	ActionCreatedProject:   "Created Project",
	ActionAddedProject:     "Added Project",
	ActionAddedFile:        "Added File",
	ActionDestroyedProject: "Destroyed Project",
	ActionDestroyedFile:    "Destroyed File",
	ActionDeletedProject:   "Deleted Project",
	ActionDeletedFile:      "Deleted File",
	ActionRecoveredProject: "Recovered Project",
	ActionRecoveredFile:    "Recovered File",
	ActionRenamedProject:   "Renamed Project",
	ActionRenamedFile:      "Renamed File",
	ActionMovedProjectFrom: "Moved Project From",
	ActionMovedProjectTo:   "Moved Project To",
	ActionSharedFile:       "Shared File",
	ActionBranchFile:       "Branch File",
	ActionCreatedFile:      "Created File",
	ActionCheckedIn:        "Checked In",
	action18:               "Action 18",
	ActionRollback:         "RollBack",
	ActionArchiveVersions:  "Archive Versions of File",
	action21:               "Action 19",
	ActionArchiveFile:      "Archive File",
	ActionArchiveProject:   "Archive Project",
	ActionRestoreFile:      "Restored File",
	ActionRestoreProject:   "Restored Project",
	ActionPinnedFile:       "Pinned File",
	ActionUnpinnedFile:     "Unpinned File",
}

// ActionLabel maps a raw action code to its display label. Codes outside the
// table map to "unknown".
func ActionLabel(code int) string {
	if code < 0 || code >= len(actionLabels) {
		return "unknown"
	}
	return actionLabels[code]
}

func (a Action) String() string { return ActionLabel(int(a)) }

// Known reports whether a has a label in the action table.
func (a Action) Known() bool { return a >= 0 && int(a) < len(actionLabels) }
