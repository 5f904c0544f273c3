package record

// Kind is the semantic classification of a record, derived from its tag.
type Kind int

const (
	None Kind = iota
	Item
	History
	Comment
	CheckOut
	ParentFolder
	FileDelta
	NamesCache
	NameCacheEntry
	ProjectEntry
	UsersHeader
	User
	BranchFile
	Unknown
)

var tagTable = [...]struct {
	tag  string
	kind Kind
}{
	{"DH", Item},
	{"MC", Comment},
	{"EL", History},
	{"CF", CheckOut},
	{"PF", ParentFolder},
	{"FD", FileDelta},
	{"HN", NamesCache},
	{"SN", NameCacheEntry},
	{"JP", ProjectEntry},
	{"HU", UsersHeader},
	{"UU", User},
	{"BF", BranchFile},
}

// Item headers are sometimes labelled by their sub-type in tooling output.
var tagAliases = map[string]Kind{
	"DH_PROJECT": Item,
	"DH_FILE":    Item,
}

var kindLabels = [...]string{
	None:           "None",
	Item:           "Item",
	History:        "History",
	Comment:        "Comment",
	CheckOut:       "CheckOut",
	ParentFolder:   "ParentFolder",
	FileDelta:      "FileDelta",
	NamesCache:     "NamesCache",
	NameCacheEntry: "NameCacheEntry",
	ProjectEntry:   "ProjectEntry",
	UsersHeader:    "UsersHeader",
	User:           "User",
	BranchFile:     "BranchFile",
	Unknown:        "Unknown",
}

// KindOf maps a type tag to its Kind. Unregistered tags map to Unknown.
func KindOf(tag string) Kind {
	for _, e := range tagTable {
		if e.tag == tag {
			return e.kind
		}
	}
	if k, ok := tagAliases[tag]; ok {
		return k
	}
	return Unknown
}

// Tag returns the canonical on-disk tag for k, "none" for None and
// "unknown" for Unknown or out-of-range values.
func (k Kind) Tag() string {
	for _, e := range tagTable {
		if e.kind == k {
			return e.tag
		}
	}
	if k == None {
		return "none"
	}
	return "unknown"
}

// String returns the display label for k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindLabels) {
		return kindLabels[Unknown]
	}
	return kindLabels[k]
}

// Known reports whether k is one of the tagged kinds.
func (k Kind) Known() bool {
	return k > None && k < Unknown
}

// Kinds lists every tagged kind in catalog order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(tagTable))
	for _, e := range tagTable {
		out = append(out, e.kind)
	}
	return out
}
