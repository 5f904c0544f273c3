package object

// Name is the 40-byte name block embedded in items, history entries and
// project entries. Short holds at most 34 bytes; longer names live in the
// names cache at NamesOffset.
type Name struct {
	Flags       int16 // 0 file, 1 project
	Short       string
	NamesOffset uint32
}

// NameResolver looks up long names in the names cache.
type NameResolver interface {
	LongName(flags int16, offset uint32) (string, bool)
}

func (n Name) IsProject() bool { return n.Flags == 1 }

// Type returns "file", "project" or "type unknown".
func (n Name) Type() string {
	switch n.Flags {
	case 0:
		return "file"
	case 1:
		return "project"
	}
	return "type unknown"
}

// FullName returns the long name from the cache when r has one, otherwise
// the short name.
func (n Name) FullName(r NameResolver) string {
	if r != nil && n.NamesOffset != 0 {
		if long, ok := r.LongName(n.Flags, n.NamesOffset); ok && long != "" {
			return long
		}
	}
	return n.Short
}

func (n Name) String() string { return n.Short }

// LongNameKind is the names-cache entry kind holding the full name for an
// item with the given name flags.
func LongNameKind(flags int16) int16 {
	return flags<<3 | 2
}
