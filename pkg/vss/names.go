package vss

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/odvcencio/ssphys/pkg/object"
	"github.com/odvcencio/ssphys/pkg/physfile"
	"github.com/odvcencio/ssphys/pkg/record"
)

// NamesFileName is the names cache at the root of a database's data tree.
const NamesFileName = "names.dat"

// NamesFile resolves long names through a names cache file.
type NamesFile struct {
	src physfile.Source
	log logrus.Ext1FieldLogger
}

// OpenNames opens the names cache at path.
func OpenNames(path string, log logrus.Ext1FieldLogger) (*NamesFile, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	src, err := physfile.Open(path)
	if err != nil {
		return nil, err
	}
	if layout, err := Recognize(src); err != nil || layout != NamesCache {
		_ = src.Close()
		return nil, fmt.Errorf("open names cache %s: not a names cache file", path)
	}
	return &NamesFile{src: src, log: log}, nil
}

// FindNames locates the names cache of the database a physical file belongs
// to and opens it.
func FindNames(loc physfile.Locator, log logrus.Ext1FieldLogger) (*NamesFile, error) {
	path, err := loc.Find(NamesFileName)
	if err != nil {
		return nil, err
	}
	return OpenNames(path, log)
}

// LongName returns the long form of a name whose cache entry starts at
// offset. Missing or damaged entries report false.
func (n *NamesFile) LongName(flags int16, offset uint32) (string, bool) {
	if offset == 0 {
		return "", false
	}
	rec, err := record.ReadAt(n.src, int64(offset))
	if err != nil {
		n.log.Debugf("vss: names entry at %d: %v", offset, err)
		return "", false
	}
	e, ok := object.Build(rec).(*object.NameCacheEntry)
	if !ok || !e.Valid() {
		n.log.Debugf("vss: names entry at %d is not a valid %s record", offset, record.NameCacheEntry)
		return "", false
	}
	return e.Name(object.LongNameKind(flags))
}

func (n *NamesFile) Close() error { return n.src.Close() }
