package physfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Locator finds physical files by their eight-letter physical name inside a
// SourceSafe data directory. Databases store "aaaaaaaa" under data/a/, but
// copies taken from Windows shares often flatten or upper-case the tree, so
// every candidate is tried in both cases.
type Locator struct {
	Root string
}

// LocatorFor derives a Locator from the path of one physical file. When the
// file sits in a single-letter bucket directory the data root is its parent.
func LocatorFor(path string) Locator {
	dir := filepath.Dir(path)
	if len(filepath.Base(dir)) == 1 {
		return Locator{Root: filepath.Dir(dir)}
	}
	return Locator{Root: dir}
}

// Find returns the path of the physical file named phys.
func (l Locator) Find(phys string) (string, error) {
	name := strings.TrimSpace(strings.TrimRight(phys, "\x00"))
	if name == "" {
		return "", fmt.Errorf("locate physical file: empty name")
	}
	bucket := name[:1]

	candidates := []string{
		filepath.Join(l.Root, strings.ToLower(bucket), strings.ToLower(name)),
		filepath.Join(l.Root, strings.ToUpper(bucket), strings.ToUpper(name)),
		filepath.Join(l.Root, strings.ToLower(name)),
		filepath.Join(l.Root, strings.ToUpper(name)),
	}
	for _, c := range candidates {
		if isRegular(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("locate physical file %q under %s: %w", name, l.Root, os.ErrNotExist)
}

// DataFile returns the path of the content file that accompanies a physical
// history file, e.g. "aaaaaaaa" + ".a". The extension's case is tried as
// stored and then lower/upper-cased with the rest of the leaf.
func DataFile(path, ext string) (string, error) {
	want := path + ext
	if isRegular(want) {
		return want, nil
	}
	dir, leaf := filepath.Split(want)
	for _, c := range []string{strings.ToLower(leaf), strings.ToUpper(leaf)} {
		p := filepath.Join(dir, c)
		if isRegular(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("data file %s: %w", want, os.ErrNotExist)
}

func isRegular(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}
