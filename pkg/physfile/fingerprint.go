package physfile

import (
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns the hex BLAKE2b-256 digest of the whole source. It lets
// a report be matched to the exact bytes that were inspected.
func Fingerprint(src Source) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, io.NewSectionReader(src, 0, src.Size())); err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", src.Name(), err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
