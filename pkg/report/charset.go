package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DefaultCodePage is the ANSI code page Western European databases are
// written in.
const DefaultCodePage = 1252

var codePages = map[int]*charmap.Charmap{
	437:   charmap.CodePage437,
	850:   charmap.CodePage850,
	852:   charmap.CodePage852,
	866:   charmap.CodePage866,
	874:   charmap.Windows874,
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1252:  charmap.Windows1252,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1255:  charmap.Windows1255,
	1256:  charmap.Windows1256,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	28591: charmap.ISO8859_1,
	28592: charmap.ISO8859_2,
	28605: charmap.ISO8859_15,
}

// Charset returns the single-byte character set of Windows code page cp.
func Charset(cp int) (*charmap.Charmap, error) {
	cm, ok := codePages[cp]
	if !ok {
		return nil, fmt.Errorf("unsupported code page %d", cp)
	}
	return cm, nil
}

// decodeText converts code-page bytes to UTF-8. ASCII passes through
// unchanged. ok is false when a byte has no mapping in cm.
func decodeText(cm *charmap.Charmap, s string) (string, bool) {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return s, true
	}
	if cm == nil {
		cm = charmap.Windows1252
	}
	var b strings.Builder
	b.Grow(len(s) * 2)
	ok := true
	for i := 0; i < len(s); i++ {
		r := cm.DecodeByte(s[i])
		if r == utf8.RuneError {
			ok = false
		}
		b.WriteRune(r)
	}
	return b.String(), ok
}

// xmlSafe reports whether every rune of s survives an XML 1.0 round trip.
func xmlSafe(s string) bool {
	for _, r := range s {
		switch {
		case r == '\t', r == '\n', r == '\r':
		case r < 0x20, r == utf8.RuneError:
			return false
		}
	}
	return true
}
