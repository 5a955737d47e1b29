package pyast

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/runenames"
)

// decodeEscapes interprets backslash escapes the way Python does for str
// literals. Unknown escapes, and \N{...} names that do not resolve, keep
// their backslash.
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for len(s) > 0 {
		if s[0] == '\\' && len(s) > 1 {
			switch c := s[1]; {
			case c == '\n':
				s = s[2:]
				continue
			case c == '\r' && strings.HasPrefix(s[2:], "\n"):
				s = s[3:]
				continue
			case c == '\'' || c == '"':
				b.WriteByte(c)
				s = s[2:]
				continue
			case isOctalDigit(c):
				// One to three digits, unlike Go's fixed three.
				n, v := 1, rune(0)
				for n < len(s) && n <= 3 && isOctalDigit(s[n]) {
					v = v*8 + rune(s[n]-'0')
					n++
				}
				b.WriteRune(v)
				s = s[n:]
				continue
			case c == 'N' && strings.HasPrefix(s[2:], "{"):
				if end := strings.IndexByte(s, '}'); end > 3 {
					if r, ok := lookupRuneName(s[3:end]); ok {
						b.WriteRune(r)
						s = s[end+1:]
						continue
					}
				}
			}
		}
		r, _, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			b.WriteByte(s[0])
			s = s[1:]
			continue
		}
		b.WriteRune(r)
		s = tail
	}
	return b.String()
}

func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

var (
	runeNamesOnce sync.Once
	runeNames     map[string]rune
)

// lookupRuneName resolves a Unicode character name case-insensitively. The
// table is built on first use, which only happens for sources using \N{...}.
func lookupRuneName(name string) (rune, bool) {
	runeNamesOnce.Do(func() {
		runeNames = make(map[string]rune)
		for r := rune(0); r <= unicode.MaxRune; r++ {
			// Range and control entries are placeholders such as "<control>".
			if n := runenames.Name(r); n != "" && !strings.HasPrefix(n, "<") {
				runeNames[n] = r
			}
		}
	})
	r, ok := runeNames[strings.ToUpper(name)]
	return r, ok
}
