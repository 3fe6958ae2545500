package plotitem

import (
	"fmt"
	"strings"
)

// Quote escapes s for use as a gnuplot string literal: backslashes are
// doubled, then double quotes are backslash-escaped, and the result is
// wrapped in double quotes.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// Unquote reverses Quote.
func Unquote(q string) (string, error) {
	if len(q) < 2 || q[0] != '"' || q[len(q)-1] != '"' {
		return "", fmt.Errorf("not a quoted string: %q", q)
	}

	body := q[1 : len(q)-1]
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch c {
		case '\\':
			if i+1 == len(body) {
				return "", fmt.Errorf("dangling escape in %q", q)
			}
			i++
			b.WriteByte(body[i])
		case '"':
			return "", fmt.Errorf("unescaped quote in %q", q)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}
