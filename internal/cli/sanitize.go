package cli

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxStatementSize bounds one REPL line.
const MaxStatementSize = 16 * 1024

var (
	ErrStatementTooLarge = errors.New("statement too large")
	ErrInvalidUTF8       = errors.New("statement is not valid UTF-8")
)

// sanitizeStatement rejects oversized or malformed lines and drops control
// characters such as the escape sequences of unhandled cursor keys. Tabs stay.
func sanitizeStatement(line string) (string, error) {
	if len(line) > MaxStatementSize {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrStatementTooLarge, len(line), MaxStatementSize)
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(line, unsafeControl) < 0 {
		return line, nil
	}

	var b strings.Builder
	b.Grow(len(line))
	skipCSI := false
	for _, r := range line {
		switch {
		case r == '\x1b':
			skipCSI = true
		case skipCSI:
			// ESC [ params final: drop through the final byte.
			if r != '[' && (r >= '@' && r <= '~') {
				skipCSI = false
			}
		case !unsafeControl(r):
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\t'
}
