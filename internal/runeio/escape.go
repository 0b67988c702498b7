package runeio

import (
	"errors"
	"strings"
)

// Escapes maps the character following a backslash to the byte it denotes.
var Escapes = map[byte]byte{
	'\\': '\\',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'"':  '"',
	'\'': '\'',
}

// ErrInvalidEscape indicates a backslash followed by a character that is
// not in Escapes, or a trailing lone backslash.
var ErrInvalidEscape = errors.New("invalid escape sequence")

// ErrNotChar indicates that a token does not have character literal shape.
var ErrNotChar = errors.New(`char literal must be 'X' or '\X'`)

// UnquoteChar parses a character literal token like 'a' or '\n' into the
// single byte it denotes.
func UnquoteChar(token string) (byte, error) {
	switch {
	case len(token) == 3 && token[0] == '\'' && token[2] == '\'':
		if token[1] == '\\' || token[1] >= 0x80 {
			return 0, ErrNotChar
		}
		return token[1], nil

	case len(token) == 4 && token[0] == '\'' && token[1] == '\\' && token[3] == '\'':
		if b, ok := Escapes[token[2]]; ok {
			return b, nil
		}
		return 0, ErrInvalidEscape

	default:
		return 0, ErrNotChar
	}
}

// Unescape decodes any escape sequences within a string literal body, the
// part between the quotes.
func Unescape(body string) (string, error) {
	i := strings.IndexByte(body, '\\')
	if i < 0 {
		return body, nil
	}
	var sb strings.Builder
	sb.Grow(len(body))
	sb.WriteString(body[:i])
	for ; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if i++; i >= len(body) {
			return "", ErrInvalidEscape
		}
		b, ok := Escapes[body[i]]
		if !ok {
			return "", ErrInvalidEscape
		}
		sb.WriteByte(b)
	}
	return sb.String(), nil
}
