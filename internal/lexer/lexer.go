package lexer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jcorbin/stackc/internal/fileinput"
	"github.com/jcorbin/stackc/internal/runeio"
	"github.com/jcorbin/stackc/internal/token"
)

// Lexing errors, wrapped in an *Error that locates them.
var (
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrTrailingText       = errors.New("string literal must end at whitespace")
	ErrInvalidEscape      = runeio.ErrInvalidEscape
	ErrIntRange           = errors.New("integer literal out of range")
)

// Error locates a lexing error within its source.
type Error struct {
	Pos  token.Pos
	Text string
	Err  error
}

func (err *Error) Error() string {
	return fmt.Sprintf("%v: %v in %q", err.Pos, err.Err, err.Text)
}

func (err *Error) Unwrap() error { return err.Err }

// Lexer scans whitespace-delimited tokens out of a queue of input sources.
type Lexer struct {
	Input fileinput.Input

	buf   strings.Builder
	start token.Pos

	comment bool
	str     bool
	escaped bool
}

// New creates a Lexer reading each of srcs in turn; name a source by
// implementing Name() string, e.g. with runeio.Named.
func New(srcs ...io.Reader) *Lexer {
	var lx Lexer
	lx.Input.Queue = srcs
	return &lx
}

// Lex scans all tokens from srcs.
func Lex(srcs ...io.Reader) (toks []token.Token, err error) {
	lx := New(srcs...)
	for {
		tok, err := lx.Next()
		if err == io.EOF {
			return toks, nil
		} else if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
}

// Next scans the next token, returning io.EOF after the last one.
func (lx *Lexer) Next() (token.Token, error) {
	for {
		r, _, err := lx.Input.ReadRune()
		if err == io.EOF || (r == 0 && lx.str) {
			return lx.flushEOF()
		} else if err != nil {
			return token.Token{}, err
		}
		if lx.scan(r) {
			return lx.flush()
		}
	}
}

// scan consumes r, returning true when it completes a token.
func (lx *Lexer) scan(r rune) bool {
	switch {
	case lx.comment:
		lx.comment = r != '\n' && r != 0

	case lx.str:
		switch {
		case lx.escaped:
			lx.escaped = false
		case r == '\\':
			lx.escaped = true
		case r == '"':
			lx.str = false
		}
		lx.buf.WriteRune(r)

	case lx.buf.Len() == 0:
		if isSpace(r) {
			return false
		}
		lx.start = lx.pos()
		lx.str = r == '"'
		lx.buf.WriteRune(r)

	case lx.charPending() && (r == ' ' || r == '\t'):
		lx.buf.WriteRune(r)

	case isSpace(r):
		return true

	case r == '/' && lx.buf.Len() == 1 && lx.buf.String() == "/":
		lx.buf.Reset()
		lx.comment = true

	default:
		lx.buf.WriteRune(r)
	}
	return false
}

// charPending returns true if a char literal is still waiting on the one
// byte that it denotes, which may be a space.
func (lx *Lexer) charPending() bool {
	switch s := lx.buf.String(); s {
	case `'`, `'\`:
		return true
	}
	return false
}

func (lx *Lexer) pos() token.Pos {
	loc := lx.Input.Scan.Location
	return token.Pos{Name: loc.Name, Line: loc.Line, Col: loc.Col}
}

func (lx *Lexer) flushEOF() (token.Token, error) {
	lx.comment = false
	if lx.str {
		lx.str, lx.escaped = false, false
		text := lx.buf.String()
		lx.buf.Reset()
		return token.Token{}, &Error{lx.start, text, ErrUnterminatedString}
	}
	if lx.buf.Len() == 0 {
		return token.Token{}, io.EOF
	}
	return lx.flush()
}

func (lx *Lexer) flush() (token.Token, error) {
	text := lx.buf.String()
	lx.buf.Reset()
	tok, err := classify(text, lx.start)
	if err != nil {
		return token.Token{}, &Error{lx.start, text, err}
	}
	return tok, nil
}

func classify(text string, pos token.Pos) (token.Token, error) {
	switch {
	case text[0] == '"':
		if len(text) < 2 || text[len(text)-1] != '"' || !closedAtEnd(text) {
			return token.Token{}, ErrTrailingText
		}
		s, err := runeio.Unescape(text[1 : len(text)-1])
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.Str, Pos: pos, Text: text, Str: s}, nil

	case text[0] == '\'':
		b, err := runeio.UnquoteChar(text)
		if err == runeio.ErrNotChar {
			break
		} else if err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.Char, Pos: pos, Text: text, Char: b}, nil

	case isInteger(text):
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return token.Token{}, ErrIntRange
		}
		return token.Token{Kind: token.Int, Pos: pos, Text: text, Int: n}, nil
	}
	return token.Lookup(text, pos), nil
}

// closedAtEnd returns true if the first unescaped closing quote of a string
// literal is its final byte.
func closedAtEnd(text string) bool {
	for i := 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '"':
			return i == len(text)-1
		}
	}
	return false
}

func isInteger(text string) bool {
	if text[0] == '-' {
		text = text[1:]
	}
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		if c := text[i]; c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isSpace(r rune) bool {
	switch r {
	case 0, ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
