package stack

import (
	"fmt"
	"strconv"

	"github.com/jcorbin/stackc/internal/mem"
)

// Kind is the tag cell of an encoded value, identifying its type and thus
// its width.
type Kind mem.Cell

// Value kinds; the zero Kind is never a valid tag.
const (
	Int Kind = iota + 1
	Char
	Str
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Char:
		return "char"
	case Str:
		return "str"
	}
	return fmt.Sprintf("Kind(%d)", int64(k))
}

// numeric returns true for kinds that arithmetic and ordering accept.
func (k Kind) numeric() bool { return k == Int || k == Char }

// Value is a decoded stack value.
type Value struct {
	Kind Kind
	Int  int64
	Str  string
}

// IntValue constructs an Int value.
func IntValue(n int64) Value { return Value{Kind: Int, Int: n} }

// CharValue constructs a Char value.
func CharValue(c byte) Value { return Value{Kind: Char, Int: int64(c)} }

// StrValue constructs a Str value.
func StrValue(s string) Value { return Value{Kind: Str, Str: s} }

// Char returns the byte payload of a Char value.
func (v Value) Char() byte { return byte(v.Int) }

// Width returns how many cells v occupies when encoded.
func (v Value) Width() uint {
	if v.Kind == Str {
		return uint(len(v.Str)) + 3
	}
	return 2
}

func (v Value) String() string {
	switch v.Kind {
	case Int:
		return strconv.FormatInt(v.Int, 10)
	case Char:
		return strconv.QuoteRuneToASCII(rune(v.Char()))
	case Str:
		return strconv.Quote(v.Str)
	}
	return v.Kind.String()
}

// appendCells encodes v, deepest cell first, so that its tag is last.
// A Str's bytes are laid out last-to-first above a NUL cell, leaving its first
// byte nearest the size cell under the tag.
func (v Value) appendCells(buf []mem.Cell) []mem.Cell {
	switch v.Kind {
	case Str:
		buf = append(buf, 0)
		for i := len(v.Str) - 1; i >= 0; i-- {
			buf = append(buf, mem.Cell(v.Str[i]))
		}
		buf = append(buf, mem.Cell(len(v.Str)))
	case Char:
		buf = append(buf, mem.Cell(v.Char()))
	default:
		buf = append(buf, v.Int)
	}
	return append(buf, mem.Cell(v.Kind))
}

// decode reconstructs a value from exactly the cells that encode it.
func decode(cells []mem.Cell) (v Value, err error) {
	if len(cells) < 2 {
		return v, ErrMalformedValue
	}
	top := len(cells) - 1
	switch v.Kind = Kind(cells[top]); v.Kind {
	case Int:
		v.Int = cells[0]
	case Char:
		v.Int = int64(byte(cells[0]))
	case Str:
		n := int(cells[top-1])
		if n != len(cells)-3 || cells[0] != 0 {
			return Value{}, ErrMalformedValue
		}
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(cells[top-2-i])
		}
		v.Str = string(b)
	default:
		return Value{}, ErrMalformedValue
	}
	return v, nil
}
