package stack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jcorbin/stackc/internal/mem"
)

// Stack errors.
var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrDivisionByZero = errors.New("division by zero")
	ErrInvalidCast    = errors.New("invalid cast")
	ErrMalformedValue = errors.New("malformed stack value")
)

// Stack is a LIFO of tagged values, each encoded as a contiguous run of
// cells whose topmost cell is the value's Kind tag.
//
// The zero value is an empty stack ready for use.
type Stack struct {
	mem mem.Cells
	sp  uint
	buf []mem.Cell
}

// SetLimit bounds the number of cells that the stack may use; 0 means no
// limit. Exceeding it surfaces as a mem.LimitError.
func (st *Stack) SetLimit(cells uint) { st.mem.Limit = cells }

// Cells returns how many cells are in use.
func (st *Stack) Cells() uint { return st.sp }

// Push encodes v onto the top of the stack.
func (st *Stack) Push(v Value) error {
	st.buf = v.appendCells(st.buf[:0])
	return st.stor(st.sp, st.buf)
}

// PushInt pushes an Int value.
func (st *Stack) PushInt(n int64) error { return st.Push(IntValue(n)) }

// PushChar pushes a Char value.
func (st *Stack) PushChar(c byte) error { return st.Push(CharValue(c)) }

// PushStr pushes a Str value.
func (st *Stack) PushStr(s string) error { return st.Push(StrValue(s)) }

// PushBool pushes Int 1 if b is true, 0 otherwise.
func (st *Stack) PushBool(b bool) error {
	if b {
		return st.PushInt(1)
	}
	return st.PushInt(0)
}

// Pop removes and returns the top value.
func (st *Stack) Pop() (Value, error) {
	vs, base, err := st.top(1)
	if err != nil {
		return Value{}, err
	}
	st.truncate(base)
	return vs[0], nil
}

// PopBool pops an Int condition, which is true if it is non-zero.
func (st *Stack) PopBool() (bool, error) {
	vs, base, err := st.top(1)
	if err != nil {
		return false, err
	}
	if vs[0].Kind != Int {
		return false, fmt.Errorf("%w: condition must be int, not %v", ErrTypeMismatch, vs[0].Kind)
	}
	st.truncate(base)
	return vs[0].Int != 0, nil
}

// PeekKind returns the tag of the top value without removing it.
func (st *Stack) PeekKind() (Kind, error) {
	if st.sp == 0 {
		return 0, ErrStackUnderflow
	}
	tag, err := st.mem.Load(st.sp - 1)
	return Kind(tag), err
}

// Depth returns the number of values on the stack.
func (st *Stack) Depth() (n int, err error) {
	for top := st.sp; top > 0; n++ {
		w, err := st.width(top)
		if err != nil {
			return n, err
		}
		top -= w
	}
	return n, nil
}

// Values decodes every value on the stack, bottom first.
func (st *Stack) Values() ([]Value, error) {
	n, err := st.Depth()
	if err != nil {
		return nil, err
	}
	vs, _, err := st.top(n)
	return vs, err
}

func (st *Stack) String() string {
	vs, err := st.Values()
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v.String())
	}
	if err != nil {
		fmt.Fprintf(&sb, " !%v", err)
	}
	sb.WriteByte(']')
	return sb.String()
}

// width returns the width of the value whose tag cell lies just under top,
// reading its size cell too when it is a Str.
func (st *Stack) width(top uint) (uint, error) {
	if top == 0 {
		return 0, ErrStackUnderflow
	}
	tag, err := st.mem.Load(top - 1)
	if err != nil {
		return 0, err
	}
	var w uint
	switch Kind(tag) {
	case Int, Char:
		w = 2
	case Str:
		if top < 2 {
			return 0, ErrMalformedValue
		}
		size, err := st.mem.Load(top - 2)
		if err != nil {
			return 0, err
		}
		if size < 0 {
			return 0, ErrMalformedValue
		}
		w = uint(size) + 3
	default:
		return 0, ErrMalformedValue
	}
	if w > top {
		return 0, ErrMalformedValue
	}
	return w, nil
}

// span returns the cell address where the top n values begin, along with
// the width of the deepest of them.
func (st *Stack) span(n int) (base, deepest uint, err error) {
	base = st.sp
	for i := 0; i < n; i++ {
		w, err := st.width(base)
		if err != nil {
			return 0, 0, err
		}
		base -= w
		deepest = w
	}
	return base, deepest, nil
}

// top decodes the top n values, deepest first, without removing them;
// base is where the deepest one begins.
func (st *Stack) top(n int) (vs []Value, base uint, err error) {
	base, _, err = st.span(n)
	if err != nil {
		return nil, 0, err
	}
	cells, err := st.load(base, st.sp)
	if err != nil {
		return nil, 0, err
	}
	vs = make([]Value, n)
	for end, i := len(cells), n-1; i >= 0; i-- {
		w := 2
		if Kind(cells[end-1]) == Str {
			w = int(cells[end-2]) + 3
		}
		if vs[i], err = decode(cells[end-w : end]); err != nil {
			return nil, 0, err
		}
		end -= w
	}
	return vs, base, nil
}

// replace drops everything above base and pushes v in its place.
func (st *Stack) replace(base uint, v Value) error {
	st.truncate(base)
	return st.Push(v)
}

func (st *Stack) load(from, to uint) ([]mem.Cell, error) {
	n := int(to - from)
	if cap(st.buf) < n {
		st.buf = make([]mem.Cell, n)
	}
	st.buf = st.buf[:n]
	return st.buf, st.mem.LoadInto(from, st.buf)
}

func (st *Stack) stor(addr uint, cells []mem.Cell) error {
	if err := st.mem.Stor(addr, cells...); err != nil {
		return err
	}
	if end := addr + uint(len(cells)); end > st.sp {
		st.sp = end
	}
	return nil
}

// truncate releases every cell at or above sp, returning whole pages to
// the arena once they are no longer needed.
func (st *Stack) truncate(sp uint) {
	st.sp = sp
	if size := st.mem.Size(); size > sp && size-sp > st.mem.PageSize {
		st.mem.Truncate(sp)
	}
}
