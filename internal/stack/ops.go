package stack

import (
	"fmt"
	"io"
	"strconv"
)

// Dup pushes a copy of the top value.
func (st *Stack) Dup() error { return st.copyUp(1) }

// Over pushes a copy of the second value from the top.
func (st *Stack) Over() error { return st.copyUp(2) }

// Drop discards the top value.
func (st *Stack) Drop() error {
	base, _, err := st.span(1)
	if err == nil {
		st.truncate(base)
	}
	return err
}

// Swap exchanges the top two values.
func (st *Stack) Swap() error { return st.roll(2) }

// Rot moves the third value from the top up to the top: a b c -> b c a.
func (st *Stack) Rot() error { return st.roll(3) }

// copyUp pushes a copy of the n-th value from the top.
func (st *Stack) copyUp(n int) error {
	base, w, err := st.span(n)
	if err != nil {
		return err
	}
	cells, err := st.load(base, base+w)
	if err != nil {
		return err
	}
	return st.stor(st.sp, cells)
}

// roll moves the n-th value from the top up to the top, shifting the spans
// above it down by its width.
func (st *Stack) roll(n int) error {
	base, w, err := st.span(n)
	if err != nil {
		return err
	}
	cells, err := st.load(base, st.sp)
	if err != nil {
		return err
	}
	rolled := make([]int64, 0, len(cells))
	rolled = append(rolled, cells[w:]...)
	rolled = append(rolled, cells[:w]...)
	return st.stor(base, rolled)
}

// Add pops b and a, pushing a + b. Either may be a Char, but not both; the
// sum is an Int only if both operands are.
func (st *Stack) Add() error {
	return st.arith("+", func(a, b Value) (Value, error) {
		if a.Kind == Char && b.Kind == Char {
			return Value{}, mismatch(a, "+", b)
		}
		return numeric(a, b, a.Int+b.Int), nil
	})
}

// Sub pops b and a, pushing a - b, typed as Add types its result except
// that two Char operands are allowed.
func (st *Stack) Sub() error {
	return st.arith("-", func(a, b Value) (Value, error) {
		return numeric(a, b, a.Int-b.Int), nil
	})
}

// Mul pops two Ints, pushing their product.
func (st *Stack) Mul() error {
	return st.intArith("*", func(a, b int64) (int64, error) { return a * b, nil })
}

// Div pops two Ints, pushing their truncated quotient.
func (st *Stack) Div() error {
	return st.intArith("/", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	})
}

// Rem pops two Ints, pushing the remainder of their truncated division.
func (st *Stack) Rem() error {
	return st.intArith("%", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a % b, nil
	})
}

// Equal pops two values, pushing 1 if they are equal. Strs compare by
// length and content; any other pairing must be numeric.
func (st *Stack) Equal() error { return st.equality("=", true) }

// NotEqual is the negation of Equal.
func (st *Stack) NotEqual() error { return st.equality("!=", false) }

// Less pops b and a, pushing 1 if a < b.
func (st *Stack) Less() error {
	return st.compare("<", func(a, b int64) bool { return a < b })
}

// Greater pops b and a, pushing 1 if a > b.
func (st *Stack) Greater() error {
	return st.compare(">", func(a, b int64) bool { return a > b })
}

// LessEqual pops b and a, pushing 1 if a <= b.
func (st *Stack) LessEqual() error {
	return st.compare("<=", func(a, b int64) bool { return a <= b })
}

// GreaterEqual pops b and a, pushing 1 if a >= b.
func (st *Stack) GreaterEqual() error {
	return st.compare(">=", func(a, b int64) bool { return a >= b })
}

func (st *Stack) arith(op string, f func(a, b Value) (Value, error)) error {
	vs, base, err := st.top(2)
	if err != nil {
		return err
	}
	a, b := vs[0], vs[1]
	if !a.Kind.numeric() || !b.Kind.numeric() {
		return mismatch(a, op, b)
	}
	r, err := f(a, b)
	if err != nil {
		return err
	}
	return st.replace(base, r)
}

func (st *Stack) intArith(op string, f func(a, b int64) (int64, error)) error {
	return st.arith(op, func(a, b Value) (Value, error) {
		if a.Kind != Int || b.Kind != Int {
			return Value{}, mismatch(a, op, b)
		}
		n, err := f(a.Int, b.Int)
		return IntValue(n), err
	})
}

func (st *Stack) compare(op string, f func(a, b int64) bool) error {
	return st.arith(op, func(a, b Value) (Value, error) {
		return boolValue(f(a.Int, b.Int)), nil
	})
}

func (st *Stack) equality(op string, want bool) error {
	vs, base, err := st.top(2)
	if err != nil {
		return err
	}
	var eq bool
	switch a, b := vs[0], vs[1]; {
	case a.Kind == Str && b.Kind == Str:
		eq = a.Str == b.Str
	case a.Kind.numeric() && b.Kind.numeric():
		eq = a.Int == b.Int
	default:
		return mismatch(a, op, b)
	}
	return st.replace(base, boolValue(eq == want))
}

func numeric(a, b Value, n int64) Value {
	if a.Kind == Int && b.Kind == Int {
		return IntValue(n)
	}
	return CharValue(byte(n))
}

func boolValue(b bool) Value {
	if b {
		return IntValue(1)
	}
	return IntValue(0)
}

func mismatch(a Value, op string, b Value) error {
	return fmt.Errorf("%w: %v %v %v", ErrTypeMismatch, a.Kind, op, b.Kind)
}

// ToInt retags a Char on top of the stack as an Int.
func (st *Stack) ToInt() error { return st.retag(Char, Int) }

// ToChar retags an Int on top of the stack as a Char.
func (st *Stack) ToChar() error { return st.retag(Int, Char) }

func (st *Stack) retag(from, to Kind) error {
	k, err := st.PeekKind()
	if err != nil {
		return err
	}
	if k != from {
		return fmt.Errorf("%w: %v to %v", ErrInvalidCast, k, to)
	}
	return st.mem.Stor(st.sp-1, int64(to))
}

// Print pops the top value and writes it to w: an Int in decimal, a Char as
// its byte, a Str as its bytes.
func (st *Stack) Print(w io.Writer) error {
	v, err := st.Pop()
	if err != nil {
		return err
	}
	switch v.Kind {
	case Int:
		_, err = io.WriteString(w, strconv.FormatInt(v.Int, 10))
	case Char:
		_, err = w.Write([]byte{v.Char()})
	default:
		_, err = io.WriteString(w, v.Str)
	}
	return err
}

// Emit pops an Int or Char and writes it to w as a single byte.
func (st *Stack) Emit(w io.Writer) error {
	vs, base, err := st.top(1)
	if err != nil {
		return err
	}
	if v := vs[0]; !v.Kind.numeric() {
		return fmt.Errorf("%w: cannot emit %v", ErrTypeMismatch, v.Kind)
	}
	st.truncate(base)
	_, err = w.Write([]byte{byte(vs[0].Int)})
	return err
}

// PrintDepth writes the number of values on the stack to w.
func (st *Stack) PrintDepth(w io.Writer) error {
	n, err := st.Depth()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, strconv.Itoa(n))
	return err
}
