package main

import (
	"bytes"
	"io"

	"github.com/jcorbin/stackc/internal/runeio"
)

//// Prelude

// The prelude is a small library of words written in the language itself,
// built only out of builtins and each other, and loaded ahead of any input
// when enabled.

var prelude = preludeSource{}

type preludeSource struct{}

func (preludeSource) Name() string { return "prelude.stc" }

func (vm *VM) preludeInput() io.Reader {
	return runeio.Named(prelude.Name(), pipeWriterTo(vm, prelude))
}

func (preludeSource) WriteTo(w io.Writer) (n int64, err error) {
	flush := func(wto io.WriterTo) {
		if err != nil {
			return
		}
		var m int64
		m, err = wto.WriteTo(w)
		n += m
	}

	var buf bytes.Buffer
	line := func(parts ...string) {
		if err == nil {
			for _, s := range parts {
				buf.WriteString(s)
			}
			buf.WriteByte('\n')
			flush(&buf)
		}
	}

	// First some more stack shuffling, all of which work on values of any
	// type and width since they only use builtin shuffles.
	line(`def nip swap drop end`)   // a b -- b
	line(`def tuck swap over end`)  // a b -- b a b
	line(`def 2dup over over end`)  // a b -- a b a b
	line(`def 2drop drop drop end`) // a b --

	// Arithmetic helpers; the negation of a char is a char, modulo 256.
	line(`def neg 0 swap - end`)
	line(`def abs`,
		` if dup 0 < then neg end`,
		` end`)
	line(`def not 0 = end`)

	// max and min leave the greater or lesser of two values, comparing a
	// copy of both so that the loser can be dropped.
	line(`def max`,
		` if 2dup < then swap end`,
		` drop`,
		` end`)
	line(`def min`,
		` if 2dup > then swap end`,
		` drop`,
		` end`)

	line(`def space ' ' emit end`)

	return n, err
}
