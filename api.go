package main

import (
	"context"
	"errors"
	"io"

	"github.com/jcorbin/stackc/internal/panicerr"
)

// New creates a VM configured by the given options; by default it has no
// input and discards all output.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run lexes all of the VM's inputs, then executes them until its
// instruction queue is empty, the first error, or ctx is done.
//
// Any error is returned as it was raised, not wrapped by the halt: a
// runtime failure is a TokenError, a lexing failure a *lexer.Error.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		return vm.run(ctx)
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return err
}

// WithInput adds a source to be lexed and run after any prior ones; name it
// by implementing Name() string, e.g. with an *os.File.
func WithInput(r io.Reader) VMOption { return withInput(r) }

// WithInputWriter adds a source that writes its text on demand.
func WithInputWriter(w io.WriterTo) VMOption { return withInputWriter(w) }

// WithOutput sets where output words write.
func WithOutput(w io.Writer) VMOption { return withOutput(w) }

// WithTee copies all output into w as well.
func WithTee(w io.Writer) VMOption { return withTee(w) }

// WithMemLimit bounds the stack to the given number of cells.
func WithMemLimit(limit uint) VMOption { return withMemLimit(limit) }

// WithPrelude loads the prelude word library before any input.
func WithPrelude() VMOption { return withPrelude(true) }

// WithLogf enables trace logging of every executed token.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
