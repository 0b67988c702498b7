package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jcorbin/stackc/internal/lexer"
	"github.com/jcorbin/stackc/internal/queue"
	"github.com/jcorbin/stackc/internal/stack"
	"github.com/jcorbin/stackc/internal/token"
)

// VM executes a program by repeatedly pulling one token off the front of its
// instruction queue and dispatching on it. Control blocks and user words are
// realized by splicing token sequences back into that queue, not by any call
// and return mechanism.
type VM struct {
	Core

	// inputs are lexed in order, after any prelude, to fill the queue
	inputs  []io.Reader
	prelude bool

	// queue holds every pending token; nested block evaluation drains
	// independent queues over spans extracted from it.
	queue queue.Queue

	// The stack is a single homogeneous sequence of cells, each value being
	// a self-describing run of them.
	stack    stack.Stack
	memLimit uint

	defs definitions

	// depth counts the control blocks currently under evaluation; def is
	// only legal at depth 0.
	depth int
}

// Errors detected by the VM; the stack and queue packages declare the rest.
var (
	ErrUnexpectedToken   = errors.New("unexpected token")
	ErrUnterminatedBlock = errors.New("unterminated block")
	ErrAlreadyDefined    = errors.New("already defined")
	ErrNestedDefinition  = errors.New("nested definition")
	ErrInvalidWordName   = errors.New("invalid word name")
	ErrUndefinedWord     = errors.New("undefined word")
)

// TokenError locates a runtime error at the token being executed when it
// occurred.
type TokenError struct {
	Token token.Token
	Err   error
}

func (err TokenError) Error() string {
	return fmt.Sprintf("%v: %v at %q", err.Token.Pos, err.Err, err.Token.Text)
}

func (err TokenError) Unwrap() error { return err.Err }

func (vm *VM) haltAt(tok token.Token, err error) {
	if err != nil {
		vm.halt(TokenError{tok, err})
	}
}

func (vm *VM) run(ctx context.Context) error {
	vm.stack.SetLimit(vm.memLimit)
	vm.load()
	vm.exec(ctx, &vm.queue)
	vm.flush()
	return nil
}

// load lexes all inputs into the queue before anything runs, so that a
// lexing error prevents any output.
func (vm *VM) load() {
	srcs := vm.inputs
	if vm.prelude {
		srcs = append([]io.Reader{vm.preludeInput()}, srcs...)
	}
	lx := lexer.New(srcs...)
	for {
		tok, err := lx.Next()
		if err == io.EOF {
			break
		}
		vm.haltif(err)
		vm.queue.Enqueue(tok)
	}
	vm.logf("#", "loaded %v tokens", vm.queue.Len())
}

// exec drains q, stepping one token at a time; q may be the main queue, or
// an independent queue over a block span.
func (vm *VM) exec(ctx context.Context, q *queue.Queue) {
	for !q.IsEmpty() {
		vm.step(ctx, q)
	}
}

// step dispatches the token at the front of q. Dispatch may itself consume
// further tokens from q, such as a definition body or the spans of a block.
// Cancellation of ctx is checked before every step.
func (vm *VM) step(ctx context.Context, q *queue.Queue) {
	vm.haltif(ctx.Err())

	tok, err := q.Dequeue()
	vm.haltif(err)

	if vm.logfn != nil {
		vm.logf(">", "exec %v %v -- q:%v s:%v", tok.Pos, tok, q.Len(), &vm.stack)
	}

	switch tok.Kind {
	case token.Int:
		vm.haltAt(tok, vm.stack.PushInt(tok.Int))
	case token.Char:
		vm.haltAt(tok, vm.stack.PushChar(tok.Char))
	case token.Str:
		vm.haltAt(tok, vm.stack.PushStr(tok.Str))
	case token.Word:
		vm.expand(q, tok)
	default:
		if op := vmOpTable[tok.Op]; op != nil {
			op(vm, ctx, q, tok)
		} else {
			vm.haltAt(tok, ErrUnexpectedToken)
		}
	}
}

// nest marks the start of a nested block evaluation, returning a function to
// mark its end.
func (vm *VM) nest() func() {
	vm.depth++
	var unprefix func()
	if vm.logfn != nil {
		unprefix = vm.withLogPrefix("\t")
	}
	return func() {
		vm.depth--
		if unprefix != nil {
			unprefix()
		}
	}
}
