package main

import (
	"context"

	"github.com/jcorbin/stackc/internal/queue"
	"github.com/jcorbin/stackc/internal/stack"
	"github.com/jcorbin/stackc/internal/token"
)

//// Builtins

// Every builtin word is dispatched through vmOpTable by its token.Op. Most
// builtins only touch the stack; control words also consume tokens from the
// queue that they were dequeued from.
type vmOp func(vm *VM, ctx context.Context, q *queue.Queue, tok token.Token)

var vmOpTable [token.NumOps]vmOp

func init() {
	vmOpTable = [token.NumOps]vmOp{
		token.Add: stackOp((*stack.Stack).Add),
		token.Sub: stackOp((*stack.Stack).Sub),
		token.Mul: stackOp((*stack.Stack).Mul),
		token.Div: stackOp((*stack.Stack).Div),
		token.Rem: stackOp((*stack.Stack).Rem),
		token.Eq:  stackOp((*stack.Stack).Equal),
		token.Ne:  stackOp((*stack.Stack).NotEqual),
		token.Ge:  stackOp((*stack.Stack).GreaterEqual),
		token.Le:  stackOp((*stack.Stack).LessEqual),
		token.Gt:  stackOp((*stack.Stack).Greater),
		token.Lt:  stackOp((*stack.Stack).Less),

		token.Dup:  stackOp((*stack.Stack).Dup),
		token.Drop: stackOp((*stack.Stack).Drop),
		token.Swap: stackOp((*stack.Stack).Swap),
		token.Over: stackOp((*stack.Stack).Over),
		token.Rot:  stackOp((*stack.Stack).Rot),

		token.Print: (*VM).print,
		token.Depth: (*VM).printDepth,
		token.Dump:  (*VM).dumpStack,
		token.Emit:  (*VM).emit,
		token.CR:    (*VM).cr,

		token.If:     (*VM).ifThen,
		token.ElseIf: (*VM).unexpected,
		token.While:  (*VM).whileLoop,
		token.Then:   (*VM).unexpected,
		token.Def:    (*VM).define,
		token.End:    (*VM).unexpected,

		token.ToInt:  stackOp((*stack.Stack).ToInt),
		token.ToChar: stackOp((*stack.Stack).ToChar),
	}
}

// stackOp adapts a stack method into a builtin that halts at its token on
// failure.
func stackOp(f func(st *stack.Stack) error) vmOp {
	return func(vm *VM, _ context.Context, _ *queue.Queue, tok token.Token) {
		vm.haltAt(tok, f(&vm.stack))
	}
}

//// Output Operations

// Output goes through a buffered writer; it is flushed when the VM halts,
// whether normally or not, so that every result printed before an error is
// still seen.

// Symbol   Function
//    .     pop the top value and print it: an int in decimal, a char as its
//          byte, a string as its bytes
func (vm *VM) print(_ context.Context, _ *queue.Queue, tok token.Token) {
	vm.haltAt(tok, vm.stack.Print(vm.out))
}

// Symbol   Function
//   .s     print how many values are on the stack
func (vm *VM) printDepth(_ context.Context, _ *queue.Queue, tok token.Token) {
	vm.haltAt(tok, vm.stack.PrintDepth(vm.out))
}

// Symbol   Function
// .stack   print every value on the stack, bottom first, without popping
func (vm *VM) dumpStack(_ context.Context, _ *queue.Queue, tok token.Token) {
	vm.haltAt(tok, vmDumper{vm: vm, out: vm.out}.dumpStack())
}

// Symbol   Function
//  emit    pop an int or char and write it as a single byte
func (vm *VM) emit(_ context.Context, _ *queue.Queue, tok token.Token) {
	vm.haltAt(tok, vm.stack.Emit(vm.out))
}

// Symbol   Function
//   cr     write a newline
func (vm *VM) cr(context.Context, *queue.Queue, token.Token) {
	vm.write([]byte{'\n'})
}

// Continuation and closing words are only ever consumed by the block that
// they belong to; dispatching one means that it has no opener.
func (vm *VM) unexpected(_ context.Context, _ *queue.Queue, tok token.Token) {
	vm.haltAt(tok, ErrUnexpectedToken)
}
