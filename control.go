package main

import (
	"context"

	"github.com/jcorbin/stackc/internal/queue"
	"github.com/jcorbin/stackc/internal/token"
)

//// Control Flow

// Blocks are never compiled into jumps. A conditional evaluates its
// condition straight out of the queue that it was dequeued from, then either
// keeps executing from that queue or skips past the tokens it does not take.
// A loop extracts its condition and body spans once, and replays a fresh
// queue over each of them every iteration.

// Symbol   Function
//   if     if <cond> then <body> [elseif <cond> then <body>]... end
//
// ifThen is also entered for an elseif whose preceding conditions were all
// false, treating it as a fresh if.
func (vm *VM) ifThen(ctx context.Context, q *queue.Queue, opener token.Token) {
	defer vm.nest()()

	then := vm.evalUntil(ctx, q, opener, token.Then)
	if vm.popCond(then) {
		for {
			tok, err := q.PeekFront()
			if err != nil {
				vm.haltAt(opener, ErrUnterminatedBlock)
			}
			switch {
			case tok.Is(token.End):
				q.Dequeue()
				return
			case tok.Is(token.ElseIf):
				// a taken branch skips every following one, unevaluated
				vm.scanBlock(q, opener)
				return
			}
			vm.step(ctx, q)
		}
	}

	if _, last := vm.scanBlock(q, opener, token.ElseIf); last.Is(token.ElseIf) {
		vm.logf("#", "elseif %v", last.Pos)
		vm.ifThen(ctx, q, last)
	}
}

// Symbol   Function
//  while   while <cond> then <body> end
func (vm *VM) whileLoop(ctx context.Context, q *queue.Queue, opener token.Token) {
	cond, then := vm.scanBlock(q, opener, token.Then)
	if !then.Is(token.Then) {
		vm.haltAt(then, ErrUnexpectedToken)
	}
	body, _ := vm.scanBlock(q, opener)

	defer vm.nest()()
	for i := 0; ; i++ {
		vm.exec(ctx, cond.Queue())
		if !vm.popCond(then) {
			vm.logf("#", "while %v done after %v iterations", opener.Pos, i)
			return
		}
		vm.exec(ctx, body.Queue())
	}
}

// evalUntil executes tokens from q until the given closing op is at its
// front, then consumes and returns that token.
func (vm *VM) evalUntil(ctx context.Context, q *queue.Queue, opener token.Token, until token.Op) token.Token {
	for {
		tok, err := q.PeekFront()
		if err != nil {
			vm.haltAt(opener, ErrUnterminatedBlock)
		}
		if tok.Is(until) {
			q.Dequeue()
			return tok
		}
		vm.step(ctx, q)
	}
}

// popCond pops a condition, which must be an int, on behalf of tok.
func (vm *VM) popCond(tok token.Token) bool {
	b, err := vm.stack.PopBool()
	vm.haltAt(tok, err)
	return b
}

// scanBlock is a depth-aware scan that extracts tokens from q up to the end
// matching opener, or up to any of the given stop ops at the same depth,
// whichever comes first. It returns the extracted span and the token that
// closed it; the closing token is consumed, but not part of the span.
//
// Nested if and while blocks are skipped over whole, along with any elseif
// or then of their own. Since no block may embed a definition, meeting a def
// halts with ErrNestedDefinition.
func (vm *VM) scanBlock(q *queue.Queue, opener token.Token, stops ...token.Op) (span queue.Block, last token.Token) {
	depth := 0
	span, ok := q.ExtractUntil(func(tok token.Token) bool {
		switch {
		case tok.Is(token.Def):
			return true
		case tok.Opens():
			depth++
		case depth > 0:
			if tok.Is(token.End) {
				depth--
			}
		case tok.Is(token.End):
			return true
		default:
			for _, stop := range stops {
				if tok.Is(stop) {
					return true
				}
			}
		}
		return false
	})
	if !ok {
		vm.haltAt(opener, ErrUnterminatedBlock)
	}
	last = span[len(span)-1]
	if last.Is(token.Def) {
		vm.haltAt(last, ErrNestedDefinition)
	}
	return span[:len(span)-1], last
}
