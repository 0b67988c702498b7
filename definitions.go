package main

import (
	"context"
	"strings"

	"github.com/jcorbin/stackc/internal/queue"
	"github.com/jcorbin/stackc/internal/token"
)

// definitions maps user word names to their bodies. Names are kept in
// definition order for dumping. A name, once defined, is never redefined.
type definitions struct {
	names  []string
	blocks map[string]queue.Block
}

func (defs definitions) lookup(name string) (queue.Block, bool) {
	body, defined := defs.blocks[name]
	return body, defined
}

func (defs *definitions) define(name string, body queue.Block) bool {
	if _, defined := defs.blocks[name]; defined {
		return false
	}
	if defs.blocks == nil {
		defs.blocks = make(map[string]queue.Block)
	}
	defs.names = append(defs.names, name)
	defs.blocks[name] = body
	return true
}

//// Definitions

// Symbol   Function
//   def    def <name> <body> end
//
// The body is recorded, not executed. The name must be a word that is not
// yet defined, and cannot contain quote marks; the body runs to the matching
// end, and may not itself contain a def.
func (vm *VM) define(_ context.Context, q *queue.Queue, tok token.Token) {
	if vm.depth > 0 {
		vm.haltAt(tok, ErrNestedDefinition)
	}

	name, err := q.Dequeue()
	if err != nil {
		vm.haltAt(tok, ErrUnterminatedBlock)
	}
	switch {
	case strings.ContainsAny(name.Text, `"'`):
		vm.haltAt(name, ErrInvalidWordName)
	case name.Kind != token.Word:
		vm.haltAt(name, ErrAlreadyDefined)
	}
	if _, defined := vm.defs.lookup(name.Text); defined {
		vm.haltAt(name, ErrAlreadyDefined)
	}

	body, _ := vm.scanBlock(q, tok)
	vm.defs.define(name.Text, body)
	vm.logf("#", "define %v %v -> %v tokens", name.Pos, name.Text, len(body))
}

// expand splices the body of the user word named by tok into the front of
// q, to be executed next as if written in place of tok. The body is looked
// up only now, so words may refer to ones defined after them, or to
// themselves.
func (vm *VM) expand(q *queue.Queue, tok token.Token) {
	body, defined := vm.defs.lookup(tok.Text)
	if !defined {
		vm.haltAt(tok, ErrUndefinedWord)
	}
	q.SpliceFront(body)
}
