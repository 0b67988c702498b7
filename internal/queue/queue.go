package queue

import (
	"errors"

	"github.com/jcorbin/stackc/internal/token"
)

// ErrEmptyQueue indicates a dequeue or peek from an empty Queue.
var ErrEmptyQueue = errors.New("empty instruction queue")

// Block is an immutable token sequence, like a definition body or a loop
// span. Blocks are shared by reference: a Queue never writes into a Block
// spliced into it, it only advances its own cursor over it.
type Block []token.Token

// Queue returns a fresh Queue that will replay b from its start.
func (b Block) Queue() *Queue {
	var q Queue
	q.SpliceFront(b)
	return &q
}

// Queue is an ordered sequence of pending tokens.
//
// It is kept as a stack of frames, each a cursor over a token slice; the
// last frame is the front of the queue. Splicing pushes a new cursor over a
// shared Block, so every splice behaves as an independent copy without
// copying any tokens. Only the back frame may be owned (appendable).
type Queue struct {
	frames []frame
	size   int
}

type frame struct {
	toks  []token.Token
	i     int
	owned bool
}

// Len returns the number of pending tokens.
func (q *Queue) Len() int { return q.size }

// IsEmpty returns true if no tokens are pending.
func (q *Queue) IsEmpty() bool { return q.size == 0 }

// Enqueue appends tok at the back of the queue.
func (q *Queue) Enqueue(tok token.Token) {
	if len(q.frames) == 0 || !q.frames[0].owned {
		q.frames = append(q.frames, frame{})
		copy(q.frames[1:], q.frames)
		q.frames[0] = frame{owned: true}
	}
	q.frames[0].toks = append(q.frames[0].toks, tok)
	q.size++
}

// Dequeue removes and returns the front token.
func (q *Queue) Dequeue() (token.Token, error) {
	if q.size == 0 {
		return token.Token{}, ErrEmptyQueue
	}
	top := &q.frames[len(q.frames)-1]
	tok := top.toks[top.i]
	top.i++
	q.size--
	if top.i >= len(top.toks) {
		q.frames[len(q.frames)-1] = frame{}
		q.frames = q.frames[:len(q.frames)-1]
	}
	return tok, nil
}

// PeekFront returns the front token without removing it.
func (q *Queue) PeekFront() (token.Token, error) {
	if q.size == 0 {
		return token.Token{}, ErrEmptyQueue
	}
	top := &q.frames[len(q.frames)-1]
	return top.toks[top.i], nil
}

// ExtractUntil dequeues tokens up to and including the first one matching
// pred, returning them as a new Block. If no token matches, the queue is
// left empty and ok is false.
func (q *Queue) ExtractUntil(pred func(tok token.Token) bool) (b Block, ok bool) {
	for q.size > 0 {
		tok, _ := q.Dequeue()
		b = append(b, tok)
		if pred(tok) {
			return b, true
		}
	}
	return b, false
}

// SpliceFront inserts b at the front of the queue, so that its tokens are
// dequeued next, in order, before any already pending.
func (q *Queue) SpliceFront(b Block) {
	if len(b) == 0 {
		return
	}
	q.frames = append(q.frames, frame{toks: b})
	q.size += len(b)
}

// Snapshot returns an independent copy of all pending tokens, front first.
func (q *Queue) Snapshot() Block {
	b := make(Block, 0, q.size)
	for i := len(q.frames) - 1; i >= 0; i-- {
		f := q.frames[i]
		b = append(b, f.toks[f.i:]...)
	}
	return b
}

// Depth returns the number of splice frames, for tracing.
func (q *Queue) Depth() int { return len(q.frames) }
