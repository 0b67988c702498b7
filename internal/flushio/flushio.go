// Package flushio provides buffered output that is written through only when
// flushed, as the VM does when it halts.
package flushio

import (
	"bufio"
	"io"
	"io/ioutil"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher returns w if it is already a WriteFlusher. Writers that
// need no buffering, like ioutil.Discard or in-memory buffers, are given a
// Flush that does nothing; anything else is wrapped in a bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case WriteFlusher:
		return impl
	case memBuffer:
		return unbuffered{w}
	}
	if w == ioutil.Discard {
		return unbuffered{w}
	}
	return bufio.NewWriter(w)
}

// memBuffer matches in-memory buffers, such as bytes.Buffer and
// strings.Builder.
type memBuffer interface {
	io.Writer
	Len() int
	Grow(n int)
	Reset()
}

type unbuffered struct{ io.Writer }

func (unbuffered) Flush() error { return nil }

// WriteFlushers combines any number of WriteFlushers into one that writes
// to, and flushes, each of them in order. Nils are skipped, and combined
// WriteFlushers are flattened.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var all tee
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case tee:
			all = append(all, impl...)
		default:
			all = append(all, impl)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}

type tee []WriteFlusher

func (t tee) Write(p []byte) (int, error) {
	for _, wf := range t {
		if n, err := wf.Write(p); err != nil {
			return n, err
		} else if n < len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Flush flushes every writer, returning the first error.
func (t tee) Flush() (err error) {
	for _, wf := range t {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}
