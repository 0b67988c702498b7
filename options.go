package main

import (
	"io"
	"io/ioutil"
	"strconv"

	"github.com/jcorbin/stackc/internal/flushio"
	"github.com/jcorbin/stackc/internal/runeio"
)

// VMOption configures a VM when passed to New.
type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withOutput(ioutil.Discard),
)

// VMOptions combines any number of options into one, ignoring any nils.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	return res
}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type inputOption struct{ io.Reader }
type inputWriterOption struct{ io.WriterTo }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type memLimitOption uint
type preludeOption bool

func withInput(r io.Reader) inputOption              { return inputOption{r} }
func withInputWriter(w io.WriterTo) inputWriterOption { return inputWriterOption{w} }
func withOutput(w io.Writer) outputOption             { return outputOption{w} }
func withTee(w io.Writer) teeOption                   { return teeOption{w} }
func withMemLimit(limit uint) memLimitOption          { return memLimitOption(limit) }
func withPrelude(load bool) preludeOption             { return preludeOption(load) }

func (i inputOption) apply(vm *VM) {
	r := i.Reader
	if _, named := r.(interface{ Name() string }); !named {
		r = runeio.Named("input"+strconv.Itoa(len(vm.inputs)+1), r)
	}
	vm.inputs = append(vm.inputs, r)
}

// An input writer is read through a pipe, written by a goroutine that is
// stopped by closing the VM if the VM never reads it to the end.
func (i inputWriterOption) apply(vm *VM) {
	name := "input" + strconv.Itoa(len(vm.inputs)+1)
	if nom, ok := i.WriterTo.(interface{ Name() string }); ok {
		name = nom.Name()
	}
	vm.inputs = append(vm.inputs, runeio.Named(name, pipeWriterTo(vm, i.WriterTo)))
}

func pipeWriterTo(vm *VM, wto io.WriterTo) io.Reader {
	pr, pw := io.Pipe()
	go func() {
		_, err := wto.WriteTo(pw)
		pw.CloseWithError(err)
	}()
	vm.closers = append(vm.closers, pr)
	return pr
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (lim memLimitOption) apply(vm *VM) {
	vm.memLimit = uint(lim)
}

func (load preludeOption) apply(vm *VM) {
	vm.prelude = bool(load)
}
