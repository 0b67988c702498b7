package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/stackc/internal/logio"
	"github.com/jcorbin/stackc/internal/runeio"
	"github.com/jcorbin/stackc/internal/stack"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		t.Run(vmt.name, vmt.run)
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type vmTestCase struct {
	name    string
	opts    []interface{}
	expect  []func(t *testing.T, vm *VM)
	timeout time.Duration
	wantErr error
	wantPos string

	exclusive   bool
	nextInputID int
}

func (vmt vmTestCase) apply(wraps ...func(vmTestCase) vmTestCase) vmTestCase {
	for _, wrap := range wraps {
		vmt = wrap(vmt)
	}
	return vmt
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	for _, opt := range opts {
		vmt.opts = append(vmt.opts, opt)
	}
	return vmt
}

func (vmt vmTestCase) withStack(values ...interface{}) vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		return optFunc(func(vm *VM) {
			for _, v := range stackValues(t, values...) {
				if err := vm.stack.Push(v); err != nil {
					t.Errorf("unable to push %v: %v", v, err)
				}
			}
		})
	})
	return vmt
}

func (vmt vmTestCase) withPrelude() vmTestCase {
	vmt.opts = append(vmt.opts, WithPrelude())
	return vmt
}

func (vmt vmTestCase) withMemLimit(limit uint) vmTestCase {
	vmt.opts = append(vmt.opts, WithMemLimit(limit))
	return vmt
}

func (vmt vmTestCase) withInput(input string) vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		name := "input"
		if id := vmt.nextInputID; id > 0 {
			name += "_" + strconv.Itoa(id+1)
		}
		vmt.nextInputID++
		return WithInput(runeio.Named(name, strings.NewReader(input)))
	})
	return vmt
}

func (vmt vmTestCase) withNamedInput(name string, input string) vmTestCase {
	vmt.opts = append(vmt.opts, WithInput(runeio.Named(name, strings.NewReader(input))))
	return vmt
}

func (vmt vmTestCase) withInputWriter(w io.WriterTo) vmTestCase {
	vmt.opts = append(vmt.opts, WithInputWriter(w))
	return vmt
}

func (vmt vmTestCase) withTimeout(timeout time.Duration) vmTestCase {
	vmt.timeout = timeout
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

// expectErrorAt expects err to be raised at the given "line:col" position.
func (vmt vmTestCase) expectErrorAt(err error, pos string) vmTestCase {
	vmt.wantErr = err
	vmt.wantPos = pos
	return vmt
}

func (vmt vmTestCase) expectStack(values ...interface{}) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		want := stackValues(t, values...)
		got, err := vm.stack.Values()
		assert.NoError(t, err, "unexpected malformed stack")
		assert.Equal(t, want, got, "expected stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectCells(cells uint) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, cells, vm.stack.Cells(), "expected stack cells")
	})
	return vmt
}

func (vmt vmTestCase) expectDefined(names ...string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if names == nil {
			names = []string{}
		}
		defined := append([]string{}, vm.defs.names...)
		assert.Equal(t, names, defined, "expected defined words")
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		out.Reset()
		return WithOutput(&out)
	})
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

func (vmt vmTestCase) expectDump(dump string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		var out strings.Builder
		vmDumper{
			vm:  vm,
			out: &out,
		}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return vmt
}

func (vmt vmTestCase) withTestDump() vmTestCase {
	vmt.expect = append(vmt.expect, vmt.dumpToTest)
	return vmt
}

func (vmt vmTestCase) withTestOutput() vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		return WithTee(&logio.Writer{Logf: t.Logf, Prefix: "out: "})
	})
	return vmt
}

func (vmt vmTestCase) withTestHexOutput() vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		lw := &logio.Writer{Logf: t.Logf, Prefix: "out: "}
		enc := hex.Dumper(lw)
		w := writeCloser{enc, closerChain{enc, lw}}
		return optFunc(func(vm *VM) {
			WithTee(w).apply(vm)
			vm.closers = append(vm.closers, w)
		})
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Now().Sub(then))
	}(time.Now())

	if testFails(func(t *testing.T) {
		vmt.runVMTest(context.Background(), t, vmt.buildVM(t))
	}) {
		vm := vmt.buildVM(t)
		WithLogf(t.Logf).apply(vm)
		vmt.runVMTest(context.Background(), t, vm)
	}
}

func (vmt vmTestCase) runVMTest(ctx context.Context, t *testing.T, vm *VM) {
	const defaultTimeout = time.Second
	timeout := vmt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if t.Failed() {
			vmt.dumpToTest(t, vm)
		}
	}()

	if err := vmt.runVM(ctx, vm); vmt.wantErr != nil {
		assert.True(t, errors.Is(err, vmt.wantErr), "expected error: %v\ngot: %+v", vmt.wantErr, err)
		if vmt.wantPos != "" {
			var tokErr TokenError
			if assert.True(t, errors.As(err, &tokErr), "expected a TokenError, got: %+v", err) {
				pos := tokErr.Token.Pos
				assert.Equal(t, vmt.wantPos, fmt.Sprintf("%v:%v", pos.Line, pos.Col), "expected error position")
			}
		}
	} else {
		assert.NoError(t, err, "unexpected VM run error")
	}

	if !t.Failed() {
		for _, expect := range vmt.expect {
			expect(t, vm)
		}
	}
}

func (vmt vmTestCase) runVM(ctx context.Context, vm *VM) (rerr error) {
	defer func() {
		if err := vm.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("vm.Close failed: %w", err)
		}
	}()
	return vm.Run(ctx)
}

func (vmt vmTestCase) buildVM(t *testing.T) *VM {
	const defaultMemLimit = 64 * 1024

	var opt VMOption = withMemLimit(defaultMemLimit)
	for _, o := range vmt.opts {
		switch impl := o.(type) {
		case func(vmt *vmTestCase, t *testing.T) VMOption:
			opt = VMOptions(opt, impl(&vmt, t))
		case VMOption:
			opt = VMOptions(opt, impl)
		default:
			t.Logf("unsupported vmTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(opt)
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw, maxTokens: 32}.dump()
}

//// utilities

// stackValues converts Go values into stack values: ints are ints, runes
// are chars, and strings are strs.
func stackValues(t *testing.T, values ...interface{}) []stack.Value {
	vs := make([]stack.Value, 0, len(values))
	for _, value := range values {
		switch v := value.(type) {
		case int:
			vs = append(vs, stack.IntValue(int64(v)))
		case int64:
			vs = append(vs, stack.IntValue(v))
		case rune:
			vs = append(vs, stack.CharValue(byte(v)))
		case byte:
			vs = append(vs, stack.CharValue(v))
		case string:
			vs = append(vs, stack.StrValue(v))
		case stack.Value:
			vs = append(vs, v)
		default:
			t.Errorf("unsupported stack value type %T", value)
		}
	}
	return vs
}

func testFails(fn func(t *testing.T)) bool {
	var fakeT testing.T
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(&fakeT)
	}()
	<-done
	return fakeT.Failed()
}

type writeCloser struct {
	io.Writer
	io.Closer
}

type closerChain []io.Closer

func (cc closerChain) Close() (rerr error) {
	for _, cl := range cc {
		if cerr := cl.Close(); rerr == nil {
			rerr = cerr
		}
	}
	return rerr
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
