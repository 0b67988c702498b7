// gen_vm_expects generates curried forms of the vmTestCase builder methods,
// so that cases may be assembled from reusable parts:
//
//	vmTest("name").apply(withVMInput(src), expectVMOutput(out))
//
// Its output is piped through goimports, which also supplies any imports that
// the copied parameter types need.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout

	timeout = flag.Duration("timeout", 5*time.Second, "time limit for generation and formatting")
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		name := args[0]
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("failed to open %v: %v", name, err)
		}
		args = args[1:]
		in = f
	}

	if len(args) > 0 {
		name := args[0]
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %v: %v", name, err)
		}
		args = args[1:]
		out = f
	}
}

func main() {
	ctx := context.Background()
	parseFlags()

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	ready := make(chan struct{})

	eg.Go(func() error {
		fmtCmd := exec.CommandContext(ctx, "goimports")
		fmtPipe, err := fmtCmd.StdinPipe()
		if err != nil {
			return err
		}

		defer out.Close()
		fmtCmd.Stdout = out
		fmtCmd.Stderr = os.Stderr

		out = fmtPipe

		close(ready)
		if err := fmtCmd.Run(); err != nil {
			return fmt.Errorf("goimports run failed: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ready:
		}

		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()

		return run(ctx)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

// builderMethod matches the vmTestCase builder methods, which return an
// updated copy of their receiver; methods without parameters are matched too.
var builderMethod = regexp.MustCompile(`^func \(vmt vmTestCase\) (expect|with)(\w+)\((.*?)\) vmTestCase \{`)

func run(ctx context.Context) error {
	var buf bytes.Buffer
	buf.Grow(1024)
	buf.WriteString("package main\n\n")

	buf.WriteString("// @generated from ")
	buf.WriteString(in.Name())
	buf.WriteString("\n\n")

	if args := flag.Args(); len(args) >= 2 {
		buf.WriteString("//go:generate go run scripts/gen_vm_expects.go --")
		for _, arg := range args {
			buf.WriteByte(' ')
			buf.WriteString(arg)
		}
		buf.WriteString("\n\n")
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if match := builderMethod.FindSubmatch(sc.Bytes()); len(match) > 0 {
			writeCurried(&buf, string(match[1]), string(match[2]), match[3])
		}
		if buf.Len() > 0 {
			if _, err := buf.WriteTo(out); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}

// writeCurried writes a function named like expectVMFoo, taking the same
// parameters as the builder method expectFoo, and returning a function that
// applies that method to a vmTestCase.
func writeCurried(w io.Writer, base, what string, params []byte) {
	var call bytes.Buffer
	if params = bytes.TrimSpace(params); len(params) > 0 {
		for i, param := range bytes.Split(params, []byte(",")) {
			if i > 0 {
				call.WriteString(", ")
			}
			fields := bytes.Fields(param)
			call.Write(fields[0])
			if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
				call.WriteString("...")
			}
		}
	}
	fmt.Fprintf(w, "func %sVM%s(%s) func(vmTestCase) vmTestCase {\n", base, what, params)
	fmt.Fprintf(w, "\treturn func(vmt vmTestCase) vmTestCase {\n")
	fmt.Fprintf(w, "\t\treturn vmt.%s%s(%s)\n", base, what, call.Bytes())
	fmt.Fprintf(w, "\t}\n")
	fmt.Fprintf(w, "}\n\n")
}
