package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jcorbin/stackc/internal/logio"
	"github.com/jcorbin/stackc/internal/runeio"
)

// SourceExt is the file extension that program paths must carry.
const SourceExt = ".stc"

var errUsage = errors.New("usage: stackc [flags] <path" + SourceExt + "> | stackc [flags] -s <script>")

func main() {
	ctx := context.Background()

	var (
		timeout  time.Duration
		trace    bool
		memLimit uint
		prelude  bool
		script   string
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.UintVar(&memLimit, "mem-limit", 0, "limit the stack to this many cells")
	flag.BoolVar(&prelude, "prelude", false, "load the prelude word library first")
	flag.StringVar(&script, "s", "", "run the given script text instead of a file")
	flag.Parse()

	var log logio.Logger
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	src, err := openSource(script, flag.Args())
	if err != nil {
		log.ErrorCodef(logio.ExitStartup, "%v", err)
		return
	}
	if cl, ok := src.(io.Closer); ok {
		defer cl.Close()
	}

	var opts = []VMOption{
		WithInput(src),
		WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	if memLimit != 0 {
		opts = append(opts, WithMemLimit(memLimit))
	}
	if prelude {
		opts = append(opts, WithPrelude())
	}
	vm := New(opts...)
	defer func() { log.ErrorIf(vm.Close()) }()

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := vm.Run(ctx); err != nil {
		log.Errorf("%+v", err)
	}
}

// openSource returns the program source named by the command line: either
// an inline script, or a single path ending in SourceExt.
func openSource(script string, args []string) (io.Reader, error) {
	if script != "" {
		if len(args) > 0 {
			return nil, errUsage
		}
		return runeio.Named("-s", strings.NewReader(script)), nil
	}
	if len(args) != 1 {
		return nil, errUsage
	}
	path := args[0]
	if filepath.Ext(path) != SourceExt {
		return nil, fmt.Errorf("%v: source file must have a %v extension", path, SourceExt)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
