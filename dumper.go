package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/jcorbin/stackc/internal/queue"
)

type vmDumper struct {
	vm  *VM
	out io.Writer

	// maxTokens limits how many pending tokens are dumped, 0 for all
	maxTokens int
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  depth: %v\n", dump.vm.depth)
	fmt.Fprintf(dump.out, "  cells: %v\n", dump.vm.stack.Cells())
	fmt.Fprintf(dump.out, "  stack: ")
	if err := dump.dumpStack(); err != nil {
		fmt.Fprintf(dump.out, "!%v\n", err)
	}
	dump.dumpDefs()
	dump.dumpBlock("queue", dump.vm.queue.Snapshot())
}

// dumpStack writes "<n> v1 v2 ... vn" bottom to top, followed by a newline.
func (dump vmDumper) dumpStack() error {
	vs, err := dump.vm.stack.Values()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.WriteByte('<')
	buf.WriteString(strconv.Itoa(len(vs)))
	buf.WriteByte('>')
	for _, v := range vs {
		buf.WriteByte(' ')
		buf.WriteString(v.String())
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(dump.out)
	return err
}

func (dump vmDumper) dumpDefs() {
	if len(dump.vm.defs.names) == 0 {
		return
	}
	fmt.Fprintf(dump.out, "# Definitions\n")
	for _, name := range dump.vm.defs.names {
		body, _ := dump.vm.defs.lookup(name)
		dump.dumpBlock("def "+name, body)
	}
}

func (dump vmDumper) dumpBlock(label string, b queue.Block) {
	var buf bytes.Buffer
	buf.WriteString("  ")
	buf.WriteString(label)
	buf.WriteByte(':')
	for i, tok := range b {
		if dump.maxTokens > 0 && i >= dump.maxTokens {
			fmt.Fprintf(&buf, " ...+%v", len(b)-i)
			break
		}
		buf.WriteByte(' ')
		buf.WriteString(tok.String())
	}
	buf.WriteByte('\n')
	buf.WriteTo(dump.out)
}
