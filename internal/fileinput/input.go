package fileinput

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jcorbin/stackc/internal/runeio"
)

// Location names a rune position within an Input file.
// Line and Col are 1-based; Col is 0 before the first rune of a line.
type Location struct {
	Name string
	Line int
	Col  int
}

// Line combines a Location along with a bytes.Buffer for handling it.
type Line struct {
	Location
	bytes.Buffer
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Col) }
func (il Line) String() string      { return fmt.Sprintf("%v %q", il.Location, il.Buffer.String()) }

// Input implements sequential rune reading through a Queue of one or more
// input streams. Both the current and last scanned lines are tracked to
// facilitate user feedback.
type Input struct {
	rr    io.RuneReader
	Queue []io.Reader
	Last  Line
	Scan  Line
}

// ReadRune reads one rune from the current input stream, appending it into the
// current Scan line, and rolling Scan over to Last after line feed.
// After a non-newline rune, Scan.Location is the position of that rune.
// A 0 rune with nil error marks the boundary between two input streams.
func (in *Input) ReadRune() (rune, int, error) {
	if in.rr == nil && !in.nextIn() {
		return 0, 0, io.EOF
	}

	r, n, err := in.rr.ReadRune()
	if r == '\n' {
		in.nextLine()
	} else if n > 0 {
		in.Scan.WriteRune(r)
		in.Scan.Col++
	}

	if n > 0 {
		return r, n, nil
	}
	if err == io.EOF && in.nextIn() {
		err = nil
	}
	return 0, n, err
}

// Name returns the name of the stream currently being read.
func (in *Input) Name() string { return in.Scan.Name }

func (in *Input) nextLine() {
	in.Last.Reset()
	in.Last.Location = in.Scan.Location
	in.Last.Write(in.Scan.Bytes())
	in.Scan.Reset()
	in.Scan.Line++
	in.Scan.Col = 0
}

func (in *Input) nextIn() bool {
	if in.Scan.Len() > 0 {
		in.nextLine()
	}
	if in.rr != nil {
		if cl, ok := in.rr.(io.Closer); ok {
			cl.Close()
		}
		in.rr = nil
	}
	if len(in.Queue) > 0 {
		r := in.Queue[0]
		in.Queue = in.Queue[1:]
		in.rr = runeio.NewReader(r)
		in.Scan.Name = nameOf(r)
		in.Scan.Line = 1
		in.Scan.Col = 0
	}
	return in.rr != nil
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
