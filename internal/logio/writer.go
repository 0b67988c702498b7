package logio

import (
	"bytes"
	"sync"
)

// Writer is an io.Writer that logs each line written to it through Logf,
// like the VM's output while under test. Lines are logged without their
// newline, after any Prefix.
type Writer struct {
	Logf   func(string, ...interface{})
	Prefix string

	mu   sync.Mutex
	part bytes.Buffer
}

// Write logs every line that p completes, keeping any trailing partial line
// until a later Write or Sync; it never fails. Writer is safe to use from
// multiple goroutines.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	n := len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			lw.part.Write(p)
			break
		}
		lw.part.Write(p[:i])
		lw.logPart()
		p = p[i+1:]
	}
	return n, nil
}

// Sync logs any partial line.
func (lw *Writer) Sync() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if lw.part.Len() > 0 {
		lw.logPart()
	}
	return nil
}

// Close calls Sync.
func (lw *Writer) Close() error { return lw.Sync() }

func (lw *Writer) logPart() {
	lw.Logf("%s%s", lw.Prefix, lw.part.Bytes())
	lw.part.Reset()
}
