package flushio_test

import (
	"bufio"
	"bytes"
	"errors"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/stackc/internal/flushio"
)

type recorder struct {
	writes []string
	err    error
}

func (rec *recorder) Write(p []byte) (int, error) {
	if rec.err != nil {
		return 0, rec.err
	}
	rec.writes = append(rec.writes, string(p))
	return len(p), nil
}

func TestNewWriteFlusher(t *testing.T) {
	t.Run("buffers", func(t *testing.T) {
		var sb strings.Builder
		wf := flushio.NewWriteFlusher(&sb)
		wf.Write([]byte("hi"))
		assert.Equal(t, "hi", sb.String(), "expected in-memory writes to go straight through")
		assert.NoError(t, wf.Flush())
	})

	t.Run("discard", func(t *testing.T) {
		wf := flushio.NewWriteFlusher(ioutil.Discard)
		n, err := wf.Write([]byte("gone"))
		assert.Equal(t, 4, n)
		assert.NoError(t, err)
		assert.NoError(t, wf.Flush())
	})

	t.Run("already flushable", func(t *testing.T) {
		bw := bufio.NewWriter(&recorder{})
		assert.Equal(t, flushio.WriteFlusher(bw), flushio.NewWriteFlusher(bw))
	})

	t.Run("buffered until flushed", func(t *testing.T) {
		var rec recorder
		wf := flushio.NewWriteFlusher(&rec)
		wf.Write([]byte("a"))
		wf.Write([]byte("b"))
		assert.Empty(t, rec.writes)
		require.NoError(t, wf.Flush())
		assert.Equal(t, []string{"ab"}, rec.writes)
	})
}

func TestWriteFlushers(t *testing.T) {
	assert.Nil(t, flushio.WriteFlushers())
	assert.Nil(t, flushio.WriteFlushers(nil, nil))

	var one bytes.Buffer
	oneWF := flushio.NewWriteFlusher(&one)
	assert.Equal(t, oneWF, flushio.WriteFlushers(nil, oneWF))

	var a, b, c bytes.Buffer
	wf := flushio.WriteFlushers(
		flushio.WriteFlushers(flushio.NewWriteFlusher(&a), flushio.NewWriteFlusher(&b)),
		flushio.NewWriteFlusher(&c),
	)
	n, err := wf.Write([]byte("hello"))
	assert.Equal(t, 5, n)
	assert.NoError(t, err)
	assert.NoError(t, wf.Flush())
	assert.Equal(t, "hello", a.String())
	assert.Equal(t, "hello", b.String())
	assert.Equal(t, "hello", c.String())

	t.Run("write error", func(t *testing.T) {
		boom := errors.New("boom")
		var after bytes.Buffer
		wf := flushio.WriteFlushers(
			flushio.NewWriteFlusher(&bytes.Buffer{}),
			bufio.NewWriterSize(&recorder{err: boom}, 16),
			flushio.NewWriteFlusher(&after),
		)
		_, err := wf.Write([]byte("ok"))
		assert.NoError(t, err, "expected bufio to hold a short write")
		assert.Equal(t, boom, wf.Flush())
		assert.Equal(t, "ok", after.String())
	})
}
