package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_openSource(t *testing.T) {
	dir, err := ioutil.TempDir("", "stackc")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	prog := filepath.Join(dir, "prog.stc")
	require.NoError(t, ioutil.WriteFile(prog, []byte("1 ."), 0644))
	other := filepath.Join(dir, "prog.txt")
	require.NoError(t, ioutil.WriteFile(other, []byte("1 ."), 0644))

	t.Run("script", func(t *testing.T) {
		src, err := openSource("1 2 +", nil)
		require.NoError(t, err)
		b, err := ioutil.ReadAll(src)
		require.NoError(t, err)
		assert.Equal(t, "1 2 +", string(b))
		assert.Equal(t, "-s", src.(interface{ Name() string }).Name())
	})

	t.Run("script and path", func(t *testing.T) {
		_, err := openSource("1", []string{prog})
		assert.Equal(t, errUsage, err)
	})

	t.Run("no args", func(t *testing.T) {
		_, err := openSource("", nil)
		assert.Equal(t, errUsage, err)
	})

	t.Run("too many args", func(t *testing.T) {
		_, err := openSource("", []string{prog, prog})
		assert.Equal(t, errUsage, err)
	})

	t.Run("file", func(t *testing.T) {
		src, err := openSource("", []string{prog})
		require.NoError(t, err)
		f, ok := src.(*os.File)
		require.True(t, ok, "expected an *os.File, got %T", src)
		defer f.Close()
		assert.Equal(t, prog, f.Name())
	})

	t.Run("wrong extension", func(t *testing.T) {
		_, err := openSource("", []string{other})
		assert.EqualError(t, err, other+": source file must have a .stc extension")
	})

	t.Run("missing file", func(t *testing.T) {
		src, err := openSource("", []string{filepath.Join(dir, "nope.stc")})
		assert.True(t, os.IsNotExist(err), "expected not exist error, got %v", err)
		assert.Nil(t, src)
	})
}
