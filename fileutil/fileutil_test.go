package fileutil

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "foo")
	err = ioutil.WriteFile(path, nil, 0777)
	require.NoError(t, err)

	f, err := NewReader(path)
	require.NoError(t, err)
	defer f.Close()
	assert.IsType(t, &os.File{}, f)

	g, err := NewReader(filepath.Join(dir, "bar"))
	assert.Error(t, err)
	assert.Nil(t, g)
}

func TestNewBufferedWriter(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	// intermediate directories are created on demand
	path := filepath.Join(dir, "sub", "out.csv")
	w, err := NewBufferedWriter(path)
	require.NoError(t, err)

	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestListDir(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	for _, name := range []string{"a", "b"} {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), nil, 0777))
	}

	paths, err := ListDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a"), filepath.Join(dir, "b")}, paths)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "s3://bucket/a/b", Join("s3://bucket", "a", "b"))
	assert.Equal(t, "s3://bucket/prefix/a", Join("s3://bucket/prefix", "a"))
	assert.Equal(t, "/tmp/a/b", Join("/tmp", "a", "b"))

	parts := []string{"s3://bucket", "a"}
	Join(parts...)
	assert.Equal(t, []string{"s3://bucket", "a"}, parts, "join must not mutate its input")
}
