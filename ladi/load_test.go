package ladi

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadLabels(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := writeTemp(t, dir, "labels.tsv",
		"url\tWorkerId\tAnswer\n"+
			"http://img/a.jpg\tw1\t[Flood, Infrastructure]\n"+
			"http://img/b.jpg\tw2\t[Infrastructure, none]\n")

	labels, err := LoadLabels(path)
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "http://img/a.jpg", labels[0].URL)
	assert.Equal(t, []string{"flood", "infrastructure"}, labels[0].Tags())
	assert.Equal(t, []string{"infrastructure", "none"}, labels[1].Tags())
}

func TestLoadLabelsSchemaError(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := writeTemp(t, dir, "labels.tsv",
		"url\tWorkerId\n"+
			"http://img/a.jpg\tw1\n")

	_, err = LoadLabels(path)
	require.Error(t, err)
	schemaErr, ok := err.(SchemaError)
	require.True(t, ok, "expected a SchemaError, got %T", err)
	assert.Equal(t, []string{"Answer"}, schemaErr.Missing)
}

func TestLoadMetadata(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := writeTemp(t, dir, "metadata.csv",
		"uuid,timestamp,gps_lat,gps_lon,gps_alt,file_size,width,height,s3_path,url\n"+
			"u1,2015-10-07T15:08:08,30.1,-90.2,150.0,12345,4000,3000,s3://ladi/images/a.jpg,http://img/a.jpg\n")

	metadata, err := LoadMetadata(path)
	require.NoError(t, err)
	require.Len(t, metadata, 1)
	assert.Equal(t, "s3://ladi/images/a.jpg", metadata[0].S3Path)
	assert.Equal(t, "http://img/a.jpg", metadata[0].URL)
	assert.Equal(t, 30.1, metadata[0].GPSLat)
	assert.Equal(t, int64(12345), metadata[0].FileSize)
}

func TestLoadMetadataSchemaError(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := writeTemp(t, dir, "metadata.csv", "uuid,timestamp\nu1,2015-10-07\n")

	_, err = LoadMetadata(path)
	require.Error(t, err)
	schemaErr, ok := err.(SchemaError)
	require.True(t, ok, "expected a SchemaError, got %T", err)
	assert.Equal(t, []string{"url", "s3_path"}, schemaErr.Missing)
}

func TestWriteAndLoadSamples(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	samples := []LabeledSample{
		{S3Path: "s3://ladi/images/a.jpg", Label: true},
		{S3Path: "s3://ladi/images/b.jpg", Label: false},
	}

	path := filepath.Join(dir, "out", "labels.csv")
	require.NoError(t, WriteSamples(path, "", samples))

	loaded, err := LoadSamples(path)
	require.NoError(t, err)
	assert.Equal(t, samples, loaded)
}
