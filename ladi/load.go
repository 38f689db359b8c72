package ladi

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/lowaltitude/ladiprep/errors"
	"github.com/lowaltitude/ladiprep/fileutil"
)

// SchemaError indicates an input table is missing expected columns.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("%s: missing expected columns: %s", e.Path, strings.Join(e.Missing, ", "))
}

var (
	labelColumns    = []string{"url", "Answer"}
	metadataColumns = []string{"url", "s3_path"}
	sampleColumns   = []string{"s3_path", "label"}
)

// LoadLabels reads the tab-separated aggregated responses dump.
func LoadLabels(path string) ([]LabelRecord, error) {
	data, err := readTable(path, '\t', labelColumns)
	if err != nil {
		return nil, err
	}

	var records []LabelRecord
	if err := gocsv.UnmarshalCSV(newTableReader(data, '\t'), &records); err != nil {
		return nil, errors.Wrapf(err, "error parsing labels from %s", path)
	}
	return records, nil
}

// LoadMetadata reads the comma-separated images metadata dump.
func LoadMetadata(path string) ([]ImageMetadata, error) {
	data, err := readTable(path, ',', metadataColumns)
	if err != nil {
		return nil, err
	}

	var records []ImageMetadata
	if err := gocsv.UnmarshalCSV(newTableReader(data, ','), &records); err != nil {
		return nil, errors.Wrapf(err, "error parsing metadata from %s", path)
	}
	return records, nil
}

// LoadSamples reads a label manifest produced by a sampling run.
func LoadSamples(path string) ([]LabeledSample, error) {
	data, err := readTable(path, ',', sampleColumns)
	if err != nil {
		return nil, err
	}

	var samples []LabeledSample
	if err := gocsv.UnmarshalCSV(newTableReader(data, ','), &samples); err != nil {
		return nil, errors.Wrapf(err, "error parsing label manifest from %s", path)
	}
	return samples, nil
}

// WriteMetadata writes a metadata subset as CSV to a local or s3 path.
// For s3 destinations the output is buffered on disk under tmpDir (or the
// system tmp dir when empty) until Close uploads it.
func WriteMetadata(path, tmpDir string, records []ImageMetadata) (err error) {
	w, err := fileutil.NewBufferedWriterWithTmp(path, tmpDir)
	if err != nil {
		return err
	}
	defer errors.Defer(&err, w.Close)
	return gocsv.Marshal(&records, w)
}

// WriteSamples writes a label manifest as CSV to a local or s3 path,
// buffering under tmpDir like WriteMetadata.
func WriteSamples(path, tmpDir string, samples []LabeledSample) (err error) {
	w, err := fileutil.NewBufferedWriterWithTmp(path, tmpDir)
	if err != nil {
		return err
	}
	defer errors.Defer(&err, w.Close)
	return gocsv.Marshal(&samples, w)
}

// readTable loads the file and validates that the header row carries the
// required columns, so missing columns surface as a SchemaError instead of
// silently zeroed fields.
func readTable(path string, comma rune, required []string) ([]byte, error) {
	data, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading %s", path)
	}

	header, err := newTableReader(data, comma).Read()
	if err != nil {
		return nil, errors.Wrapf(err, "error reading header of %s", path)
	}

	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = true
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, SchemaError{Path: path, Missing: missing}
	}
	return data, nil
}

func newTableReader(data []byte, comma rune) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.LazyQuotes = true
	return r
}
