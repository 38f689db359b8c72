package sampler

import (
	"github.com/dgryski/go-spooky"
	"github.com/lowaltitude/ladiprep/errors"
	"github.com/lowaltitude/ladiprep/ladi"
)

// DatasetType names one part of a train/validate/test split.
type DatasetType string

const (
	// TrainDataset ...
	TrainDataset = DatasetType("train")

	// ValidateDataset ...
	ValidateDataset = DatasetType("validate")

	// TestDataset ...
	TestDataset = DatasetType("test")
)

// SplitOptions configures a manifest split. Percentages must sum to 100.
type SplitOptions struct {
	Train    int
	Validate int
	Test     int
	Seed     uint64
}

// CheckValid ensures options are set correctly
func (o SplitOptions) CheckValid() bool {
	return o.Train+o.Validate+o.Test == 100
}

// Shard returns the dataset a storage path belongs to. Assignment hashes
// the path with the seed, so a path lands in the same dataset on every run
// regardless of manifest order.
func Shard(path string, opts SplitOptions) DatasetType {
	shard := int(spooky.Hash64Seed([]byte(path), opts.Seed) % 100)
	if shard < opts.Train {
		return TrainDataset
	} else if shard < opts.Train+opts.Validate {
		return ValidateDataset
	}
	return TestDataset
}

// Split partitions a label manifest into train, validate, and test manifests.
func Split(samples []ladi.LabeledSample, opts SplitOptions) (map[DatasetType][]ladi.LabeledSample, error) {
	if !opts.CheckValid() {
		return nil, errors.Errorf("split percentages must sum to 100, got %d/%d/%d",
			opts.Train, opts.Validate, opts.Test)
	}

	out := make(map[DatasetType][]ladi.LabeledSample, 3)
	for _, s := range samples {
		dt := Shard(s.S3Path, opts)
		out[dt] = append(out[dt], s)
	}
	return out, nil
}
