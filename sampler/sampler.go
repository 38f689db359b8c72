// Package sampler turns the raw LADI annotation and metadata tables into a
// balanced binary-labeled dataset manifest.
package sampler

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/lowaltitude/ladiprep/errors"
	"github.com/lowaltitude/ladiprep/ladi"
)

// Annotation terms driving the category filter and class split.
const (
	termDamage         = "damage"
	termInfrastructure = "infrastructure"
	termFlood          = "flood"
	tagNone            = "none"
)

// Params configures a sampling run.
type Params struct {
	// SampleSize is the number of examples drawn from each class.
	SampleSize int
	// Seed drives the random subsample; a fixed seed gives identical
	// output for identical input.
	Seed int64
}

// Diagnostics carries the non-fatal data-quality counts observed during a run.
type Diagnostics struct {
	LabelRecords   int // annotation rows read
	RetainedURLs   int // distinct urls with at least one retained record
	PositivePaths  int // distinct positive storage paths after the metadata join
	NegativePaths  int // distinct negative storage paths after the metadata join
	HumanLabelOnly int // retained urls missing from the metadata table
	MetadataOnly   int // metadata rows whose url has no retained record
}

// Result is the output of a sampling run: a metadata subset and a label
// manifest restricted to the sampled storage paths, in sample order
// (positives first).
type Result struct {
	Metadata    []ladi.ImageMetadata
	Samples     []ladi.LabeledSample
	Diagnostics Diagnostics
}

// InsufficientDataError indicates a class pool is smaller than the
// requested sample size.
type InsufficientDataError struct {
	Class string
	Have  int
	Want  int
}

func (e InsufficientDataError) Error() string {
	return fmt.Sprintf("not enough %s examples to sample: have %d, want %d", e.Class, e.Have, e.Want)
}

// Partition applies the category filter and class split to the annotation
// records and returns the positive and negative url sets, sorted. Rules are
// applied per record: a record is retained when at least one of its tags
// contains "damage" or "infrastructure" and none of its tags is exactly
// "none". A url is positive when any of its retained records carries a tag
// containing "flood".
func Partition(labels []ladi.LabelRecord) (positive, negative []string) {
	posSet := make(map[string]bool)
	retained := make(map[string]bool)
	for _, rec := range labels {
		tags := rec.Tags()
		if ladi.HasTag(tags, tagNone) {
			continue
		}
		if !ladi.AnyTagContains(tags, termDamage, termInfrastructure) {
			continue
		}
		retained[rec.URL] = true
		if ladi.AnyTagContains(tags, termFlood) {
			posSet[rec.URL] = true
		}
	}

	for url := range retained {
		if posSet[url] {
			positive = append(positive, url)
		} else {
			negative = append(negative, url)
		}
	}
	sort.Strings(positive)
	sort.Strings(negative)
	return positive, negative
}

// Run executes the full sampling pipeline: tag normalization, category
// filter, class split, metadata join, seeded sampling, and output assembly.
func Run(labels []ladi.LabelRecord, metadata []ladi.ImageMetadata, params Params) (*Result, error) {
	if params.SampleSize <= 0 {
		return nil, errors.Errorf("sample size must be positive, got %d", params.SampleSize)
	}

	positive, negative := Partition(labels)

	d := Diagnostics{
		LabelRecords: len(labels),
		RetainedURLs: len(positive) + len(negative),
	}

	metaByURL := make(map[string]ladi.ImageMetadata, len(metadata))
	for _, m := range metadata {
		metaByURL[m.URL] = m
	}

	posPaths, posDropped := joinPaths(positive, metaByURL)
	negPaths, negDropped := joinPaths(negative, metaByURL)
	d.HumanLabelOnly = posDropped + negDropped

	labeled := make(map[string]bool, len(positive)+len(negative))
	for _, url := range positive {
		labeled[url] = true
	}
	for _, url := range negative {
		labeled[url] = true
	}
	for _, m := range metadata {
		if !labeled[m.URL] {
			d.MetadataOnly++
		}
	}

	// a storage path shared between classes stays positive
	inPos := make(map[string]bool, len(posPaths))
	for _, p := range posPaths {
		inPos[p] = true
	}
	negPaths = dropAll(negPaths, inPos)

	d.PositivePaths = len(posPaths)
	d.NegativePaths = len(negPaths)

	rgen := rand.New(rand.NewSource(params.Seed))
	pos, err := samplePaths(rgen, posPaths, params.SampleSize, "positive")
	if err != nil {
		return nil, err
	}
	neg, err := samplePaths(rgen, negPaths, params.SampleSize, "negative")
	if err != nil {
		return nil, err
	}

	metaByPath := make(map[string]ladi.ImageMetadata, len(metadata))
	for _, m := range metadata {
		metaByPath[m.S3Path] = m
	}

	res := &Result{Diagnostics: d}
	for _, p := range pos {
		res.Samples = append(res.Samples, ladi.LabeledSample{S3Path: p, Label: true})
		res.Metadata = append(res.Metadata, metaByPath[p])
	}
	for _, p := range neg {
		res.Samples = append(res.Samples, ladi.LabeledSample{S3Path: p, Label: false})
		res.Metadata = append(res.Metadata, metaByPath[p])
	}
	return res, nil
}

// joinPaths maps urls to storage paths, dropping urls absent from the
// metadata table and deduplicating paths. The result is sorted so that
// sampling is deterministic for a fixed seed.
func joinPaths(urls []string, metaByURL map[string]ladi.ImageMetadata) ([]string, int) {
	var dropped int
	seen := make(map[string]bool, len(urls))
	var paths []string
	for _, url := range urls {
		m, ok := metaByURL[url]
		if !ok {
			dropped++
			continue
		}
		if seen[m.S3Path] {
			continue
		}
		seen[m.S3Path] = true
		paths = append(paths, m.S3Path)
	}
	sort.Strings(paths)
	return paths, dropped
}

func dropAll(paths []string, exclude map[string]bool) []string {
	kept := paths[:0]
	for _, p := range paths {
		if !exclude[p] {
			kept = append(kept, p)
		}
	}
	return kept
}

func samplePaths(rgen *rand.Rand, pool []string, n int, class string) ([]string, error) {
	if len(pool) < n {
		return nil, InsufficientDataError{Class: class, Have: len(pool), Want: n}
	}
	out := make([]string, 0, n)
	for _, i := range rgen.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out, nil
}
