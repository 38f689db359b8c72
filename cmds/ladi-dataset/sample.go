package main

import (
	"log"

	"github.com/dustin/go-humanize"
	"github.com/lowaltitude/ladiprep/cmdline"
	"github.com/lowaltitude/ladiprep/errors"
	"github.com/lowaltitude/ladiprep/ladi"
	"github.com/lowaltitude/ladiprep/sampler"
)

var sampleCmd = cmdline.Command{
	Name:     "sample",
	Synopsis: "draw a balanced flood/not-flood sample from the LADI annotation dumps",
	Args: &sampleArgs{
		Size: 100,
		Seed: 42,
	},
}

type sampleArgs struct {
	Labels      string `arg:"required" help:"aggregated responses TSV (local, s3://, or http://)"`
	Metadata    string `arg:"required" help:"images metadata CSV"`
	OutMetadata string `arg:"required" help:"output CSV for the sampled metadata subset"`
	OutLabels   string `arg:"required" help:"output CSV for the sampled label manifest"`
	Size        int    `help:"per-class sample size"`
	Seed        int64  `help:"random seed"`
	TmpDir      string `help:"tmp dir for buffering s3 outputs"`
}

func (args *sampleArgs) Validate() error {
	if args.Size <= 0 {
		return errors.Errorf("size must be positive, got %d", args.Size)
	}
	return nil
}

func (args *sampleArgs) Handle() error {
	labels, err := ladi.LoadLabels(args.Labels)
	if err != nil {
		return err
	}
	log.Printf("read %s annotation rows from %s", humanize.Comma(int64(len(labels))), args.Labels)

	metadata, err := ladi.LoadMetadata(args.Metadata)
	if err != nil {
		return err
	}
	log.Printf("read %s metadata rows from %s", humanize.Comma(int64(len(metadata))), args.Metadata)

	res, err := sampler.Run(labels, metadata, sampler.Params{
		SampleSize: args.Size,
		Seed:       args.Seed,
	})
	if err != nil {
		return err
	}

	d := res.Diagnostics
	log.Printf("retained %s urls, joined to %s positive and %s negative storage paths",
		humanize.Comma(int64(d.RetainedURLs)),
		humanize.Comma(int64(d.PositivePaths)),
		humanize.Comma(int64(d.NegativePaths)))
	log.Printf("%s urls have human labels but no metadata, %s have metadata but no retained labels",
		humanize.Comma(int64(d.HumanLabelOnly)),
		humanize.Comma(int64(d.MetadataOnly)))

	if err := ladi.WriteMetadata(args.OutMetadata, args.TmpDir, res.Metadata); err != nil {
		return err
	}
	if err := ladi.WriteSamples(args.OutLabels, args.TmpDir, res.Samples); err != nil {
		return err
	}

	log.Printf("wrote %d samples per class to %s and %s", args.Size, args.OutLabels, args.OutMetadata)
	return nil
}
