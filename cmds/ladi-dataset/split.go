package main

import (
	"log"

	"github.com/lowaltitude/ladiprep/cmdline"
	"github.com/lowaltitude/ladiprep/errors"
	"github.com/lowaltitude/ladiprep/fileutil"
	"github.com/lowaltitude/ladiprep/ladi"
	"github.com/lowaltitude/ladiprep/sampler"
)

var splitCmd = cmdline.Command{
	Name:     "split",
	Synopsis: "split a label manifest into train, validate, and test manifests",
	Args: &splitArgs{
		TrainPct:    90,
		ValidatePct: 5,
		TestPct:     5,
		Seed:        42,
	},
}

type splitArgs struct {
	In          string `arg:"required" help:"input label manifest CSV"`
	Out         string `arg:"required" help:"output directory (local or s3://)"`
	TrainPct    int    `help:"train percentage"`
	ValidatePct int    `help:"validate percentage"`
	TestPct     int    `help:"test percentage"`
	Seed        int64  `help:"hash seed"`
	TmpDir      string `help:"tmp dir for buffering s3 outputs"`
}

func (args *splitArgs) Validate() error {
	if args.TrainPct+args.ValidatePct+args.TestPct != 100 {
		return errors.Errorf("train+validate+test must sum to 100, got %d/%d/%d",
			args.TrainPct, args.ValidatePct, args.TestPct)
	}
	return nil
}

func (args *splitArgs) Handle() error {
	samples, err := ladi.LoadSamples(args.In)
	if err != nil {
		return err
	}

	parts, err := sampler.Split(samples, sampler.SplitOptions{
		Train:    args.TrainPct,
		Validate: args.ValidatePct,
		Test:     args.TestPct,
		Seed:     uint64(args.Seed),
	})
	if err != nil {
		return err
	}

	for _, dt := range []sampler.DatasetType{sampler.TrainDataset, sampler.ValidateDataset, sampler.TestDataset} {
		out := fileutil.Join(args.Out, string(dt)+".csv")
		if err := ladi.WriteSamples(out, args.TmpDir, parts[dt]); err != nil {
			return err
		}
		log.Printf("wrote %d samples to %s", len(parts[dt]), out)
	}
	return nil
}
