package main

import (
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/lowaltitude/ladiprep/awsutil"
	"github.com/lowaltitude/ladiprep/cmdline"
	"github.com/lowaltitude/ladiprep/envutil"
	"github.com/lowaltitude/ladiprep/errors"
	"github.com/lowaltitude/ladiprep/ladi"
	"github.com/lowaltitude/ladiprep/workerpool"
)

var verifyCmd = cmdline.Command{
	Name:     "verify",
	Synopsis: "check that every storage path in a label manifest is resolvable",
	Args: &verifyArgs{
		NumGo: envutil.GetenvDefaultInt("LADIPREP_NUMGO", 8),
	},
}

type verifyArgs struct {
	Manifest string `arg:"required" help:"label manifest CSV"`
	Metadata string `help:"images metadata CSV to check manifest membership against"`
	NumGo    int    `help:"number of concurrent checks"`
}

func (args *verifyArgs) Handle() error {
	samples, err := ladi.LoadSamples(args.Manifest)
	if err != nil {
		return err
	}

	if args.Metadata != "" {
		metadata, err := ladi.LoadMetadata(args.Metadata)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(metadata))
		for _, m := range metadata {
			known[m.S3Path] = true
		}
		var unknown int
		for _, s := range samples {
			if !known[s.S3Path] {
				unknown++
				log.Printf("manifest path not present in metadata: %s", s.S3Path)
			}
		}
		if unknown > 0 {
			return errors.Errorf("%d of %d manifest paths missing from %s", unknown, len(samples), args.Metadata)
		}
	}

	var mu sync.Mutex
	var missing []string
	var checked int64

	var jobs []workerpool.Job
	for _, s := range samples {
		path := s.S3Path
		jobs = append(jobs, func() error {
			defer func() {
				if n := atomic.AddInt64(&checked, 1); n%50 == 0 {
					log.Printf("checked %d/%d paths", n, len(samples))
				}
			}()

			ok, err := pathExists(path)
			if err != nil {
				return errors.Wrapf(err, "error checking %s", path)
			}
			if !ok {
				mu.Lock()
				missing = append(missing, path)
				mu.Unlock()
			}
			return nil
		})
	}

	pool := workerpool.New(args.NumGo)
	pool.Add(jobs)
	err = pool.Wait()
	pool.Stop()
	if err != nil {
		return err
	}

	if len(missing) > 0 {
		for _, path := range missing {
			log.Printf("missing object: %s", path)
		}
		return errors.Errorf("%d of %d manifest paths are unresolvable", len(missing), len(samples))
	}

	log.Printf("all %d manifest paths resolve", len(samples))
	return nil
}

func pathExists(path string) (bool, error) {
	if awsutil.IsS3URI(path) {
		return awsutil.Exists(path)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
