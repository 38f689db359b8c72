package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/lowaltitude/ladiprep/cmdline"
	"github.com/lowaltitude/ladiprep/ladi"
	"github.com/lowaltitude/ladiprep/sampler"
)

var statsCmd = cmdline.Command{
	Name:     "stats",
	Synopsis: "report tag frequencies and class balance for an annotation dump",
	Args: &statsArgs{
		Top: 25,
	},
}

type statsArgs struct {
	Labels string `arg:"required" help:"aggregated responses TSV"`
	Top    int    `help:"number of tags to show"`
}

func (args *statsArgs) Handle() error {
	labels, err := ladi.LoadLabels(args.Labels)
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, rec := range labels {
		for _, tag := range rec.Tags() {
			counts[tag]++
		}
	}

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if args.Top > 0 && len(tags) > args.Top {
		tags = tags[:args.Top]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tCOUNT")
	for _, tag := range tags {
		fmt.Fprintf(w, "%s\t%s\n", tag, humanize.Comma(int64(counts[tag])))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	positive, negative := sampler.Partition(labels)
	fmt.Printf("\n%s annotation rows, %s distinct tags\n",
		humanize.Comma(int64(len(labels))), humanize.Comma(int64(len(counts))))
	fmt.Printf("%s positive urls, %s negative urls after category filter\n",
		humanize.Comma(int64(len(positive))), humanize.Comma(int64(len(negative))))
	return nil
}
