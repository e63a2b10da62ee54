package main

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/fabianegli/peppy"
)

// SampleSummary is one output record of the -summary mode.
type SampleSummary struct {
	Name       string `csv:"sample_name"`
	Protocol   string `csv:"protocol"`
	SampleRoot string `csv:"sample_root"`
}

func writeSummary(w io.Writer, p *peppy.Project, delim rune) error {
	// Tell gocsv which delimiter to emit
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		cw := csv.NewWriter(out)
		cw.Comma = delim
		return gocsv.NewSafeCSVWriter(cw)
	})

	records := make([]*SampleSummary, 0, p.NumSamples())
	for _, s := range p.Samples() {
		records = append(records, &SampleSummary{
			Name:       s.Name,
			Protocol:   s.Protocol,
			SampleRoot: s.SampleRoot,
		})
	}

	return gocsv.Marshal(&records, w)
}

func splitProtocols(arg string) []string {
	if arg == "" {
		return nil
	}

	var out []string
	for _, p := range strings.Split(arg, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
