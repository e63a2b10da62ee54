// peptool loads a pipeline project configuration, optionally
// activates a subproject, and emits the built sample sheet or a
// per-sample summary. It can also create the sample directories.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fabianegli/peppy"
)

func main() {
	var configPath, subproject, protocols, outPath, delim string
	var mkdirs, summary, listSubprojects bool

	flag.StringVar(&configPath, "config", "", "Path to the project config YAML file.")
	flag.StringVar(&subproject, "subproject", "", "Name of a subproject to activate.")
	flag.StringVar(&protocols, "protocols", "", "Comma-separated protocol allow-list for the sheet build. Empty means no filter.")
	flag.StringVar(&outPath, "out", "", "Output file. Defaults to stdout.")
	flag.StringVar(&delim, "delim", ",", "Output delimiter: ',' or 'tab'.")
	flag.BoolVar(&mkdirs, "mkdirs", false, "Create every sample directory.")
	flag.BoolVar(&summary, "summary", false, "Emit a per-sample summary (name, protocol, sample root) instead of the full sheet.")
	flag.BoolVar(&listSubprojects, "list-subprojects", false, "Print the config's subproject names and exit.")
	flag.Parse()

	if configPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	var opts []peppy.Option
	if subproject != "" {
		opts = append(opts, peppy.WithSubproject(subproject))
	}

	p, err := peppy.New(configPath, opts...)
	if err != nil {
		log.Fatalln(err)
	}

	if listSubprojects {
		for _, name := range p.Config().SubprojectNames() {
			fmt.Println(name)
		}
		return
	}

	log.Printf("Loaded %s\n", p)

	if mkdirs {
		if err := p.MakeSampleDirs(); err != nil {
			log.Fatalln(err)
		}
		log.Printf("Created directories for %d samples\n", p.NumSamples())
	}

	out := io.Writer(os.Stdout)
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			log.Fatalln(err)
		}
		defer f.Close()
		out = f
	}

	if summary {
		if err := writeSummary(out, p, outputDelimiter(delim)); err != nil {
			log.Fatalln(err)
		}
		return
	}

	tbl := p.BuildSheet(splitProtocols(protocols)...)
	if err := tbl.Write(out, outputDelimiter(delim)); err != nil {
		log.Fatalln(err)
	}
}

func outputDelimiter(delim string) rune {
	switch delim {
	case "tab", "\t":
		return '\t'
	case "", ",":
		return ','
	}
	return rune(delim[0])
}
