package main

import (
	"bufio"
	"compress/gzip"
	"flag"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

type merger struct {
	input      string
	sample     string
	outputDir  string
	outputName string
	noHeader   bool
	printHead  int
	sorted     bool
	order      string
}

func (cmd *merger) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cmd.input, "i", "", "input `file`, or shard directory in sample mode (default \"bkctxt\")")
	flags.StringVar(&cmd.sample, "sample", "", "sample `ID` for per-sample merge mode, matches <ID>_R1.part_*.txt")
	flags.StringVar(&cmd.outputDir, "o", "out/fasta", "output `directory`")
	flags.StringVar(&cmd.outputName, "output-name", "", "output fasta `filename` (default \"output.fasta\", sample mode \"carrots_<ID>.fasta\")")
	flags.BoolVar(&cmd.noHeader, "no-header", false, "single input file has no header row (a header is auto-detected either way; sample mode never has one)")
	flags.IntVar(&cmd.printHead, "print-head", 0, "print first `N` aggregated rows to stderr")
	flags.BoolVar(&cmd.sorted, "sorted", false, "input is grouped by barcode: aggregate one barcode at a time in bounded memory")
	flags.StringVar(&cmd.order, "order", "weight", "assembly ordering `policy`: \"weight\" or \"arrival\"")
	pprof := flags.String("pprof", "", "serve Go profile data at http://`[addr]:port`")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if cmd.sample == "" && cmd.input == "" {
		fmt.Fprintln(stderr, "cannot merge without -i or -sample argument")
		return 2
	}
	policy, err := parseOrderPolicy(cmd.order)
	if err != nil {
		return 2
	}

	if *pprof != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprof, nil))
		}()
	}

	infiles, err := cmd.listInputFiles()
	if err != nil {
		return 1
	}
	outputName := cmd.outputName
	if outputName == "" {
		if cmd.sample != "" {
			outputName = "carrots_" + cmd.sample + ".fasta"
		} else {
			outputName = "output.fasta"
		}
	}
	output, err := createOutput(cmd.outputDir, outputName)
	if err != nil {
		return 1
	}
	defer output.Close()
	fw := newFastaWriter(output)

	preview := cmd.printHead
	sink := func(g *barcodeGroup) error {
		if preview > 0 {
			preview -= previewRows(stderr, g, preview)
		}
		dropUniversalTargets(g)
		return fw.writeRecord(g.barcode, assemble(g, policy))
	}
	var agg aggregator
	if cmd.sorted {
		agg = newStreamAggregator(sink)
	} else {
		agg = newHashAggregator(sink)
	}
	for _, infile := range infiles {
		err = mergeFile(agg, infile)
		if err != nil {
			return 1
		}
	}
	err = agg.finish()
	if err != nil {
		return 1
	}
	err = fw.flush()
	if err != nil {
		return 1
	}
	err = output.Close()
	if err != nil {
		return 1
	}
	outpath := filepath.Join(cmd.outputDir, outputName)
	log.Printf("wrote %d fasta record(s) to %s", fw.n, outpath)
	fmt.Fprintln(stdout, outpath)
	return 0
}

// listInputFiles resolves the command's input arguments to the shard
// files to read, in lexicographic order. An empty shard glob or a
// missing single file is fatal; no output is created in that case.
func (cmd *merger) listInputFiles() ([]string, error) {
	if cmd.sample == "" {
		if _, err := os.Stat(cmd.input); err != nil {
			return nil, fmt.Errorf("%s: stat failed: %s", cmd.input, err)
		}
		return []string{cmd.input}, nil
	}
	dir := cmd.input
	if dir == "" {
		dir = "bkctxt"
	}
	pattern := filepath.Join(dir, cmd.sample+"_R1.part_*.txt")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched %s", pattern)
	}
	sort.Strings(files)
	return files, nil
}

// mergeFile feeds every accepted row of infile into agg. Inputs ending
// in .gz are gunzipped transparently.
func mergeFile(agg aggregator, infile string) error {
	f, err := os.Open(infile)
	if err != nil {
		return err
	}
	defer f.Close()
	var rdr io.Reader = f
	if strings.HasSuffix(infile, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("%s: gzip: %s", infile, err)
		}
		defer gz.Close()
		rdr = gz
	}
	scanner := bufio.NewScanner(rdr)
	scanner.Buffer(nil, 64*1024*1024)
	accepted := 0
	for scanner.Scan() {
		obs, ok := parseRow(scanner.Text())
		if !ok {
			continue
		}
		if err := agg.add(obs); err != nil {
			return fmt.Errorf("%s: %s", infile, err)
		}
		accepted++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %s", infile, err)
	}
	log.Printf("%s: %d row(s) accepted", infile, accepted)
	return nil
}

// previewRows writes up to n aggregated rows of g to w and reports how
// many it wrote. Rows appear pre-filter, in arrival order.
func previewRows(w io.Writer, g *barcodeGroup, n int) int {
	printed := 0
	for _, ent := range g.anchors {
		for _, tc := range ent.targets {
			if printed >= n {
				return printed
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", g.barcode, ent.name, tc.target, tc.count)
			printed++
		}
	}
	return printed
}
