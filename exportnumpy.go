package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/kshedden/gonpy"
	log "github.com/sirupsen/logrus"
)

// exportNumpy aggregates the same inputs as merge and writes a dense
// row-major barcode×anchor matrix of total counts as .npy, for QC of
// the training input. Rows are barcodes in first-seen order, columns
// are anchors in first-seen order across all barcodes.
type exportNumpy struct {
	output io.Writer
}

func (cmd *exportNumpy) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	input := flags.String("i", "", "input `file`, or shard directory in sample mode")
	sample := flags.String("sample", "", "sample `ID` for per-sample merge mode")
	outputFilename := flags.String("o", "", "output `file` (default stdout)")
	filtered := flags.Bool("filtered", false, "apply the universal-target filter before export")
	pprof := flags.String("pprof", "", "serve Go profile data at http://`[addr]:port`")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if *sample == "" && *input == "" {
		fmt.Fprintln(stderr, "cannot export without -i or -sample argument")
		return 2
	}
	cmd.output = stdout

	if *pprof != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprof, nil))
		}()
	}

	merge := &merger{input: *input, sample: *sample}
	infiles, err := merge.listInputFiles()
	if err != nil {
		return 1
	}
	var groups []*barcodeGroup
	agg := newHashAggregator(func(g *barcodeGroup) error {
		groups = append(groups, g)
		return nil
	})
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
	if *filtered {
		for _, g := range groups {
			dropUniversalTargets(g)
		}
	}

	colIndex := map[string]int{}
	ncols := 0
	for _, g := range groups {
		for _, ent := range g.anchors {
			if _, ok := colIndex[ent.name]; !ok {
				colIndex[ent.name] = ncols
				ncols++
			}
		}
	}
	out := make([]int64, len(groups)*ncols)
	for row, g := range groups {
		for _, ent := range g.anchors {
			var total int64
			for _, tc := range ent.targets {
				total += tc.count
			}
			out[row*ncols+colIndex[ent.name]] = total
		}
	}
	log.Printf("matrix is %d barcode(s) x %d anchor(s)", len(groups), ncols)

	var output io.WriteCloser
	if *outputFilename == "" {
		output = nopCloser{cmd.output}
	} else {
		output, err = os.OpenFile(*outputFilename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0777)
		if err != nil {
			return 1
		}
		defer output.Close()
	}
	bufw := bufio.NewWriter(output)
	npw, err := gonpy.NewWriter(nopCloser{bufw})
	if err != nil {
		return 1
	}
	npw.Shape = []int{len(groups), ncols}
	err = npw.WriteInt64(out)
	if err != nil {
		return 1
	}
	err = bufw.Flush()
	if err != nil {
		return 1
	}
	err = output.Close()
	if err != nil {
		return 1
	}
	return 0
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
