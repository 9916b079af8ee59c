package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joycao1/splash-hyena/seqdiff"
)

// diffFasta compares two output FASTA files record by record. Its main
// use is confirming that a batch run and a sorted streaming run of the
// same dataset produced identical records.
type diffFasta struct{}

func (cmd *diffFasta) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	}
	if len(flags.Args()) != 2 {
		err = fmt.Errorf("usage: %s a.fasta b.fasta", prog)
		return 2
	}

	var recs [2][]fastaRecord
	for idx, fnm := range flags.Args() {
		f, err2 := os.Open(fnm)
		if err2 != nil {
			err = err2
			return 1
		}
		recs[idx], err2 = readFasta(f)
		f.Close()
		if err2 != nil {
			err = fmt.Errorf("%s: %s", fnm, err2)
			return 1
		}
	}

	bseqs := map[string]string{}
	for _, rec := range recs[1] {
		bseqs[rec.id] = rec.seq
	}
	differ := false
	for _, rec := range recs[0] {
		bseq, ok := bseqs[rec.id]
		if !ok {
			fmt.Fprintf(stdout, "%s\tonly in %s\n", rec.id, flags.Arg(0))
			differ = true
			continue
		}
		delete(bseqs, rec.id)
		variants := seqdiff.Diff(rec.seq, bseq)
		if len(variants) == 0 {
			fmt.Fprintf(stdout, "%s\t=\n", rec.id)
			continue
		}
		differ = true
		annos := make([]string, len(variants))
		for i, v := range variants {
			annos[i] = v.String()
		}
		fmt.Fprintf(stdout, "%s\t%s\n", rec.id, strings.Join(annos, ";"))
	}
	for _, rec := range recs[1] {
		if _, ok := bseqs[rec.id]; ok {
			fmt.Fprintf(stdout, "%s\tonly in %s\n", rec.id, flags.Arg(1))
			differ = true
		}
	}
	if differ {
		return 1
	}
	return 0
}
