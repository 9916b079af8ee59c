package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
)

// splitFasta partitions a FASTA file into train/valid/test FASTAs,
// assigning each barcode to a set by seeded hash of its identifier.
// The bucket depends only on the seed and the identifier, so
// re-running a split, or splitting a regenerated file, never moves a
// barcode across sets.
type splitFasta struct {
	input     string
	outputDir string
	prefix    string
	fracs     string
	seed      int64
}

var splitSetNames = []string{"train", "valid", "test"}

func (cmd *splitFasta) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cmd.input, "i", "", "input fasta `file`")
	flags.StringVar(&cmd.outputDir, "o", "out/split", "output `directory`")
	flags.StringVar(&cmd.prefix, "output-prefix", "", "output filename `prefix` (default: input basename without .fasta)")
	flags.StringVar(&cmd.fracs, "fracs", "0.8,0.1,0.1", "train,valid,test `fractions`, summing to 1")
	flags.Int64Var(&cmd.seed, "seed", 0, "`seed` mixed into the barcode hash")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if cmd.input == "" {
		fmt.Fprintln(stderr, "cannot split without -i argument")
		return 2
	}
	fracs, err := parseFracs(cmd.fracs)
	if err != nil {
		return 2
	}

	f, err := os.Open(cmd.input)
	if err != nil {
		return 1
	}
	defer f.Close()
	recs, err := readFasta(f)
	if err != nil {
		err = fmt.Errorf("%s: %s", cmd.input, err)
		return 1
	}

	prefix := cmd.prefix
	if prefix == "" {
		prefix = strings.TrimSuffix(filepath.Base(cmd.input), ".fasta")
	}
	var writers [3]*fastaWriter
	for i, set := range splitSetNames {
		out, err2 := createOutput(cmd.outputDir, prefix+"."+set+".fasta")
		if err2 != nil {
			err = err2
			return 1
		}
		defer out.Close()
		writers[i] = newFastaWriter(out)
	}
	for _, rec := range recs {
		err = writers[splitBucket(cmd.seed, rec.id, fracs)].writeRecord(rec.id, rec.seq)
		if err != nil {
			return 1
		}
	}
	for i, fw := range writers {
		err = fw.flush()
		if err != nil {
			return 1
		}
		log.Printf("%s: %d record(s)", splitSetNames[i], fw.n)
	}
	return 0
}

func parseFracs(s string) ([3]float64, error) {
	var fracs [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fracs, fmt.Errorf("-fracs wants three comma-separated fractions, got %q", s)
	}
	sum := 0.0
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || f < 0 {
			return fracs, fmt.Errorf("bad fraction %q", part)
		}
		fracs[i] = f
		sum += f
	}
	if sum < 0.999 || sum > 1.001 {
		return fracs, fmt.Errorf("fractions %q sum to %g, want 1", s, sum)
	}
	return fracs, nil
}

// splitBucket maps id to 0 (train), 1 (valid) or 2 (test) by hashing
// the seed and the identifier into a uniform value in [0,1).
func splitBucket(seed int64, id string, fracs [3]float64) int {
	sum := blake2b.Sum256([]byte(strconv.FormatInt(seed, 10) + id))
	u := float64(binary.BigEndian.Uint32(sum[:4])) / (1 << 32)
	switch {
	case u < fracs[0]:
		return 0
	case u < fracs[0]+fracs[1]:
		return 1
	default:
		return 2
	}
}
