package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// sanitizeID maps every character outside [A-Za-z0-9._-] to '_'.
func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			return r
		}
		return '_'
	}, id)
}

// fastaWriter emits two-line FASTA records with sanitized identifiers
// and no sequence wrapping.
type fastaWriter struct {
	w *bufio.Writer
	n int // records written
}

func newFastaWriter(w io.Writer) *fastaWriter {
	return &fastaWriter{w: bufio.NewWriter(w)}
}

func (fw *fastaWriter) writeRecord(id, seq string) error {
	_, err := fmt.Fprintf(fw.w, ">%s\n%s\n", sanitizeID(id), seq)
	if err == nil {
		fw.n++
	}
	return err
}

func (fw *fastaWriter) flush() error { return fw.w.Flush() }

// createOutput creates dir as needed and truncates dir/name.
func createOutput(dir, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, err
	}
	return os.Create(filepath.Join(dir, name))
}

type fastaRecord struct {
	id  string
	seq string
}

// readFasta loads every record of a FASTA stream. Wrapped sequence
// lines are concatenated; an identifier ends at the first space.
func readFasta(rdr io.Reader) ([]fastaRecord, error) {
	scanner := bufio.NewScanner(rdr)
	scanner.Buffer(nil, 64*1024*1024)
	var recs []fastaRecord
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			id := strings.TrimPrefix(line, ">")
			if i := strings.IndexByte(id, ' '); i >= 0 {
				id = id[:i]
			}
			recs = append(recs, fastaRecord{id: id})
		} else if len(recs) > 0 {
			recs[len(recs)-1].seq += line
		}
	}
	return recs, scanner.Err()
}
