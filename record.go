package main

import (
	"strconv"
	"strings"
)

// observation is one parsed input row: how many times target was seen
// under anchor in barcode.
type observation struct {
	barcode string
	anchor  string
	target  string
	count   int64
}

// splitColumns splits a row on tabs if it contains any, otherwise on
// runs of whitespace.
func splitColumns(line string) []string {
	if strings.IndexByte(line, '\t') >= 0 {
		return strings.Split(line, "\t")
	}
	return strings.Fields(line)
}

// parseRow turns one raw line into an observation. Rows are dropped
// without error when they have the wrong column count, an empty anchor
// or target, or a count that is not a non-negative base-10 integer.
// Header rows fall out of the last rule: their count column is a word
// like "count", so the first line of a headered file never parses.
// 5-column rows carry a leading provenance field that is discarded.
func parseRow(line string) (observation, bool) {
	cols := splitColumns(strings.TrimSpace(line))
	if len(cols) == 5 {
		cols = cols[1:]
	} else if len(cols) != 4 {
		return observation{}, false
	}
	count, err := strconv.ParseInt(cols[3], 10, 64)
	if err != nil || count < 0 {
		return observation{}, false
	}
	if cols[1] == "" || cols[2] == "" {
		return observation{}, false
	}
	return observation{
		barcode: cols[0],
		anchor:  cols[1],
		target:  cols[2],
		count:   count,
	}, true
}
