// Package seqdiff reports positional edits between two assembled
// barcode sequences.
package seqdiff

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Variant is one edit turning a stretch of the first sequence into a
// stretch of the second.
type Variant struct {
	Position int    // 1-based position in the first sequence
	Ref      string // text removed from the first sequence
	New      string // text inserted from the second sequence
}

func (v Variant) String() string {
	switch {
	case len(v.Ref) == 0:
		return fmt.Sprintf("%dins%s", v.Position, v.New)
	case len(v.New) == 0:
		return fmt.Sprintf("%ddel%s", v.Position, v.Ref)
	default:
		return fmt.Sprintf("%d%s>%s", v.Position, v.Ref, v.New)
	}
}

// Diff returns the edits that turn a into b, in order of position. An
// adjacent delete/insert pair is reported as a single replacement.
func Diff(a, b string) []Variant {
	dmp := diffmatchpatch.New()
	diffs := mergeRuns(dmp.DiffCleanupEfficiency(dmp.DiffMain(a, b, false)))
	pos := 1
	var variants []Variant
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			pos += len(d.Text)
		case diffmatchpatch.DiffDelete:
			v := Variant{Position: pos, Ref: d.Text}
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				v.New = diffs[i+1].Text
				i++
			}
			variants = append(variants, v)
			pos += len(v.Ref)
		case diffmatchpatch.DiffInsert:
			v := Variant{Position: pos, New: d.Text}
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffDelete {
				v.Ref = diffs[i+1].Text
				i++
				pos += len(v.Ref)
			}
			variants = append(variants, v)
		}
	}
	return variants
}

// mergeRuns collapses adjacent hunks of the same type.
func mergeRuns(in []diffmatchpatch.Diff) []diffmatchpatch.Diff {
	var out []diffmatchpatch.Diff
	for _, d := range in {
		if n := len(out); n > 0 && out[n-1].Type == d.Type {
			out[n-1].Text += d.Text
			continue
		}
		out = append(out, d)
	}
	return out
}
