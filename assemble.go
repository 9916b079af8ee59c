package main

import (
	"fmt"
	"sort"
	"strings"
)

// orderPolicy selects how anchors and targets are ordered during
// sequence assembly.
type orderPolicy int

const (
	// orderByWeight sorts anchors by total observed count descending,
	// anchor name ascending on ties, and targets within an anchor by
	// count descending, target ascending on ties. Anchor totals are
	// the pre-filter sums, so both aggregation strategies order the
	// same way.
	orderByWeight orderPolicy = iota
	// orderByArrival keeps anchors and targets in the order they were
	// first encountered during aggregation.
	orderByArrival
)

func parseOrderPolicy(name string) (orderPolicy, error) {
	switch name {
	case "weight":
		return orderByWeight, nil
	case "arrival":
		return orderByArrival, nil
	default:
		return 0, fmt.Errorf("unknown ordering policy %q (want \"weight\" or \"arrival\")", name)
	}
}

// assemble concatenates g's anchors and their remaining targets into
// the barcode's synthetic sequence, with no separators. An anchor that
// lost every target still contributes its own token.
func assemble(g *barcodeGroup, policy orderPolicy) string {
	anchors := make([]*anchorEntry, len(g.anchors))
	for i := range g.anchors {
		anchors[i] = &g.anchors[i]
	}
	if policy == orderByWeight {
		sort.Slice(anchors, func(i, j int) bool {
			if anchors[i].total != anchors[j].total {
				return anchors[i].total > anchors[j].total
			}
			return anchors[i].name < anchors[j].name
		})
	}
	var seq strings.Builder
	for _, ent := range anchors {
		seq.WriteString(ent.name)
		targets := ent.targets
		if policy == orderByWeight {
			targets = append([]targetCount(nil), targets...)
			sort.Slice(targets, func(i, j int) bool {
				if targets[i].count != targets[j].count {
					return targets[i].count > targets[j].count
				}
				return targets[i].target < targets[j].target
			})
		}
		for _, tc := range targets {
			seq.WriteString(tc.target)
		}
	}
	return seq.String()
}
