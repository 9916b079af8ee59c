package main

import (
	"fmt"
	"math/bits"
)

// targetCount is one aggregated (target, count) pair under an anchor.
type targetCount struct {
	target string
	count  int64
}

// anchorEntry holds one anchor's aggregated targets in arrival order.
// total is the sum of every observation count seen under the anchor,
// including targets later removed by the universal filter.
type anchorEntry struct {
	name    string
	total   int64
	targets []targetCount
	index   map[string]int // target -> position in targets
}

// anchorSet is a bitset over dense anchor indexes within one barcode.
type anchorSet []uint64

func (s anchorSet) with(i int) anchorSet {
	for len(s) <= i/64 {
		s = append(s, 0)
	}
	s[i/64] |= 1 << (uint(i) % 64)
	return s
}

func (s anchorSet) size() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// barcodeGroup is the complete aggregated state for one barcode:
// anchors in arrival order, one summed count per (anchor, target), and
// a per-target record of which anchors it occurred under.
type barcodeGroup struct {
	barcode       string
	anchors       []anchorEntry
	anchorIndex   map[string]int
	targetAnchors map[string]anchorSet
}

func newBarcodeGroup(barcode string) *barcodeGroup {
	return &barcodeGroup{
		barcode:       barcode,
		anchorIndex:   map[string]int{},
		targetAnchors: map[string]anchorSet{},
	}
}

func (g *barcodeGroup) add(anchor, target string, count int64) {
	ai, ok := g.anchorIndex[anchor]
	if !ok {
		ai = len(g.anchors)
		g.anchorIndex[anchor] = ai
		g.anchors = append(g.anchors, anchorEntry{name: anchor, index: map[string]int{}})
	}
	ent := &g.anchors[ai]
	ent.total += count
	ti, ok := ent.index[target]
	if !ok {
		ti = len(ent.targets)
		ent.index[target] = ti
		ent.targets = append(ent.targets, targetCount{target: target})
	}
	ent.targets[ti].count += count
	g.targetAnchors[target] = g.targetAnchors[target].with(ai)
}

// groupSink receives each completed barcode group exactly once.
type groupSink func(*barcodeGroup) error

// aggregator folds observations into barcode groups and hands each
// completed group to its sink.
type aggregator interface {
	add(obs observation) error
	finish() error
}

// hashAggregator accepts input in any order and buffers every barcode
// seen, delivering groups in barcode first-seen order at finish.
// Memory grows with the number of distinct (barcode, anchor, target)
// triples.
type hashAggregator struct {
	sink   groupSink
	groups map[string]*barcodeGroup
	order  []string
}

func newHashAggregator(sink groupSink) *hashAggregator {
	return &hashAggregator{sink: sink, groups: map[string]*barcodeGroup{}}
}

func (agg *hashAggregator) add(obs observation) error {
	g, ok := agg.groups[obs.barcode]
	if !ok {
		g = newBarcodeGroup(obs.barcode)
		agg.groups[obs.barcode] = g
		agg.order = append(agg.order, obs.barcode)
	}
	g.add(obs.anchor, obs.target, obs.count)
	return nil
}

func (agg *hashAggregator) finish() error {
	for _, barcode := range agg.order {
		if err := agg.sink(agg.groups[barcode]); err != nil {
			return err
		}
	}
	return nil
}

// streamAggregator requires input grouped by barcode and keeps state
// for the current barcode only. A barcode reappearing after its group
// was flushed means the input was not grouped; that fails the run
// rather than emitting a second, incomplete record for the barcode.
type streamAggregator struct {
	sink    groupSink
	cur     *barcodeGroup
	flushed map[string]bool
}

func newStreamAggregator(sink groupSink) *streamAggregator {
	return &streamAggregator{sink: sink, flushed: map[string]bool{}}
}

func (agg *streamAggregator) add(obs observation) error {
	if agg.cur != nil && agg.cur.barcode != obs.barcode {
		if err := agg.flush(); err != nil {
			return err
		}
	}
	if agg.cur == nil {
		if agg.flushed[obs.barcode] {
			return fmt.Errorf("input not grouped by barcode: %q reappeared after its group was flushed", obs.barcode)
		}
		agg.cur = newBarcodeGroup(obs.barcode)
	}
	agg.cur.add(obs.anchor, obs.target, obs.count)
	return nil
}

func (agg *streamAggregator) flush() error {
	g := agg.cur
	agg.cur = nil
	agg.flushed[g.barcode] = true
	return agg.sink(g)
}

func (agg *streamAggregator) finish() error {
	if agg.cur == nil {
		return nil
	}
	return agg.flush()
}
