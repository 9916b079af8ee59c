package main

// dropUniversalTargets removes, from every anchor of g, the targets
// that occur under all of g's anchors. Such targets say nothing about
// any particular anchor. A barcode with a single anchor is left
// untouched, and an anchor whose target list empties out stays in the
// group as an anchor-only entry.
//
// This is a whole-group operation: whether one (anchor, target) pair
// survives depends on every other anchor of the barcode, so it can
// only run once the group is complete.
func dropUniversalTargets(g *barcodeGroup) {
	nAnchors := len(g.anchors)
	if nAnchors < 2 {
		return
	}
	for ai := range g.anchors {
		ent := &g.anchors[ai]
		kept := ent.targets[:0]
		for _, tc := range ent.targets {
			if g.targetAnchors[tc.target].size() == nAnchors {
				continue
			}
			kept = append(kept, tc)
		}
		ent.targets = kept
		ent.index = nil // stale after compaction
	}
}
