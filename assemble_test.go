package main

import (
	"gopkg.in/check.v1"
)

type assembleSuite struct{}

var _ = check.Suite(&assembleSuite{})

func twoAnchorGroup() *barcodeGroup {
	g := newBarcodeGroup("cbc1")
	g.add("anchA", "tgtX", 3)
	g.add("anchA", "tgtX", 2)
	g.add("anchB", "tgtX", 5)
	g.add("anchB", "tgtY", 1)
	return g
}

func (s *assembleSuite) TestWeightOrder(c *check.C) {
	g := twoAnchorGroup()
	dropUniversalTargets(g)
	// anchB outweighs anchA (6 vs 5, observed pre-filter); tgtX was
	// universal, so anchA remains as an anchor-only segment
	c.Check(assemble(g, orderByWeight), check.Equals, "anchBtgtYanchA")
}

func (s *assembleSuite) TestArrivalOrder(c *check.C) {
	g := twoAnchorGroup()
	dropUniversalTargets(g)
	c.Check(assemble(g, orderByArrival), check.Equals, "anchAanchBtgtY")
}

func (s *assembleSuite) TestDeterminism(c *check.C) {
	for _, policy := range []orderPolicy{orderByWeight, orderByArrival} {
		g := twoAnchorGroup()
		dropUniversalTargets(g)
		first := assemble(g, policy)
		for i := 0; i < 5; i++ {
			c.Check(assemble(g, policy), check.Equals, first)
		}
	}
}

func (s *assembleSuite) TestWeightTieBreaks(c *check.C) {
	g := newBarcodeGroup("cbc1")
	g.add("anchB", "tgtQ", 2)
	g.add("anchB", "tgtP", 2)
	g.add("anchA", "tgtR", 4)
	// totals tie at 4: anchor name ascending; target counts tie at 2:
	// target ascending
	c.Check(assemble(g, orderByWeight), check.Equals, "anchAtgtRanchBtgtPtgtQ")
}

func (s *assembleSuite) TestTargetsByCountDesc(c *check.C) {
	g := newBarcodeGroup("cbc1")
	g.add("anchA", "tgtLow", 1)
	g.add("anchA", "tgtHigh", 9)
	g.add("anchA", "tgtMid", 5)
	c.Check(assemble(g, orderByWeight), check.Equals, "anchAtgtHightgtMidtgtLow")
	c.Check(assemble(g, orderByArrival), check.Equals, "anchAtgtLowtgtHightgtMid")
}

func (s *assembleSuite) TestParseOrderPolicy(c *check.C) {
	policy, err := parseOrderPolicy("weight")
	c.Check(err, check.IsNil)
	c.Check(policy, check.Equals, orderByWeight)
	policy, err = parseOrderPolicy("arrival")
	c.Check(err, check.IsNil)
	c.Check(policy, check.Equals, orderByArrival)
	_, err = parseOrderPolicy("alphabetical")
	c.Check(err, check.NotNil)
}
