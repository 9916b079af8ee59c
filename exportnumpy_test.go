package main

import (
	"bytes"
	"os"

	"github.com/kshedden/gonpy"
	"gopkg.in/check.v1"
)

type exportSuite struct{}

var _ = check.Suite(&exportSuite{})

func (s *exportSuite) TestExportMatrix(c *check.C) {
	indir := c.MkDir()
	infile := writeFile(c, indir, "counts.txt", ""+
		"cbc1 anchA tgtX 3\n"+
		"cbc1 anchA tgtX 2\n"+
		"cbc1 anchB tgtX 5\n"+
		"cbc2 anchA tgtZ 7\n")
	var stdout bytes.Buffer
	exited := (&exportNumpy{}).RunCommand("export-numpy", []string{"-i", infile}, &bytes.Buffer{}, &stdout, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	npy, err := gonpy.NewReader(&stdout)
	c.Assert(err, check.IsNil)
	c.Check(npy.Shape, check.DeepEquals, []int{2, 2})
	vals, err := npy.GetInt64()
	c.Assert(err, check.IsNil)
	// rows cbc1, cbc2; columns anchA, anchB, first-seen order
	c.Check(vals, check.DeepEquals, []int64{5, 5, 7, 0})
}

func (s *exportSuite) TestExportFiltered(c *check.C) {
	indir := c.MkDir()
	infile := writeFile(c, indir, "counts.txt", ""+
		"cbc1 anchA tgtX 3\n"+
		"cbc1 anchB tgtX 5\n"+
		"cbc1 anchA tgtY 1\n")
	var stdout bytes.Buffer
	exited := (&exportNumpy{}).RunCommand("export-numpy", []string{"-i", infile, "-filtered"}, &bytes.Buffer{}, &stdout, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	npy, err := gonpy.NewReader(&stdout)
	c.Assert(err, check.IsNil)
	c.Check(npy.Shape, check.DeepEquals, []int{1, 2})
	vals, err := npy.GetInt64()
	c.Assert(err, check.IsNil)
	// tgtX was universal for cbc1: only anchA's tgtY count survives
	c.Check(vals, check.DeepEquals, []int64{1, 0})
}

func (s *exportSuite) TestExportMissingInput(c *check.C) {
	var stdout, stderr bytes.Buffer
	exited := (&exportNumpy{}).RunCommand("export-numpy", []string{"-sample", "S1", "-i", c.MkDir()}, &bytes.Buffer{}, &stdout, &stderr)
	c.Check(exited, check.Equals, 1)
	c.Check(stdout.Len(), check.Equals, 0)
}

func (s *exportSuite) TestExportToFile(c *check.C) {
	indir := c.MkDir()
	infile := writeFile(c, indir, "counts.txt", "cbc1 anchA tgtX 3\n")
	outfile := indir + "/counts.npy"
	var stdout, stderr bytes.Buffer
	exited := (&exportNumpy{}).RunCommand("export-numpy", []string{"-i", infile, "-o", outfile}, &bytes.Buffer{}, &stdout, &stderr)
	c.Assert(exited, check.Equals, 0, check.Commentf("stderr: %s", stderr.String()))
	f, err := os.Open(outfile)
	c.Assert(err, check.IsNil)
	defer f.Close()
	npy, err := gonpy.NewReader(f)
	c.Assert(err, check.IsNil)
	c.Check(npy.Shape, check.DeepEquals, []int{1, 1})
}
