// 18 Mar 2025

// Package gblocks glues the pieces together: read sequences, align
// them if necessary, work out which columns to keep and write the
// trimmed alignment out.
package gblocks

import (
	"fmt"
	"os"
	"time"

	"github.com/SYeon-424/GBlocks/pkg/seq"
	"github.com/SYeon-424/GBlocks/pkg/star"
	"github.com/SYeon-424/GBlocks/pkg/trim"
)

// An Aligner turns a group of unaligned sequences into an alignment.
// The pipeline only needs this one method, so anything with a better
// idea than our center-star aligner can slot in.
type Aligner interface {
	Align(seqgrp *seq.SeqGrp) (*seq.SeqGrp, error)
}

// StarAligner is the default Aligner, a thin wrapper around the
// center-star code.
type StarAligner struct {
	Opts star.Options
}

func (a *StarAligner) Align(seqgrp *seq.SeqGrp) (*seq.SeqGrp, error) {
	return star.Align(seqgrp, &a.Opts)
}

// Trim is the pipeline core. If the group is not an alignment it is
// sent to the aligner first, or rejected when there is none. The
// returned group is new, the input is not touched.
func Trim(seqgrp *seq.SeqGrp, p *trim.Params, al Aligner) (*seq.SeqGrp, *trim.Result, error) {
	if !seqgrp.SameLens() {
		if al == nil {
			return nil, nil, fmt.Errorf("input is not an alignment: %w", seq.ErrDiffLens)
		}
		var err error // stray gaps from some earlier alignment go first
		if seqgrp, err = al.Align(seqgrp.GapsRmvd()); err != nil {
			return nil, nil, fmt.Errorf("aligning input: %w", err)
		}
	}
	stats, err := trim.Analyze(seqgrp, p)
	if err != nil {
		return nil, nil, err
	}
	res, err := trim.Select(stats, p)
	if err != nil {
		return nil, nil, err
	}
	return trim.Apply(seqgrp, res), res, nil
}

// CmdFlag holds everything the command line can set. Thresholds come
// in two flavours, fractions of the number of sequences or, if
// GbCounts is set, the plain sequence counts Gblocks asks for.
type CmdFlag struct {
	MinBlockLen    int     // shortest block worth keeping
	MaxGap         string  // "None", "Half", "All" or a fraction
	MinCons        float64 // conservation threshold as a fraction
	FlankCons      float64 // flank threshold, negative means same as MinCons
	MaxNonconsRun  int     // longest non-conserved run inside a block
	DropAllGapCols bool    // drop columns that are nothing but gaps
	GbCounts       bool    // thresholds below are counts, not fractions
	GbMinCons      int     // minimum sequences for a conserved position
	GbFlankCons    int     // minimum sequences for a flank position
	NoAlign        bool    // refuse unaligned input instead of aligning it
	NWorker        int     // workers for the alignment distance pass
	Time           bool    // print run time when done
}

// params turns the flags into the ratio form the trimming code wants.
// The count form needs to know how many sequences we have.
func (flags *CmdFlag) params(nseq int) (*trim.Params, error) {
	if flags.GbCounts {
		g := trim.GbParams{
			MinConsCount:   flags.GbMinCons,
			FlankConsCount: flags.GbFlankCons,
			MaxNonconsRun:  flags.MaxNonconsRun,
			MinBlockLen:    flags.MinBlockLen,
			AllowedGap:     flags.MaxGap,
			DropAllGapCols: flags.DropAllGapCols,
		}
		return g.ToParams(nseq)
	}
	maxGap, err := trim.GapMode(flags.MaxGap)
	if err != nil {
		return nil, err
	}
	p := &trim.Params{
		MinBlockLen:    flags.MinBlockLen,
		MaxGapFrac:     maxGap,
		MinConsFrac:    float32(flags.MinCons),
		FlankConsFrac:  float32(flags.FlankCons),
		MaxNonconsRun:  flags.MaxNonconsRun,
		DropAllGapCols: flags.DropAllGapCols,
	}
	if err := p.Check(); err != nil {
		return nil, err
	}
	return p, nil
}

// Mymain is what the command line wrapper calls.
func Mymain(flags *CmdFlag, infile, outfile string) error {
	if flags.Time {
		startTime := time.Now()
		end := func() { // Wrapping in a closure is helpful. Gives the right time.
			fmt.Println("finished after", time.Since(startTime).Milliseconds(), "ms")
		}
		defer end()
	}
	s_opts := &seq.Options{DiffLenSeq: true}

	seqgrp, err := seq.Readfile(infile, s_opts)
	if err != nil {
		return fmt.Errorf("fail reading sequences: %w", err)
	}
	if err = seqgrp.Upper(); err != nil {
		return err
	}
	p, err := flags.params(seqgrp.NSeq())
	if err != nil {
		return err
	}
	var al Aligner
	if !flags.NoAlign {
		al = &StarAligner{Opts: star.Options{NWorker: flags.NWorker}}
	}
	out, res, err := Trim(seqgrp, p, al)
	if err != nil {
		return err
	}
	if err = seq.WriteToF(outfile, out.SeqSlc(), s_opts); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "kept %d of %d columns in %d blocks\n",
		res.Kept, res.NCols, len(res.Blocks))
	return nil
}
