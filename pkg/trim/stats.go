// Per-column statistics over an alignment.

package trim

import (
	"github.com/SYeon-424/GBlocks/pkg/seq"
	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
)

// ColStats is everything the block scan wants to know about one
// column. Computed once, read-only afterwards.
type ColStats struct {
	MajorityCount  int     // count of the most frequent non-gap symbol
	GapCount       int     // gap characters in the column
	ConsFrac       float32 // MajorityCount over the number of sequences
	GapFrac        float32 // GapCount over the number of sequences
	Conserved      bool    // ConsFrac reaches the core threshold
	FlankConserved bool    // ConsFrac reaches the flank threshold
	GapRejected    bool    // too gappy, can never be kept
}

// Analyze tallies every column of the alignment and marks it against
// the thresholds in p. One left-to-right pass over the count table
// that the seq package already keeps.
func Analyze(seqgrp *seq.SeqGrp, p *Params) ([]ColStats, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	pr := p.Resolve()
	if seqgrp.NSeq() == 0 {
		return nil, seq.ErrNoSeqs
	}
	if err := seqgrp.CheckLens(); err != nil {
		return nil, err
	}

	counts := seqgrp.Counts()
	gaprow := int(seqgrp.Mapping(GapChar)) // 255 if no gaps anywhere
	nrow, ncol := counts.Size()
	nseq := seqgrp.NSeq()

	stats := make([]ColStats, ncol)
	for i := 0; i < ncol; i++ {
		cs := &stats[i]
		for r := 0; r < nrow; r++ {
			n := int(counts.Mat[r][i])
			if r == gaprow {
				cs.GapCount = n
			} else if n > cs.MajorityCount {
				cs.MajorityCount = n
			}
		}
		cs.ConsFrac = float32(cs.MajorityCount) / float32(nseq)
		cs.GapFrac = float32(cs.GapCount) / float32(nseq)
		cs.Conserved = cs.ConsFrac >= pr.MinConsFrac
		cs.FlankConserved = cs.ConsFrac >= pr.FlankConsFrac
		cs.GapRejected = cs.GapFrac > pr.MaxGapFrac ||
			(pr.DropAllGapCols && cs.GapCount == nseq)
	}
	return stats, nil
}
