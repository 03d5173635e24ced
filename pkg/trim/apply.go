// Turning a selection back into sequences.

package trim

import (
	"github.com/SYeon-424/GBlocks/pkg/seq"
)

// Apply copies the retained columns into a fresh group. The input
// group must be the one the Result was computed from; it is not
// touched. With zero blocks the output sequences are empty, which is
// what the caller asked for.
func Apply(seqgrp *seq.SeqGrp, res *Result) *seq.SeqGrp {
	mask := make([]bool, res.NCols)
	for _, b := range res.Blocks {
		for i := b.Start; i < b.End; i++ {
			mask[i] = true
		}
	}

	out := make([]seq.Seq, 0, seqgrp.NSeq())
	for _, ss := range seqgrp.SeqSlc() {
		s := ss.GetSeq()
		b := make([]byte, 0, res.Kept)
		for i, c := range s {
			if mask[i] {
				b = append(b, c)
			}
		}
		out = append(out, seq.NewSeq(ss.Cmmt(), b))
	}
	return seq.GrpFromSeqs(out)
}
