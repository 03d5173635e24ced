// 16 Mar 2025

// Package star builds a multiple sequence alignment the center-star
// way. One sequence, the center, is the one with the smallest summed
// distance to everybody else. Every other sequence is aligned to the
// center on its own, and the pairwise results are merged by widening
// the center's coordinate system wherever anybody needed an insertion.
// Insertions from different sequences at the same center position
// share the widened columns, sized by the longest insertion and each
// left aligned; they are not laid out one after the other.
// It is the fallback when no proper aligner output is available. It
// keeps sequences in their original order and is deterministic, but
// it is not trying to compete with a real aligner.
package star

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/SYeon-424/GBlocks/pkg/gotoh"
	"github.com/SYeon-424/GBlocks/pkg/seq"
	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
)

var ErrTooFew = errors.New("need at least two sequences to align")

// Options for the aligner.
type Options struct {
	Schm    *gotoh.Scheme // nil means gotoh.DfltScheme
	NWorker int           // workers for the distance pass, 0 means GOMAXPROCS
}

func (o *Options) scheme() *gotoh.Scheme {
	if o == nil || o.Schm == nil {
		return &gotoh.DfltScheme
	}
	return o.Schm
}

func (o *Options) nWorker() int {
	if o == nil || o.NWorker < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return o.NWorker
}

// checkInput rejects groups we cannot align.
func checkInput(seqgrp *seq.SeqGrp) error {
	if seqgrp.NSeq() < 2 {
		return fmt.Errorf("%w, got %d", ErrTooFew, seqgrp.NSeq())
	}
	for i, ss := range seqgrp.SeqSlc() {
		if ss.Len() == 0 {
			return fmt.Errorf("seq %d %q: %w", i,
				ss.Cmmt(), seq.ErrEmptySeq)
		}
	}
	return nil
}

// Center returns the index of the sequence with the smallest summed
// pairwise distance to all the others. Ties go to the lowest index.
// The pairwise alignments are independent of each other, so they are
// farmed out to a little pool of workers. Each worker writes to its
// own slots of the distance table and the summing afterwards is
// sequential, so the answer does not depend on scheduling.
func Center(seqgrp *seq.SeqGrp, opts *Options) (int, error) {
	if err := checkInput(seqgrp); err != nil {
		return -1, err
	}
	n := seqgrp.NSeq()
	seqs := seqgrp.SeqSlc()
	schm := opts.scheme()

	dist := make([][]float32, n)
	for i := range dist {
		dist[i] = make([]float32, n)
	}

	type job struct{ i, j int }
	jobs := make(chan job, 32)
	var wg sync.WaitGroup
	for w := 0; w < opts.nWorker(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for jb := range jobs {
				s, t := seqs[jb.i].GetSeq(), seqs[jb.j].GetSeq()
				pairlist, _ := gotoh.AlignPair(s, t, schm)
				dist[jb.i][jb.j] = gotoh.Distance(pairlist, s, t)
			}
		}()
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			jobs <- job{i, j}
		}
	}
	close(jobs)
	wg.Wait()

	sums := make([]float32, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sums[i] += dist[i][j]
			sums[j] += dist[i][j]
		}
	}
	center := 0
	for i := 1; i < n; i++ {
		if sums[i] < sums[center] {
			center = i
		}
	}
	return center, nil
}

// Align aligns a group of raw sequences and returns a new group in
// which all sequences have the same length. The input group is left
// alone.
func Align(seqgrp *seq.SeqGrp, opts *Options) (*seq.SeqGrp, error) {
	center, err := Center(seqgrp, opts)
	if err != nil {
		return nil, err
	}

	n := seqgrp.NSeq()
	seqs := seqgrp.SeqSlc()
	schm := opts.scheme()
	cSeq := seqs[center].GetSeq()
	L := len(cSeq)

	// For each sequence: the symbol sitting at each center position,
	// and whatever it inserts before each center position. Anchor L
	// collects insertions after the last center position.
	master := make([]int, L+1) // widened column count per anchor
	ins := make([][][]byte, n)
	mrow := make([][]byte, n)

	for k := 0; k < n; k++ {
		if k == center {
			mrow[k] = cSeq
			ins[k] = make([][]byte, L+1)
			continue
		}
		t := seqs[k].GetSeq()
		pairlist, _ := gotoh.AlignPair(cSeq, t, schm)
		insK := make([][]byte, L+1)
		mK := make([]byte, L)
		ci := 0 // anchor: the next center position
		for _, p := range pairlist {
			if p.I == -1 {
				insK[ci] = append(insK[ci], t[p.J])
				continue
			}
			if p.J == -1 {
				mK[p.I] = GapChar
			} else {
				mK[p.I] = t[p.J]
			}
			ci = p.I + 1
		}
		for a := 0; a <= L; a++ {
			if len(insK[a]) > master[a] {
				master[a] = len(insK[a])
			}
		}
		ins[k], mrow[k] = insK, mK
	}

	wide := L
	for _, m := range master {
		wide += m
	}

	out := make([]seq.Seq, 0, n)
	for k := 0; k < n; k++ {
		buf := make([]byte, 0, wide)
		for a := 0; a < L; a++ {
			buf = project(buf, ins[k][a], master[a])
			buf = append(buf, mrow[k][a])
		}
		buf = project(buf, ins[k][L], master[L])
		out = append(out, seq.NewSeq(seqs[k].Cmmt(), buf))
	}
	return seq.GrpFromSeqs(out), nil
}

// project writes one widened insertion region: the sequence's own
// inserted characters first, then gap padding up to the region width.
// Insertions from different sequences at the same anchor share these
// columns, each left aligned.
func project(buf, insert []byte, width int) []byte {
	buf = append(buf, insert...)
	for i := len(insert); i < width; i++ {
		buf = append(buf, GapChar)
	}
	return buf
}
