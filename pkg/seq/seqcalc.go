// 14 Mar 2025
// seqcalc does the per-site tallies on a set of sequences.
// The functions have to live in this package, since they
// need access to the internals of a sequence.

package seq

import (
	"math"

	"github.com/andrew-torda/matrix"

	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
)

const (
	badMap = math.MaxUint8 // marks a symbol as not seen
)

// SetSymUsed fills out the bool slice which says whether or not a
// symbol was used.
func (seqgrp *SeqGrp) SetSymUsed() {
	for _, ss := range seqgrp.seqs {
		for _, c := range ss.GetSeq() {
			seqgrp.symUsed[c] = true
		}
	}
	seqgrp.usedKnwn = true
}

// mapsyms looks at the symbols (characters, bases, residues) used in a
// seqgrp. It then makes a little array for mapping.
func (seqgrp *SeqGrp) mapsyms() {
	if !seqgrp.usedKnwn {
		seqgrp.SetSymUsed()
	}
	for i := range seqgrp.mapping { // Initialise with bad value, to
		seqgrp.mapping[i] = badMap // trap errors later
	}

	var n uint8
	for i := range seqgrp.symUsed {
		if seqgrp.symUsed[i] {
			seqgrp.mapping[i] = n
			seqgrp.revmap = append(seqgrp.revmap, uint8(i))
			n++
		}
	}
}

// UsageSite counts how many of each symbol/character appear at
// each site in the alignment.
// counts.Mat looks like [number_of_types][length_of_seq].
// We store it as a float32, like every other per-site quantity here.
// Inaccuracy from floats is no problem with the sequence counts we see.
func (seqgrp *SeqGrp) UsageSite() {
	if len(seqgrp.revmap) == 0 {
		seqgrp.mapsyms()
	}
	nrow := len(seqgrp.revmap)
	ncol := seqgrp.GetLen()
	seqgrp.counts = matrix.NewFMatrix2d(nrow, ncol)
	for _, ss := range seqgrp.seqs {
		for i, c := range ss.GetSeq() {
			cmap := seqgrp.mapping[c]
			seqgrp.counts.Mat[cmap][i] += 1
		}
	}
}

// Counts gives access to the per-site tallies, calculating them on
// first use.
func (seqgrp *SeqGrp) Counts() *matrix.FMatrix2d {
	if seqgrp.counts == nil {
		seqgrp.UsageSite()
	}
	return seqgrp.counts
}

// Mapping returns the row in the count table for a character, or
// math.MaxUint8 if the character never appears.
func (seqgrp *SeqGrp) Mapping(c byte) uint8 {
	if len(seqgrp.revmap) == 0 {
		seqgrp.mapsyms()
	}
	return seqgrp.mapping[c]
}

// Revmap returns the character for each row of the count table.
func (seqgrp *SeqGrp) Revmap() []uint8 {
	if len(seqgrp.revmap) == 0 {
		seqgrp.mapsyms()
	}
	return seqgrp.revmap
}

// GapFrac looks in a SeqGrp and returns a slice with the fraction
// of gap characters at each position. If there are no gaps, there
// is no slice so we quietly return nil without signalling an error.
func (seqgrp *SeqGrp) GapFrac() []float32 {
	counts := seqgrp.Counts()
	gappos := seqgrp.Mapping(GapChar)
	if gappos == badMap {
		return nil
	}
	nseq := float32(seqgrp.NSeq())
	gapfrac := make([]float32, seqgrp.GetLen())
	for i, c := range counts.Mat[gappos] {
		gapfrac[i] = c / nseq
	}
	return gapfrac
}
