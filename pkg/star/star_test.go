package star_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SYeon-424/GBlocks/pkg/randseq"
	"github.com/SYeon-424/GBlocks/pkg/seq"
	"github.com/SYeon-424/GBlocks/pkg/star"
)

// gapless throws the gaps out of an aligned sequence.
func gapless(s []byte) string {
	t := make([]byte, 0, len(s))
	for _, c := range s {
		if c != '-' {
			t = append(t, c)
		}
	}
	return string(t)
}

func TestCenterPick(t *testing.T) {
	seqgrp := seq.Str2SeqGrp([]string{"ACGT", "AGT", "ACT"})
	center, err := star.Center(seqgrp, nil)
	require.NoError(t, err)
	// ACGT has distance 1/4 to each of the others. AGT and ACT are
	// further from each other than either is from ACGT.
	assert.Equal(t, 0, center)
}

func TestThreeSeqs(t *testing.T) {
	seqgrp := seq.Str2SeqGrp([]string{"ACGT", "AGT", "ACT"})
	aligned, err := star.Align(seqgrp, nil)
	require.NoError(t, err)

	require.Equal(t, 3, aligned.NSeq())
	require.NoError(t, aligned.CheckLens())
	got := make([]string, 3)
	for i, ss := range aligned.SeqSlc() {
		got[i] = string(ss.GetSeq())
	}
	assert.Equal(t, []string{"ACGT", "A-GT", "AC-T"}, got)

	for i, ss := range aligned.SeqSlc() { // no residue reordering
		assert.Equal(t, string(seqgrp.SeqSlc()[i].GetSeq()),
			gapless(ss.GetSeq()), "seq %d", i)
	}
}

// TestInsertion widens the center coordinate system: the third
// sequence carries a T the center does not have.
func TestInsertion(t *testing.T) {
	seqgrp := seq.Str2SeqGrp([]string{"AAAA", "AAAA", "AATAA"})
	aligned, err := star.Align(seqgrp, nil)
	require.NoError(t, err)

	got := make([]string, 3)
	for i, ss := range aligned.SeqSlc() {
		got[i] = string(ss.GetSeq())
	}
	assert.Equal(t, []string{"AA-AA", "AA-AA", "AATAA"}, got)
}

func TestTooFew(t *testing.T) {
	_, err := star.Align(seq.Str2SeqGrp([]string{"ACGT"}), nil)
	assert.ErrorIs(t, err, star.ErrTooFew)

	_, err = star.Align(seq.Str2SeqGrp([]string{}), nil)
	assert.ErrorIs(t, err, star.ErrTooFew)
}

func TestEmptyMember(t *testing.T) {
	_, err := star.Align(seq.Str2SeqGrp([]string{"ACGT", ""}), nil)
	assert.ErrorIs(t, err, seq.ErrEmptySeq)
}

// TestRandInvariants aligns mutated relatives of one random sequence
// and checks the things that must hold for any center-star result.
func TestRandInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	base := randseq.New(rnd, randseq.DNA, 80)
	raw := make([]string, 6)
	for i := range raw {
		s := append([]byte(nil), base...)
		randseq.Mutate(rnd, randseq.DNA, 0.15, s)
		if i%2 == 1 {
			var err error
			s, err = randseq.DelN(rnd, 5, s)
			require.NoError(t, err)
		}
		raw[i] = string(s)
	}
	seqgrp := seq.Str2SeqGrp(raw)
	aligned, err := star.Align(seqgrp, &star.Options{NWorker: 3})
	require.NoError(t, err)

	require.Equal(t, len(raw), aligned.NSeq())
	require.NoError(t, aligned.CheckLens())
	for i, ss := range aligned.SeqSlc() {
		assert.Equal(t, raw[i], gapless(ss.GetSeq()), "seq %d reordered", i)
		assert.Equal(t, seqgrp.SeqSlc()[i].Cmmt(), ss.Cmmt())
	}

	// determinism across runs and worker counts
	again, err := star.Align(seqgrp, &star.Options{NWorker: 1})
	require.NoError(t, err)
	for i := range raw {
		assert.Equal(t, string(aligned.SeqSlc()[i].GetSeq()),
			string(again.SeqSlc()[i].GetSeq()))
	}
}
