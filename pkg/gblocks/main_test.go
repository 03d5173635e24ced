// 18 Mar 2025
package gblocks_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SYeon-424/GBlocks/pkg/gblocks"
	"github.com/SYeon-424/GBlocks/pkg/seq"
	"github.com/SYeon-424/GBlocks/pkg/seq/common"
	"github.com/SYeon-424/GBlocks/pkg/trim"
)

// tightParams keeps short blocks and tolerates no gaps at all, handy
// for the tiny alignments used here.
func tightParams(minLen int) *trim.Params {
	return &trim.Params{
		MinBlockLen:   minLen,
		MaxGapFrac:    0,
		MinConsFrac:   0.7,
		FlankConsFrac: -1,
	}
}

func rows(seqgrp *seq.SeqGrp) []string {
	var out []string
	for _, s := range seqgrp.SeqSlc() {
		out = append(out, string(s.GetSeq()))
	}
	return out
}

func TestTrimAligned(t *testing.T) {
	seqgrp := seq.Str2SeqGrp([]string{"AC-GT", "AC-GT", "ACAGT"}, "s")
	out, res, err := gblocks.Trim(seqgrp, tightParams(2), nil)
	require.NoError(t, err)
	assert.Equal(t, []trim.Block{{Start: 0, End: 2}, {Start: 3, End: 5}}, res.Blocks)
	assert.Equal(t, 4, res.Kept)
	assert.Equal(t, []string{"ACGT", "ACGT", "ACGT"}, rows(out))
	for _, s := range seqgrp.SeqSlc() { // input untouched
		assert.Equal(t, 5, s.Len())
	}
}

// Sequences of different lengths should be aligned before trimming.
func TestTrimUnaligned(t *testing.T) {
	seqgrp := seq.Str2SeqGrp([]string{"ACGT", "AGT", "ACT"}, "s")
	out, res, err := gblocks.Trim(seqgrp, tightParams(1), &gblocks.StarAligner{})
	require.NoError(t, err)
	// aligned rows are ACGT / A-GT / AC-T, so only the flanking
	// columns are both conserved and gap free
	assert.Equal(t, 4, res.NCols)
	assert.Equal(t, []string{"AT", "AT", "AT"}, rows(out))
}

func TestTrimUnalignedNoAligner(t *testing.T) {
	seqgrp := seq.Str2SeqGrp([]string{"ACGT", "AGT"}, "s")
	_, _, err := gblocks.Trim(seqgrp, tightParams(1), nil)
	assert.ErrorIs(t, err, seq.ErrDiffLens)
}

func TestTrimZeroBlocks(t *testing.T) {
	seqgrp := seq.Str2SeqGrp([]string{"A-G", "-C-", "--T"}, "s")
	out, res, err := gblocks.Trim(seqgrp, tightParams(1), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Blocks)
	assert.Equal(t, 3, res.Dropped)
	assert.Equal(t, 0, out.GetLen())
	assert.Equal(t, 3, out.NSeq())
}

func TestFlagParams(t *testing.T) {
	flags := gblocks.CmdFlag{
		MinBlockLen: 10, MaxGap: "half", MinCons: 0.7, FlankCons: -1}
	p, err := gblocks.FlagParams(&flags, 20)
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), p.MaxGapFrac)
	assert.Equal(t, float32(0.7), p.MinConsFrac)

	flags = gblocks.CmdFlag{
		MinBlockLen: 10, MaxGap: "none", GbCounts: true,
		GbMinCons: 9, GbFlankCons: 14}
	p, err = gblocks.FlagParams(&flags, 20)
	require.NoError(t, err)
	assert.Equal(t, float32(0.45), p.MinConsFrac)
	assert.Equal(t, float32(0.70), p.FlankConsFrac)

	flags.MaxGap = "most" // not a mode we know
	_, err = gblocks.FlagParams(&flags, 20)
	assert.ErrorIs(t, err, trim.ErrBadParam)
}

func TestMymain(t *testing.T) {
	fasta := `>s1
AC-GT
>s2
AC-GT
>s3
ACAGT
`
	infile, err := common.WrtTemp(fasta)
	require.NoError(t, err)
	defer os.Remove(infile)
	outfile := filepath.Join(t.TempDir(), "out.fa")

	flags := gblocks.CmdFlag{
		MinBlockLen: 2, MaxGap: "none", MinCons: 0.7, FlankCons: -1}
	require.NoError(t, gblocks.Mymain(&flags, infile, outfile))

	got, err := seq.Readfile(outfile, &seq.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ACGT", "ACGT", "ACGT"}, rows(got))

	// same thresholds, but given as sequence counts
	flags = gblocks.CmdFlag{
		MinBlockLen: 2, MaxGap: "none", GbCounts: true,
		GbMinCons: 3, GbFlankCons: 3}
	require.NoError(t, gblocks.Mymain(&flags, infile, outfile))
	got, err = seq.Readfile(outfile, &seq.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ACGT", "ACGT", "ACGT"}, rows(got))
}

func TestMymainUnaligned(t *testing.T) {
	fasta := `>s1
ACGT
>s2
AGT
>s3
ACT
`
	infile, err := common.WrtTemp(fasta)
	require.NoError(t, err)
	defer os.Remove(infile)
	outfile := filepath.Join(t.TempDir(), "out.fa")

	flags := gblocks.CmdFlag{
		MinBlockLen: 1, MaxGap: "none", MinCons: 0.7, FlankCons: -1}
	require.NoError(t, gblocks.Mymain(&flags, infile, outfile))
	got, err := seq.Readfile(outfile, &seq.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"AT", "AT", "AT"}, rows(got))

	flags.NoAlign = true
	err = gblocks.Mymain(&flags, infile, outfile)
	assert.ErrorIs(t, err, seq.ErrDiffLens)
}
