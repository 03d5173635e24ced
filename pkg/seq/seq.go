// 14 Mar 2025

// Package seq provides the sequence and sequence group types used by
// the trimmer. Sequences usually begin their lives in fasta format.
// The package can read and write them, and it can tally symbol usage
// per alignment column, which is what the block selection needs.
package seq

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andrew-torda/matrix"

	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
)

// Seq is one sequence with its comment from the fasta file.
type Seq struct {
	cmmt string
	seq  []byte
}

// We only read ascii characters, so anything bigger than this is not
// valid.
const (
	MaxSym uint8 = 127
)

// Options contains all the choices passed in from the caller.
type Options struct {
	ExpectNSeq int  // Expected number of sequences, hint for allocation
	DiffLenSeq bool // false, unless we expect sequences to be different lengths
	DryRun     bool // Do not write any files
	RmvGapsRd  bool // Remove gaps while reading
	RmvGapsWrt bool // Remove gaps on output
}

// Errors the callers check for with errors.Is. Everything else that
// can go wrong is wrapped around one of these or comes from the
// operating system.
var (
	ErrNoSeqs   = errors.New("no sequences")
	ErrDiffLens = errors.New("sequence lengths differ")
	ErrEmptySeq = errors.New("zero length sequence")
)

// Constants
const cmmtChar byte = '>' // and this introduces comments in fasta format

// SeqGrp is a group of sequences, with some additional information
// such as the symbols that have been used and the per-site tallies.
type SeqGrp struct {
	symUsed  [MaxSym]bool      // which symbols are actually used
	mapping  [MaxSym]uint8     // mapping['C'] tells me the index used for C
	revmap   []uint8           // revmap[2] tells me the character in place 2
	seqs     []Seq
	counts   *matrix.FMatrix2d // site tallies, one row per symbol
	usedKnwn bool              // Do we know how many symbols are used ?
}

// NewSeq puts a comment and a sequence together. The fasta reader
// builds sequences itself, but the aligners need to make their own.
func NewSeq(cmmt string, s []byte) Seq { return Seq{cmmt: cmmt, seq: s} }

// GetSeq returns the sequence as the original byte slice
func (s Seq) GetSeq() []byte { return s.seq }

// Cmmt returns the comment, without the leading ">"
func (s Seq) Cmmt() string { return s.cmmt }

// Len
func (s Seq) Len() int { return len(s.seq) }

// SetSeq will replace whatever was the sequence with a new one
func (s *Seq) SetSeq(t []byte) { s.seq = t }

// Clear gets rid of the contents of a sequence. If you want
// to delete a sequence, but it is part of an array, you can just
// clear its contents.
func (s *Seq) Clear() {
	s.cmmt = ""
	s.seq = nil
}

// Empty returns true if a sequence has been cleared.
func (s Seq) Empty() bool { return len(s.seq) == 0 }

// trimStr trims a string to n bytes if it is longer
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Upper changes a sequence to upper case, in place.
// It only works with bytes, not runes.
// It can return an error if it encounters a symbol it does
// not like (value higher than 127).
func (s *Seq) Upper() error {
	const diff = 'a' - 'A'
	const symerr = "bad sym \"%c\" at position %d starting \"%s\""
	t := s.GetSeq()
	for i := 0; i < len(t); i++ {
		c := t[i]
		if c >= MaxSym {
			return fmt.Errorf(symerr, c, i, trimStr(s.Cmmt(), 40))
		}
		if 'a' <= c && c <= 'z' {
			t[i] -= diff
		}
	}
	return nil
}

// Copy gives a sequence with its own backing array, so the caller can
// scribble on it without upsetting the original.
func (s *Seq) Copy() (t Seq) {
	t.cmmt = s.cmmt
	t.seq = append([]byte(nil), s.seq...)
	return t
}

// String returns a sequence, with its comment at the start as
// a single string
func (s Seq) String() (t string) {
	if len(s.cmmt) > 0 {
		t = fmt.Sprintf("%c%s\n", cmmtChar, s.Cmmt())
	} else {
		t = ">\n"
	}
	t += string(s.GetSeq())
	return
}

// GetLen returns the length of the first sequence.
// If we have a multiple sequence alignment, this is the length
// of all sequences.
func (seqgrp *SeqGrp) GetLen() int {
	if len(seqgrp.seqs) == 0 {
		return 0
	}
	return len(seqgrp.seqs[0].GetSeq())
}

// NSeq returns the number of sequences
func (seqgrp *SeqGrp) NSeq() int { return len(seqgrp.seqs) }

// SeqSlc returns the slice of sequences
func (seqgrp *SeqGrp) SeqSlc() []Seq { return seqgrp.seqs }

// AddSeq puts one more sequence at the end of the group. Any tallies
// calculated earlier are thrown away.
func (seqgrp *SeqGrp) AddSeq(s Seq) {
	seqgrp.seqs = append(seqgrp.seqs, s)
	seqgrp.clear()
}

// Upper uppercases all the members of a group of sequences.
func (seqgrp *SeqGrp) Upper() error {
	for i := range seqgrp.seqs {
		if err := seqgrp.seqs[i].Upper(); err != nil {
			return err
		}
	}
	return nil
}

// clear gets rid of calculated quantities, so they will be redone if
// anybody asks for them again.
func (seqgrp *SeqGrp) clear() {
	for i := range seqgrp.symUsed {
		seqgrp.symUsed[i] = false
		seqgrp.mapping[i] = 255 // Any old silly number
	}
	seqgrp.revmap = nil
	seqgrp.counts = nil
	seqgrp.usedKnwn = false
}

// CheckLens is called when the group is supposed to be an alignment.
// Then all the sequences must be the same length.
func (seqgrp *SeqGrp) CheckLens() error {
	if len(seqgrp.seqs) == 0 {
		return ErrNoSeqs
	}
	iwant := len(seqgrp.seqs[0].GetSeq())
	if iwant == 0 {
		return fmt.Errorf("first sequence %q: %w",
			trimStr(seqgrp.seqs[0].Cmmt(), 40), ErrEmptySeq)
	}
	for i := 1; i < len(seqgrp.seqs); i++ {
		if ilen := len(seqgrp.seqs[i].GetSeq()); ilen != iwant {
			return fmt.Errorf(
				"%w: first seq length %d, but seq %d length %d, starts %q",
				ErrDiffLens, iwant, i,
				ilen, trimStr(seqgrp.seqs[i].Cmmt(), 40))
		}
	}
	return nil
}

// SameLens says whether the group could pass as an alignment. Unlike
// CheckLens it treats an empty group as harmless.
func (seqgrp *SeqGrp) SameLens() bool {
	for i := 1; i < len(seqgrp.seqs); i++ {
		if seqgrp.seqs[i].Len() != seqgrp.seqs[0].Len() {
			return false
		}
	}
	return true
}

// FindNdx Returns the index of the sequence containing a string.
// Numbering starts from zero. We remove any ">", space or tab at the start.
func (seqgrp *SeqGrp) FindNdx(s string) int {
	s = strings.TrimLeft(s, " >\t")

	for i, sq := range seqgrp.seqs {
		if strings.Contains(sq.Cmmt(), s) {
			return i
		}
	}
	return -1
}

// GrpFromSeqs wraps a ready-made slice of sequences in a group. The
// slice is taken over, not copied.
func GrpFromSeqs(seqs []Seq) *SeqGrp {
	seqgrp := new(SeqGrp)
	seqgrp.seqs = seqs
	seqgrp.clear()
	return seqgrp
}

// Str2SeqGrp takes some strings and returns them as a seqgrp.
// sIn is a slice of strings which are the sequences.
// prefix is an optional argument. Sequences need names/comments. If
// prefix is not given, sequences will be called "s0", "s1", ...
func Str2SeqGrp(sIn []string, prefix ...string) *SeqGrp {
	base := "s"
	if prefix != nil {
		base = prefix[0]
	}
	seqs := make([]Seq, 0, len(sIn))
	for i, s := range sIn {
		seqs = append(seqs, Seq{cmmt: fmt.Sprint(base, i), seq: []byte(s)})
	}
	return GrpFromSeqs(seqs)
}

// GapsRmvd returns a copy of the group with every gap character taken
// out of every sequence. The aligners want raw sequences, even if the
// input came from some earlier alignment.
func (seqgrp *SeqGrp) GapsRmvd() *SeqGrp {
	seqs := make([]Seq, 0, len(seqgrp.seqs))
	for _, sq := range seqgrp.seqs {
		s := sq.GetSeq()
		t := make([]byte, 0, len(s))
		for _, c := range s {
			if c != GapChar {
				t = append(t, c)
			}
		}
		seqs = append(seqs, Seq{cmmt: sq.Cmmt(), seq: t})
	}
	return GrpFromSeqs(seqs)
}
