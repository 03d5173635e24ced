// 15 Mar 2025

// Package gotoh implements global pair-wise alignment with affine gap
// penalties, Gotoh, O. J. Mol. Biol. (1982) 162, 705-708. The trimmer
// uses it inside the center-star aligner, both for picking the center
// sequence and for building the merged alignment, so ties have to be
// broken the same way on every run: a gap is extended rather than
// opened, and a diagonal move beats either insertion.
package gotoh

import (
	. "github.com/SYeon-424/GBlocks/pkg/seq/common"

	"github.com/andrew-torda/matrix"
)

// Pnlty has the gap opening and widening values. Opening costs you
// -(Open+Wdn). Each extension costs -Wdn.
type Pnlty struct {
	Open float32
	Wdn  float32
}

// MatchScr says how identities and mismatches score.
type MatchScr struct {
	Match    float32 // matched characters
	Mismatch float32 // mismatched
}

// Scheme is the full scoring scheme for an alignment.
type Scheme struct {
	MatchScr
	Pnlty
}

// Ipair is one column of an alignment, indices into the two input
// sequences. -1 on either side is a gap.
type Ipair struct {
	I, J int
}

const bigf float32 = -1e30

// Matrix state we can be in when walking back.
const (
	mway byte = iota // diagonal movement
	pway             // along the P direction, vertical, over rows
	qway             // Q direction, horizontal, over columns
)

// DfltScheme matches what the original trimmer used for its fallback
// alignments: identity scoring, cheap uniform gaps.
var DfltScheme = Scheme{
	MatchScr: MatchScr{Match: 1, Mismatch: -1},
	Pnlty:    Pnlty{Open: 0, Wdn: 2},
}

// AlignPair does a global alignment of s and t and returns the aligned
// columns plus the total score. Either sequence may be empty, in which
// case the other one is aligned against nothing but gaps.
func AlignPair(s, t []byte, schm *Scheme) ([]Ipair, float32) {
	nr, nc := len(s), len(t)
	wdn := -schm.Wdn
	w1 := -(schm.Open + schm.Wdn)

	switch {
	case nr == 0 && nc == 0:
		return nil, 0
	case nr == 0:
		pairlist := make([]Ipair, nc)
		for j := 0; j < nc; j++ {
			pairlist[j] = Ipair{-1, j}
		}
		return pairlist, w1 + float32(nc-1)*wdn
	case nc == 0:
		pairlist := make([]Ipair, nr)
		for i := 0; i < nr; i++ {
			pairlist[i] = Ipair{i, -1}
		}
		return pairlist, w1 + float32(nr-1)*wdn
	}

	sub := func(i, j int) float32 {
		if s[i-1] == t[j-1] {
			return schm.Match
		}
		return schm.Mismatch
	}

	mm := matrix.NewFMatrix2d(nr+1, nc+1).Mat // both residues aligned
	pp := matrix.NewFMatrix2d(nr+1, nc+1).Mat // gap in t, vertical
	qq := matrix.NewFMatrix2d(nr+1, nc+1).Mat // gap in s, horizontal

	pp[0][0], qq[0][0] = bigf, bigf
	for i := 1; i <= nr; i++ {
		mm[i][0] = bigf
		qq[i][0] = bigf
		pp[i][0] = w1 + float32(i-1)*wdn
	}
	for j := 1; j <= nc; j++ {
		mm[0][j] = bigf
		pp[0][j] = bigf
		qq[0][j] = w1 + float32(j-1)*wdn
	}

	for i := 1; i <= nr; i++ {
		for j := 1; j <= nc; j++ {
			best := mm[i-1][j-1]
			if pp[i-1][j-1] > best {
				best = pp[i-1][j-1]
			}
			if qq[i-1][j-1] > best {
				best = qq[i-1][j-1]
			}
			mm[i][j] = best + sub(i, j)

			// >= keeps the gap open rather than starting a new one
			if ext, opn := pp[i-1][j]+wdn, openFrom(mm[i-1][j], qq[i-1][j])+w1; ext >= opn {
				pp[i][j] = ext
			} else {
				pp[i][j] = opn
			}
			if ext, opn := qq[i][j-1]+wdn, openFrom(mm[i][j-1], pp[i][j-1])+w1; ext >= opn {
				qq[i][j] = ext
			} else {
				qq[i][j] = opn
			}
		}
	}

	return traceback(s, t, schm, mm, pp, qq)
}

// openFrom is the best value a new gap can open from.
func openFrom(a, b float32) float32 {
	if a >= b {
		return a
	}
	return b
}

// traceback walks from the bottom right corner back to the origin.
// State choices repeat the comparisons of the forward pass, with the
// same tie order, so the path is the one the forward pass paid for.
func traceback(s, t []byte, schm *Scheme,
	mm, pp, qq [][]float32) ([]Ipair, float32) {
	nr, nc := len(s), len(t)
	wdn := -schm.Wdn
	w1 := -(schm.Open + schm.Wdn)

	bigger := nr
	if nc > bigger {
		bigger = nc
	}
	pairlist := make([]Ipair, 0, bigger+bigger/10)

	state := mway
	max_scr := mm[nr][nc]
	if pp[nr][nc] > max_scr {
		state, max_scr = pway, pp[nr][nc]
	}
	if qq[nr][nc] > max_scr {
		state, max_scr = qway, qq[nr][nc]
	}

	for i, j := nr, nc; i > 0 || j > 0; {
		switch {
		case i == 0: // only gaps in s remain
			pairlist = append(pairlist, Ipair{-1, j - 1})
			j--
		case j == 0: // only gaps in t remain
			pairlist = append(pairlist, Ipair{i - 1, -1})
			i--
		case state == mway:
			pairlist = append(pairlist, Ipair{i - 1, j - 1})
			i--
			j--
			state = mway
			best := mm[i][j]
			if pp[i][j] > best {
				state, best = pway, pp[i][j]
			}
			if qq[i][j] > best {
				state = qway
			}
		case state == pway:
			pairlist = append(pairlist, Ipair{i - 1, -1})
			if ext, opn := pp[i-1][j]+wdn, openFrom(mm[i-1][j], qq[i-1][j])+w1; ext >= opn {
				state = pway
			} else if mm[i-1][j] >= qq[i-1][j] {
				state = mway
			} else {
				state = qway
			}
			i--
		default: // qway
			pairlist = append(pairlist, Ipair{-1, j - 1})
			if ext, opn := qq[i][j-1]+wdn, openFrom(mm[i][j-1], pp[i][j-1])+w1; ext >= opn {
				state = qway
			} else if mm[i][j-1] >= pp[i][j-1] {
				state = mway
			} else {
				state = pway
			}
			j--
		}
	}

	for i, j := 0, len(pairlist)-1; i < j; i, j = i+1, j-1 {
		pairlist[i], pairlist[j] = pairlist[j], pairlist[i]
	}
	return pairlist, max_scr
}

// Pad renders an alignment as two equal length, gap padded sequences.
func Pad(pairlist []Ipair, s, t []byte) (ps, pt []byte) {
	ps = make([]byte, len(pairlist))
	pt = make([]byte, len(pairlist))
	for n, p := range pairlist {
		if p.I == -1 {
			ps[n] = GapChar
		} else {
			ps[n] = s[p.I]
		}
		if p.J == -1 {
			pt[n] = GapChar
		} else {
			pt[n] = t[p.J]
		}
	}
	return ps, pt
}

// Distance turns an alignment into a normalized edit cost,
// 1 - identities / aligned length. It is only used for ranking
// candidate center sequences, never for per-base output.
func Distance(pairlist []Ipair, s, t []byte) float32 {
	if len(pairlist) == 0 {
		return 0
	}
	ident := 0
	for _, p := range pairlist {
		if p.I != -1 && p.J != -1 && s[p.I] == t[p.J] {
			ident++
		}
	}
	return 1 - float32(ident)/float32(len(pairlist))
}
