// 16 Mar 2025

// Package trim decides which columns of an alignment are worth
// keeping, the way Gblocks does: tally each column, mark it conserved
// or not, then keep the contiguous blocks that are long enough and
// have respectable edges.
package trim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadParam = errors.New("bad parameter")

// Params is the trimming configuration in ratio form. All fractions
// refer to the number of sequences in the alignment.
type Params struct {
	MinBlockLen    int     // shortest block worth keeping
	MaxGapFrac     float32 // columns gappier than this are rejected
	MinConsFrac    float32 // majority fraction for a conserved column
	FlankConsFrac  float32 // threshold for block edges, negative means MinConsFrac
	MaxNonconsRun  int     // longest non-conserved run a block may swallow
	DropAllGapCols bool    // throw out columns that are nothing but gaps
}

// DfltParams are the defaults of the original trimmer.
func DfltParams() *Params {
	return &Params{
		MinBlockLen:   10,
		MaxGapFrac:    0.5,
		MinConsFrac:   0.7,
		FlankConsFrac: -1,
		MaxNonconsRun: 0,
	}
}

// Resolve fills in the ad-hoc default: an unset flank threshold means
// the core threshold. It happens here, once, so the scanning code
// never has to think about it.
func (p *Params) Resolve() *Params {
	q := *p
	if q.FlankConsFrac < 0 {
		q.FlankConsFrac = q.MinConsFrac
	}
	return &q
}

// Check complains about parameters we cannot work with. It is called
// before any analysis runs, so nothing is half-computed when it fails.
func (p *Params) Check() error {
	bad := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrBadParam, fmt.Sprintf(format, args...))
	}
	if p.MinBlockLen <= 0 {
		return bad("min block length %d, must be positive", p.MinBlockLen)
	}
	if p.MaxGapFrac < 0 || p.MaxGapFrac > 1 {
		return bad("max gap fraction %v outside [0,1]", p.MaxGapFrac)
	}
	if p.MinConsFrac < 0 || p.MinConsFrac > 1 {
		return bad("min conservation %v outside [0,1]", p.MinConsFrac)
	}
	if p.FlankConsFrac > 1 { // negative just means unset
		return bad("flank conservation %v above 1", p.FlankConsFrac)
	}
	if p.MaxNonconsRun < 0 {
		return bad("max nonconserved run %d, must not be negative", p.MaxNonconsRun)
	}
	return nil
}

// GbParams is the parameter set the way Gblocks asks for it, counts
// of sequences rather than fractions.
type GbParams struct {
	MinConsCount   int    // minimum sequences for a conserved position
	FlankConsCount int    // minimum sequences for a flank position
	MaxNonconsRun  int    // maximum contiguous nonconserved positions
	MinBlockLen    int    // minimum block length
	AllowedGap     string // "None", "Half" or "All"
	DropAllGapCols bool
}

// GapMode translates the allowed-gap token to a fraction. A bare
// number in [0,1] is also accepted. Anything else is an error, not a
// quiet default.
func GapMode(mode string) (float32, error) {
	switch strings.ToLower(mode) {
	case "none":
		return 0.0, nil
	case "half":
		return 0.5, nil
	case "all":
		return 1.0, nil
	}
	if v, err := strconv.ParseFloat(mode, 32); err == nil && v >= 0 && v <= 1 {
		return float32(v), nil
	}
	return 0, fmt.Errorf("%w: allowed gap mode %q", ErrBadParam, mode)
}

// ToParams converts the integer form to the ratio form, given the
// number of sequences. The conversion is pure arithmetic; whether the
// result makes sense is Check's business.
func (g *GbParams) ToParams(nseq int) (*Params, error) {
	if nseq < 1 {
		return nil, fmt.Errorf("%w: converting for %d sequences", ErrBadParam, nseq)
	}
	maxGap, err := GapMode(g.AllowedGap)
	if err != nil {
		return nil, err
	}
	p := &Params{
		MinBlockLen:    g.MinBlockLen,
		MaxGapFrac:     maxGap,
		MinConsFrac:    float32(g.MinConsCount) / float32(nseq),
		FlankConsFrac:  float32(g.FlankConsCount) / float32(nseq),
		MaxNonconsRun:  g.MaxNonconsRun,
		DropAllGapCols: g.DropAllGapCols,
	}
	if err := p.Check(); err != nil {
		return nil, err
	}
	return p, nil
}
