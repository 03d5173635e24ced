package trim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SYeon-424/GBlocks/pkg/trim"
)

func TestGbConversion(t *testing.T) {
	gb := &trim.GbParams{
		MinConsCount:   9,
		FlankConsCount: 14,
		MaxNonconsRun:  8,
		MinBlockLen:    10,
		AllowedGap:     "Half",
	}
	p, err := gb.ToParams(20)
	require.NoError(t, err)
	assert.Equal(t, float32(0.45), p.MinConsFrac)
	assert.Equal(t, float32(0.70), p.FlankConsFrac)
	assert.Equal(t, float32(0.5), p.MaxGapFrac)
	assert.Equal(t, 8, p.MaxNonconsRun)
	assert.Equal(t, 10, p.MinBlockLen)
}

func TestGapMode(t *testing.T) {
	for mode, want := range map[string]float32{
		"None": 0, "none": 0, "Half": 0.5, "ALL": 1, "0.3": 0.3,
	} {
		got, err := trim.GapMode(mode)
		require.NoError(t, err, mode)
		assert.Equal(t, want, got, mode)
	}
	for _, mode := range []string{"", "Most", "1.5", "-0.1"} {
		_, err := trim.GapMode(mode)
		assert.ErrorIs(t, err, trim.ErrBadParam, "mode %q", mode)
	}
}

func TestGbConversionErrs(t *testing.T) {
	gb := &trim.GbParams{
		MinConsCount: 5, FlankConsCount: 5, MinBlockLen: 10, AllowedGap: "None"}
	_, err := gb.ToParams(0)
	assert.ErrorIs(t, err, trim.ErrBadParam)

	gb.MinConsCount = 30 // more than the number of sequences
	_, err = gb.ToParams(20)
	assert.ErrorIs(t, err, trim.ErrBadParam)
}

func TestParamsCheck(t *testing.T) {
	good := trim.DfltParams()
	require.NoError(t, good.Check())

	cases := []trim.Params{
		{MinBlockLen: 0, MaxGapFrac: 0.5, MinConsFrac: 0.7, FlankConsFrac: -1},
		{MinBlockLen: 5, MaxGapFrac: 1.5, MinConsFrac: 0.7, FlankConsFrac: -1},
		{MinBlockLen: 5, MaxGapFrac: 0.5, MinConsFrac: -0.1, FlankConsFrac: -1},
		{MinBlockLen: 5, MaxGapFrac: 0.5, MinConsFrac: 0.7, FlankConsFrac: 1.2},
		{MinBlockLen: 5, MaxGapFrac: 0.5, MinConsFrac: 0.7,
			FlankConsFrac: -1, MaxNonconsRun: -2},
	}
	for i := range cases {
		assert.ErrorIs(t, cases[i].Check(), trim.ErrBadParam, "case %d", i)
	}
}

func TestResolve(t *testing.T) {
	p := &trim.Params{MinBlockLen: 5, MaxGapFrac: 0.5,
		MinConsFrac: 0.7, FlankConsFrac: -1}
	q := p.Resolve()
	assert.Equal(t, float32(0.7), q.FlankConsFrac)
	assert.Equal(t, float32(-1), p.FlankConsFrac, "Resolve must not touch the original")

	p.FlankConsFrac = 0.5
	assert.Equal(t, float32(0.5), p.Resolve().FlankConsFrac)
}
