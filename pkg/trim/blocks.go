// The block selection state machine.

package trim

// Block is a half-open range of retained columns, [Start, End).
type Block struct {
	Start, End int
}

// Len
func (b Block) Len() int { return b.End - b.Start }

// Result is what trimming decided: the surviving blocks in order,
// plus the totals. Zero blocks is a legitimate outcome, not an error.
type Result struct {
	Blocks  []Block
	NCols   int // columns in the input alignment
	Kept    int
	Dropped int
}

// The scanner is a little state machine walking the columns once,
// left to right.
type scanState byte

const (
	seekingBlockStart scanState = iota
	inBlock
	inNonconsRun
)

// Select runs the scan over per-column statistics and returns the
// retained blocks. The rules, in the order the scan meets them:
//   - a block opens on a conserved, flank-conserved, non-gappy column
//   - it swallows up to MaxNonconsRun contiguous non-conserved
//     columns, as long as conservation resumes afterwards
//   - a gap-rejected column always ends the block, it can never hide
//     inside a swallowed run
//   - when a block closes, its edges shrink inwards to the nearest
//     flank-conserved columns, and whatever is left has to reach
//     MinBlockLen or the whole block is discarded
func Select(stats []ColStats, p *Params) (*Result, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	pr := p.Resolve()
	res := &Result{NCols: len(stats)}

	flush := func(start, end int) {
		if b, ok := shrink(stats, start, end); ok && b.Len() >= pr.MinBlockLen {
			res.Blocks = append(res.Blocks, b)
		}
	}

	state := seekingBlockStart
	var blockStart int // first column of the candidate block
	var candClose int  // exclusive end of the conserved stretch before a run
	var runLen int

	for i := range stats {
		cs := &stats[i]
		good := cs.Conserved && !cs.GapRejected
		switch state {
		case seekingBlockStart:
			if good && cs.FlankConserved {
				state, blockStart = inBlock, i
			}
		case inBlock:
			if good {
				break
			}
			if cs.GapRejected {
				flush(blockStart, i)
				state = seekingBlockStart
				break
			}
			candClose, runLen = i, 1
			if runLen > pr.MaxNonconsRun {
				flush(blockStart, candClose)
				state = seekingBlockStart
			} else {
				state = inNonconsRun
			}
		case inNonconsRun:
			if good { // run absorbed, block carries on through it
				state = inBlock
				break
			}
			if cs.GapRejected {
				flush(blockStart, candClose)
				state = seekingBlockStart
				break
			}
			runLen++
			if runLen > pr.MaxNonconsRun {
				flush(blockStart, candClose)
				state = seekingBlockStart
			}
		}
	}

	switch state { // end of columns closes whatever is open
	case inBlock:
		flush(blockStart, len(stats))
	case inNonconsRun:
		flush(blockStart, candClose)
	}

	for _, b := range res.Blocks {
		res.Kept += b.Len()
	}
	res.Dropped = res.NCols - res.Kept
	return res, nil
}

// shrink moves the block edges inwards until both sit on columns that
// are flank-conserved and not gap-rejected. ok is false if nothing is
// left.
func shrink(stats []ColStats, start, end int) (Block, bool) {
	for start < end &&
		!(stats[start].FlankConserved && !stats[start].GapRejected) {
		start++
	}
	for end > start &&
		!(stats[end-1].FlankConserved && !stats[end-1].GapRejected) {
		end--
	}
	if end <= start {
		return Block{}, false
	}
	return Block{Start: start, End: end}, true
}
