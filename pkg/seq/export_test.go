package seq

import (
	"fmt"
)

// PrintFreqs prints out the frequencies of each character type.
// It is probably only useful for debugging or testing.
// format is a format string like "%6.1f"
func (seqgrp *SeqGrp) PrintFreqs(format string) {
	counts := seqgrp.Counts()
	for ic, m := range seqgrp.revmap {
		fmt.Printf("%c ", m)
		for i := 0; i < seqgrp.GetLen(); i++ {
			fmt.Printf(format, counts.Mat[ic][i])
		}
		fmt.Printf("\n")
	}
}

var SetFastaRdSize = setFastaRdSize

func (seqgrp *SeqGrp) ClearCalc() { seqgrp.clear() }
