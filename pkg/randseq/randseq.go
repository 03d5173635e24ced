// 15 Mar 2025

// Package randseq makes random sequences for testing the aligners.
package randseq

import (
	"fmt"
	"math/rand"
)

// Alphabets the tests pick from.
var (
	DNA     = []byte("ACGT")
	Protein = []byte("ACDEFGHIKLMNPQRSTVWY")
)

// New returns a random sequence of length n over the given letters.
func New(rnd *rand.Rand, letters []byte, n int) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = letters[rnd.Int31n(int32(len(letters)))]
	}
	return s
}

// Mutate changes about frac of the sites in s, in place, and returns
// how many sites really changed.
func Mutate(rnd *rand.Rand, letters []byte, frac float32, s []byte) int {
	nChange := 0
	for i := range s {
		if rnd.Float32() < frac {
			c := letters[rnd.Int31n(int32(len(letters)))]
			if c != s[i] {
				s[i] = c
				nChange++
			}
		}
	}
	return nChange
}

// DelN removes n characters from random positions and returns the
// shortened sequence.
func DelN(rnd *rand.Rand, n int, s []byte) ([]byte, error) {
	if n >= len(s) {
		return nil, fmt.Errorf("cannot delete %d of %d characters", n, len(s))
	}
	for ; n > 0; n-- {
		pos := rnd.Int31n(int32(len(s)))
		s = append(s[:pos], s[pos+1:]...)
	}
	return s, nil
}
