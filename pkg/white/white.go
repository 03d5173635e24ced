// Whitespace removal for byte slices. The fasta reader calls this on
// every chunk, so it has to act in place and not allocate.

package white

var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

// Remove takes a pointer to a byte slice and removes all the white
// space, in place. The length is adjusted, the capacity untouched.
func Remove(sIn *[]byte) {
	s := *sIn
	n := 0
	for _, c := range s {
		if !asciiSpace[c] {
			s[n] = c
			n++
		}
	}
	*sIn = s[:n]
}
