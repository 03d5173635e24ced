// Writer for fasta format files.

package seq

import (
	"fmt"
	"io"
	"os"

	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
)

// WriteToF takes a filename and a slice of sequences.
// It writes the sequences to the file, 60 characters to a line.
// Cleared sequences are skipped quietly.
func WriteToF(outseq_fname string, seq_set []Seq, s_opts *Options) (err error) {
	var outfile_fp io.Writer
	switch {
	case s_opts != nil && s_opts.DryRun:
		outfile_fp = io.Discard
	case outseq_fname == "":
		outfile_fp = os.Stdout
	default:
		t, err := os.Create(outseq_fname)
		if err != nil {
			return fmt.Errorf("creating output sequence file: %w", err)
		}
		defer t.Close()
		outfile_fp = t
	}
	return WriteTo(outfile_fp, seq_set, s_opts)
}

// WriteTo is the innards of WriteToF. It is separate so the tests and
// the pipeline can write to a buffer.
func WriteTo(fp io.Writer, seq_set []Seq, s_opts *Options) error {
	const c_per_line = 60
	var t []byte
	for _, sq := range seq_set {
		if sq.Empty() && sq.Cmmt() == "" {
			continue
		}
		if _, err := fmt.Fprintf(fp, "%c%s\n", cmmtChar, sq.Cmmt()); err != nil {
			return err
		}

		s := sq.GetSeq()
		if s_opts != nil && s_opts.RmvGapsWrt { // remove gap characters on output
			n := 0
			for i := range s { //    Start by looking how many non-gap
				if s[i] != GapChar { // characters there are.
					n++
				}
			}
			if cap(t) < n { // See if our scratch space is big enough
				t = make([]byte, n)
			}

			m := 0
			for i := range s {
				if s[i] != GapChar {
					t[m] = s[i]
					m++
				}
			}
			s = t[:n]
		}
		for ; len(s) > c_per_line; s = s[c_per_line:] {
			fmt.Fprint(fp, string(s[:c_per_line]), "\n")
		}
		if _, err := fmt.Fprint(fp, string(s), "\n"); err != nil {
			return err
		}
	}
	return nil
}
