// Reader for fasta format files.

package seq

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"

	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
	"github.com/SYeon-424/GBlocks/pkg/white"
)

// An item is terminated by a newline if we are in a comment or a comment
// character ">" if we are in a sequence.
const (
	NL = '\n'
)

type item struct {
	data     []byte
	complete bool
}

type lexer struct {
	input    []byte
	ichan    chan *item
	seqgrp   *SeqGrp
	s_opts   *Options
	rdr      io.Reader
	itempool sync.Pool
	cmmt     string // partial comment
	seq      []byte // partial sequence
	term     byte
	err      error
}

const defaultReadSize = 512

var rdsize int = defaultReadSize

// setFastaRdSize is only used during testing and benchmarking
func setFastaRdSize(i int) {
	if i <= 2 {
		panic("setFastaRdSize given buffer length of 2 or less")
	}
	rdsize = i
}

func newItem() interface{} { return new(item) }

// next reads from the input and sends an item to channel, ichan.
// An item is terminated by l.term, or the end of the buffer or
// end of input.
func (l *lexer) next() {
	l.itempool.New = newItem
	for {
		item := l.itempool.Get().(*item)
		if len(l.input) == 0 {
			l.input = make([]byte, rdsize)
			n, err := l.rdr.Read(l.input)
			if n == 0 { //      The end of the input, or a real error.
				if err != nil && err != io.EOF {
					l.err = err // signal that a real error occurred.
				}
				item.data = []byte("")
				item.complete = true
				l.ichan <- item // we have to flush
				close(l.ichan)
				return
			}
			l.input = l.input[:n] // Short reads are normal on pipes.
		}

		if ndx := bytes.IndexByte(l.input, l.term); ndx == -1 {
			item.data = l.input // no terminator found, so just send
			l.input = nil       // back whatever we have in the buffer.
			item.complete = false
		} else { //                                We did find a terminator
			newlInput := l.input[ndx+1:] //        Advance pointer
			item.data = l.input[:ndx]    //
			item.complete = true         //
			l.input = newlInput          //        Set up for next loop
			if l.term == NL {
				l.term = cmmtChar
			} else {
				l.term = NL
			}
		}
		l.ichan <- item
	}
}

type stateFn func(*lexer) stateFn

// We are reading a sequence
func gseq(l *lexer) stateFn {
	item := <-l.ichan
	if item == nil || l.err != nil {
		return nil
	}
	defer l.itempool.Put(item)

	white.Remove(&item.data)
	l.seq = append(l.seq, item.data...)
	if item.complete {
		if len(l.seq) == 0 {
			l.err = fmt.Errorf("%w after %q", ErrEmptySeq, l.cmmt)
			return nil
		}
		if l.s_opts != nil && l.s_opts.RmvGapsRd {
			n := 0
			for _, c := range l.seq {
				if c != GapChar {
					l.seq[n] = c
					n++
				}
			}
			l.seq = l.seq[:n]
		}
		l.seqgrp.seqs = append(l.seqgrp.seqs, Seq{cmmt: l.cmmt, seq: l.seq})
		l.cmmt = ""
		l.seq = nil
		return gcmmt
	}
	return gseq
}

// We are reading a comment
func gcmmt(l *lexer) stateFn {
	item := <-l.ichan
	if item == nil || l.err != nil {
		return nil
	}
	defer l.itempool.Put(item)

	data := item.data
	if len(l.cmmt) == 0 && len(data) > 0 && data[0] == cmmtChar {
		data = data[1:] // only the very first comment still has its ">"
	}
	l.cmmt = l.cmmt + string(data)
	if item.complete {
		item.complete = false
		return gseq
	}
	return gcmmt
}

// ReadFasta reads fasta formatted input from rdr into seqgrp.
func ReadFasta(rdr io.Reader, seqgrp *SeqGrp, s_opts *Options) (err error) {
	l := lexer{rdr: rdr, ichan: make(chan *item, 2),
		seqgrp: seqgrp, s_opts: s_opts, term: NL}
	if s_opts != nil && s_opts.ExpectNSeq > 0 && seqgrp.seqs == nil {
		seqgrp.seqs = make([]Seq, 0, s_opts.ExpectNSeq)
	}

	go l.next()
	for state := gcmmt; state != nil; {
		state = state(&l)
	}
	if l.err == nil && seqgrp.NSeq() == 0 {
		l.err = ErrNoSeqs
	}
	return l.err
}

// Readfile takes a filename and reads sequences from it. An empty name
// means standard input. Regular files are mapped into memory, which
// lets us count the ">" characters and size our allocations before
// lexing starts. It returns a SeqGrp and error.
func Readfile(fname string, s_opts *Options) (*SeqGrp, error) {
	seqgrp := new(SeqGrp)

	if fname == "" {
		if err := ReadFasta(os.Stdin, seqgrp, s_opts); err != nil {
			return nil, err
		}
		return finishRead(seqgrp, s_opts)
	}

	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	if mm, err := mmap.Map(fp, mmap.RDONLY, 0); err == nil {
		defer mm.Unmap()
		if s_opts != nil && s_opts.ExpectNSeq == 0 {
			s_opts.ExpectNSeq = bytes.Count(mm, []byte{cmmtChar})
		}
		if err := ReadFasta(bytes.NewReader(mm), seqgrp, s_opts); err != nil {
			return nil, err
		}
	} else { // pipes and other odd files cannot be mapped
		if err := ReadFasta(fp, seqgrp, s_opts); err != nil {
			return nil, err
		}
	}
	return finishRead(seqgrp, s_opts)
}

// finishRead does the checks that only make sense once the whole file
// is in. If the sequences are supposed to be aligned, they have to be
// the same length.
func finishRead(seqgrp *SeqGrp, s_opts *Options) (*SeqGrp, error) {
	if s_opts == nil || !s_opts.DiffLenSeq {
		if err := seqgrp.CheckLens(); err != nil {
			return nil, err
		}
	}
	return seqgrp, nil
}
