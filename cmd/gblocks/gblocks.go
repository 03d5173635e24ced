// 18 Mar 2025
// Read a multiple sequence alignment, throw out the poorly conserved
// and gappy columns and write out what is left.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/SYeon-424/GBlocks/pkg/gblocks"
	. "github.com/SYeon-424/GBlocks/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[infile [outfile]]")
	long := `Do not just type the command name. It will wait on input from stdin.
Given no arguments, read and write from stdin / stdout.
Given one argument, read from the given file name, but write to stdout.
Given two arguments, read from the first one, write to the second.
If the sequences are not all the same length, they are aligned first,
unless -noalign says otherwise.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	var flags gblocks.CmdFlag
	var infile, outfile string

	flag.IntVar(&flags.MinBlockLen, "b", 10, "minimum block length")
	flag.StringVar(&flags.MaxGap, "gap", "half",
		"allowed gaps per column, none, half, all or a fraction")
	flag.Float64Var(&flags.MinCons, "cons", 0.7,
		"fraction of sequences for a conserved position")
	flag.Float64Var(&flags.FlankCons, "flank", -1,
		"fraction of sequences for a flank position, default same as -cons")
	flag.IntVar(&flags.MaxNonconsRun, "run", 0,
		"longest stretch of nonconserved positions inside a block")
	flag.BoolVar(&flags.DropAllGapCols, "dropallgap", false,
		"always drop columns that are nothing but gaps")
	flag.BoolVar(&flags.GbCounts, "counts", false,
		"-mincons and -minflank are sequence counts, not fractions")
	flag.IntVar(&flags.GbMinCons, "mincons", 0,
		"sequences for a conserved position, only with -counts")
	flag.IntVar(&flags.GbFlankCons, "minflank", 0,
		"sequences for a flank position, only with -counts")
	flag.BoolVar(&flags.NoAlign, "noalign", false,
		"treat unaligned input as an error instead of aligning it")
	flag.IntVar(&flags.NWorker, "w", 0, "workers for aligning, 0 means all cpus")
	flag.BoolVar(&flags.Time, "t", false, "print out timing information")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 0 {
		infile = flag.Arg(0)
		if flag.NArg() > 1 {
			outfile = flag.Arg(1)
		}
	}

	if err := gblocks.Mymain(&flags, infile, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	} else {
		os.Exit(ExitSuccess)
	}
}
