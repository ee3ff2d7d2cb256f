// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Command bex runs built-in bit-vector and array problems against the
// solver, exiting 10 on sat and 20 on unsat like a sat competition
// solver.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/irifrance/bex"
	"github.com/irifrance/bex/gen"
)

var (
	backend   string
	verbosity int
	width     int
	nVars     int
	nAsserts  int
	depth     int
	seed      int64
	lodLimit  int64
	satLimit  int64
	stats     bool
	dump      string
)

var rootCmd = &cobra.Command{
	Use:           "bex",
	Short:         "bex solves bit-vector and array formulas",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var randCmd = &cobra.Command{
	Use:   "rand",
	Short: "solve a random bit-vector problem",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(b *bex.Bex) {
			gen.Seed(seed)
			gen.RandAsserts(b, width, nVars, nAsserts, depth)
		})
	},
}

var distribCmd = &cobra.Command{
	Use:   "distrib",
	Short: "refute distributivity of * over + (unsat)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(b *bex.Bex) {
			gen.Distrib(b, width)
		})
	},
}

var memCmd = &cobra.Command{
	Use:   "mem",
	Short: "read back a chain of array writes (unsat)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(b *bex.Bex) {
			gen.WriteChain(b, width, width, nAsserts, nAsserts/2)
		})
	},
}

func run(build func(b *bex.Bex)) error {
	b, err := bex.NewWith(backend, verbosity)
	if err != nil {
		return err
	}
	defer b.Delete()
	if verbosity > 0 {
		b.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	build(b)
	start := time.Now()
	res := b.LimitedSat(lodLimit, satLimit)
	dur := time.Since(start)
	if dump != "" {
		f, err := os.Create(dump)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := b.SatMgr().DumpCnf(f); err != nil {
			return err
		}
	}
	switch res {
	case bex.Sat:
		fmt.Println("sat")
	case bex.Unsat:
		fmt.Println("unsat")
	default:
		fmt.Println("unknown")
	}
	if stats {
		fmt.Fprintf(os.Stderr, "c solved in %s\n", dur)
		b.SatMgr().SetOutput(os.Stderr)
		b.SatMgr().PrintStats()
	}
	os.Exit(res)
	return nil
}

func main() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&backend, "backend", "mini", "sat backend (mini, gophersat)")
	pf.IntVarP(&verbosity, "verbosity", "v", 0, "narrate solving")
	pf.IntVar(&width, "width", 8, "bit width")
	pf.IntVarP(&nVars, "vars", "n", 4, "variable count")
	pf.IntVarP(&nAsserts, "asserts", "m", 8, "assertion or write count")
	pf.IntVar(&depth, "depth", 3, "random term depth")
	pf.Int64Var(&seed, "seed", 33, "random seed")
	pf.Int64Var(&lodLimit, "lod-limit", -1, "max refinement rounds (-1 unbounded)")
	pf.Int64Var(&satLimit, "sat-limit", -1, "backend conflict limit per call (-1 unbounded)")
	pf.BoolVar(&stats, "stats", false, "print statistics after solving")
	pf.StringVar(&dump, "dump", "", "write the CNF in dimacs format to a file")
	rootCmd.AddCommand(randCmd, distribCmd, memCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(bex.ParseError)
	}
}
