// Package cli implements the planviz command line tool: plan a buffer
// trace and inspect the resulting arena layout.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sbl8/arenaplan/planner"
	"github.com/sbl8/arenaplan/trace"
)

var (
	// Global flags
	traceFile string
	capacity  int
	noColor   bool
)

// rootCmd is the root command for planviz.
var rootCmd = &cobra.Command{
	Use:     "planviz",
	Version: "dev",
	Short:   "Static memory layout planner for buffer traces",
	Long: `planviz computes a static arena layout for a trace of short-lived buffers
with known lifetimes, using a greedy placement heuristic that lets buffers
with disjoint lifetimes share address space.

A trace file lists one buffer per line as three integers:
size first_used last_used. Lines starting with '#' are comments.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&traceFile, "trace", "t", "-", "trace file to plan ('-' reads stdin)")
	rootCmd.PersistentFlags().IntVar(&capacity, "capacity", planner.DefaultCapacity, "maximum number of buffers")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(vizCmd)
}

// loadPlanner reads the configured trace and returns the registered
// buffers together with a planner that has planned them. Planner
// diagnostics go to stderr.
func loadPlanner(errOut io.Writer) ([]trace.Buffer, *planner.GreedyPlanner, error) {
	var r io.Reader
	if traceFile == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(traceFile)
		if err != nil {
			return nil, nil, fmt.Errorf("opening trace: %w", err)
		}
		defer f.Close()
		r = f
	}

	buffers, err := trace.Read(r)
	if err != nil {
		return nil, nil, err
	}
	p := planner.NewGreedyPlanner(capacity, planner.NewWriterReporter(errOut))
	if err := trace.Register(p, buffers); err != nil {
		return nil, nil, err
	}
	return buffers, p, nil
}
