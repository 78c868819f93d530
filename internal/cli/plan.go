package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the planned offset of every buffer and the arena size",
	Args:  cobra.NoArgs,
	RunE:  runPlan,
}

func runPlan(cmd *cobra.Command, _ []string) error {
	applyColorMode()
	buffers, p, err := loadPlanner(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerColor.Sprint("buffer     size    first     last   offset"))
	for i, b := range buffers {
		offset, err := p.GetOffsetForBuffer(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%6d %8d %8d %8d %8d\n", i, b.Size, b.FirstTimeUsed, b.LastTimeUsed, offset)
	}
	fmt.Fprintf(out, "\n%s %d bytes for %d buffers\n",
		labelColor.Sprint("arena size:"), p.GetMaximumMemorySize(), p.GetBufferCount())
	return nil
}
