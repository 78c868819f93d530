package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sbl8/arenaplan/planner"
)

var vizWidth int

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Draw the arena layout over time, one row per execution step",
	Long: `viz draws the planned layout as a character grid. Each row is one
execution step; each column is a proportional slice of the arena. A
buffer live at a step paints its columns with its index digit; '.' marks
unused space and '!' marks a collision, which would indicate a planner
bug.`,
	Args: cobra.NoArgs,
	RunE: runViz,
}

func init() {
	vizCmd.Flags().IntVarP(&vizWidth, "width", "w", planner.DefaultPlanWidth, "diagram width in columns")
}

func runViz(cmd *cobra.Command, _ []string) error {
	applyColorMode()
	_, p, err := loadPlanner(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d bytes across %d columns\n\n",
		labelColor.Sprint("arena:"), p.GetMaximumMemorySize(), vizWidth)
	for step, row := range p.PlanRows(vizWidth) {
		fmt.Fprintf(out, "%4d  %s\n", step, colorizeRow(row))
	}
	return nil
}
