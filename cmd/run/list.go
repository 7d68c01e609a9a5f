package run

import (
	"fmt"
	"time"

	"github.com/markusressel/pid2go/cmd/output"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded simulation runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := getPersistence()
		if err != nil {
			return err
		}

		records, err := p.ListRuns()
		if err != nil {
			return err
		}
		if len(records) <= 0 {
			ui.Info("No recorded runs")
			return nil
		}

		var rows [][]string
		for _, record := range records {
			rows = append(rows, []string{
				record.Id,
				record.LoopId,
				record.CreatedAt.Format(time.DateTime),
				fmt.Sprintf("%d", len(record.Trajectory)),
				fmt.Sprintf("%.2f", record.Report.FinalError),
				fmt.Sprintf("%t", record.Report.Converged),
			})
		}
		return output.PrintTable([]string{"ID", "Loop", "Created", "Ticks", "Final Error", "Converged"}, rows)
	},
}

func init() {
	Command.AddCommand(listCmd)
}
