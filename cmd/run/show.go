package run

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/markusressel/pid2go/cmd/output"
	"github.com/markusressel/pid2go/internal/simulation"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a recorded simulation run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := loadRecord(args[0])
		if err != nil {
			return err
		}

		ui.Printfln("Run %s of loop %s, created at %s", record.Id, record.LoopId, record.CreatedAt.Format(time.DateTime))
		if record.Gains != nil {
			ui.Printfln("P: %v, I: %v, D: %v, F: %v", record.Gains.P, record.Gains.I, record.Gains.D, record.Gains.F)
		}

		if err := output.PrintTrajectory(record.Trajectory); err != nil {
			return err
		}
		output.PlotTrajectory(record.Trajectory)
		return output.PrintReport(record.Report)
	},
}

func loadRecord(id string) (*simulation.Record, error) {
	p, err := getPersistence()
	if err != nil {
		return nil, err
	}

	record, err := p.LoadRun(id)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no run with id found: %s", id)
	}
	return record, err
}

func init() {
	Command.AddCommand(showCmd)
}
