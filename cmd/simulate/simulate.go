package simulate

import (
	"github.com/markusressel/pid2go/cmd/global"
	"github.com/markusressel/pid2go/cmd/output"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/simulation"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var (
	loopId string
	ticks  int
	save   bool
	plot   bool
)

var Command = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a configured loop driving a process",
	Long: `Runs the configured loop against a simulated process, which adds the
output of every tick to its measured value, and prints the resulting trajectory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := global.LoadConfig(); err != nil {
			return err
		}

		loopConfig, err := configuration.FindLoopConfig(loopId)
		if err != nil {
			return err
		}

		loop, err := control_loop.NewControlLoop(*loopConfig)
		if err != nil {
			return err
		}

		if ticks <= 0 {
			ticks = configuration.CurrentConfig.Simulation.Ticks
		}
		params := simulation.ParametersFromConfig(*loopConfig, ticks)

		trajectory := simulation.Run(loop, params)
		report := simulation.Analyze(trajectory,
			configuration.CurrentConfig.Simulation.Tolerance,
			configuration.CurrentConfig.Simulation.Window,
		)

		if err := output.PrintTrajectory(trajectory); err != nil {
			return err
		}
		if plot {
			output.PlotTrajectory(trajectory)
		}
		if err := output.PrintReport(report); err != nil {
			return err
		}

		if !save {
			return nil
		}

		var gains *pid.Gains
		if pidLoop, ok := loop.(*control_loop.PidControlLoop); ok {
			g := pidLoop.Controller().Gains()
			gains = &g
		}
		record := simulation.NewRecord(loopConfig.ID, gains, params, trajectory, report)

		dbPath := configuration.CurrentConfig.DbPath
		ui.Info("Using persistence at: %s", dbPath)
		p := persistence.NewPersistence(dbPath)
		if err := p.Init(); err != nil {
			return err
		}
		if err := p.SaveRun(record); err != nil {
			return err
		}

		ui.Success("Saved run %s", record.Id)
		return nil
	},
}

func init() {
	Command.Flags().StringVarP(&loopId, "loop", "l", configuration.DefaultLoopId, "Loop ID as specified in the config")
	Command.Flags().IntVarP(&ticks, "ticks", "t", 0, "Number of ticks to simulate (default is simulation.ticks of the config)")
	Command.Flags().BoolVarP(&save, "save", "s", false, "Store the run in the database")
	Command.Flags().BoolVarP(&plot, "plot", "p", false, "Plot the trajectory")
}
