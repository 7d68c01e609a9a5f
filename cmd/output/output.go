package output

import (
	"bytes"
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/pid2go/cmd/global"
	"github.com/markusressel/pid2go/internal/simulation"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

// PrintTable prints the given rows as a colored table
func PrintTable(headers []string, rows [][]string) error {
	tab := table.Table{
		Headers: headers,
		Rows:    rows,
	}
	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !global.NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if err != nil {
		return err
	}
	ui.Printfln("%s", buf.String())
	return nil
}

// PrintTrajectory prints one row per tick
func PrintTrajectory(trajectory simulation.Trajectory) error {
	var rows [][]string
	for _, sample := range trajectory {
		rows = append(rows, []string{
			fmt.Sprintf("%d", sample.Tick),
			fmt.Sprintf("%.2f", sample.Target),
			fmt.Sprintf("%.2f", sample.Actual),
			fmt.Sprintf("%.2f", sample.Output),
			fmt.Sprintf("%.2f", sample.Error),
		})
	}
	return PrintTable([]string{"Tick", "Target", "Actual", "Output", "Error"}, rows)
}

// PlotTrajectory prints the actual and target values of a trajectory as a graph
func PlotTrajectory(trajectory simulation.Trajectory) {
	if len(trajectory) <= 0 {
		return
	}
	graph := asciigraph.PlotMany(
		[][]float64{trajectory.Actuals(), trajectory.Targets()},
		asciigraph.Height(15),
		asciigraph.Width(100),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption("Actual (blue) / Target (red)"),
	)
	ui.Printfln("%s", graph)
}

// PrintReport prints the analysis of a trajectory
func PrintReport(report simulation.Report) error {
	settled := "never"
	if report.SettledAtTick >= 0 {
		settled = fmt.Sprintf("%d", report.SettledAtTick)
	}
	return PrintTable(
		[]string{"Max |Output|", "Final Error", "Mean |Error|", "Overshoot", "Converged", "Settled At"},
		[][]string{{
			fmt.Sprintf("%.2f", report.MaxAbsOutput),
			fmt.Sprintf("%.2f", report.FinalError),
			fmt.Sprintf("%.2f", report.MeanAbsError),
			fmt.Sprintf("%.2f", report.Overshoot),
			fmt.Sprintf("%t", report.Converged),
			settled,
		}},
	)
}
