package run

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/markusressel/pid2go/internal/simulation"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/markusressel/pid2go/internal/util"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

var (
	exportPath   string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a recorded simulation run to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(simulation.SupportedFormats(), exportFormat) {
			return fmt.Errorf("unsupported format %s, use one of: %s", exportFormat, strings.Join(simulation.SupportedFormats(), " | "))
		}

		record, err := loadRecord(args[0])
		if err != nil {
			return err
		}

		data, err := simulation.Encode(*record, exportFormat)
		if err != nil {
			return err
		}

		if err := util.EnsureParentDir(exportPath); err != nil {
			return err
		}
		if err := util.WriteFileAtomic(exportPath, bytes.NewReader(data)); err != nil {
			return err
		}

		ui.Success("Exported run %s to %s", record.Id, exportPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "Path of the file to write")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", simulation.FormatCsv, "Output format, one of: csv | yaml | json")
	_ = exportCmd.MarkFlagRequired("output")

	Command.AddCommand(exportCmd)
}
