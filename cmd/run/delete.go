package run

import (
	"errors"
	"fmt"
	"os"

	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded simulation run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := getPersistence()
		if err != nil {
			return err
		}

		id := args[0]
		err = p.DeleteRun(id)
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no run with id found: %s", id)
		}
		if err == nil {
			ui.Success("Done!")
		}
		return err
	},
}

func init() {
	Command.AddCommand(deleteCmd)
}
