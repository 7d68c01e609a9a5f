package run

import (
	"github.com/markusressel/pid2go/cmd/global"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "run",
	Short:            "Commands for recorded simulation runs",
	Long:             ``,
	TraverseChildren: true,
}

func getPersistence() (persistence.Persistence, error) {
	if err := global.LoadConfig(); err != nil {
		return nil, err
	}

	dbPath := configuration.CurrentConfig.DbPath
	ui.Debug("Using persistence at: %s", dbPath)

	p := persistence.NewPersistence(dbPath)
	if err := p.Init(); err != nil {
		return nil, err
	}
	return p, nil
}
