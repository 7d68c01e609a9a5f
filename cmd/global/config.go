package global

import (
	"errors"

	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/viper"
)

// LoadConfig reads, decodes and validates the configuration.
// Without a config file the default values are used.
func LoadConfig() error {
	configPath, err := configuration.DetectAndReadConfigFile()
	if err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return err
		}
		ui.Warning("No configuration file found, using defaults")
	} else {
		ui.Info("Using configuration file at: %s", configPath)
	}

	if err := configuration.LoadConfig(); err != nil {
		return err
	}
	return configuration.Validate()
}
