package configuration

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/markusressel/pid2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// default time between two ticks of a loop run by the daemon
	TickRate time.Duration `json:"tickRate"`

	Loops []LoopConfig `json:"loops"`

	Simulation SimulationConfig `json:"simulation"`
	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("pid2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Fatal("Couldn't detect home directory: %v", err)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/pid2go/")
	}

	viper.SetEnvPrefix("PID2GO")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	dbPath := "/etc/pid2go/pid2go.db"
	if home, err := homedir.Dir(); err == nil {
		dbPath = filepath.Join(home, ".local", "share", "pid2go", "pid2go.db")
	}
	viper.SetDefault("dbPath", dbPath)
	viper.SetDefault("tickRate", 100*time.Millisecond)

	viper.SetDefault("simulation.ticks", 100)
	viper.SetDefault("simulation.tolerance", 1.0)
	viper.SetDefault("simulation.window", 10)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("loops", []LoopConfig{})
}

// DetectAndReadConfigFile reads the config file and returns its path.
func DetectAndReadConfigFile() (string, error) {
	if err := viper.ReadInConfig(); err != nil {
		return "", fmt.Errorf("error reading config file: %w", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed(), nil
}

// LoadConfig decodes the current viper state into CurrentConfig.
func LoadConfig() error {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			scheduleHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return fmt.Errorf("unable to decode into struct: %w", err)
	}

	if len(CurrentConfig.Loops) <= 0 {
		ui.Debug("No loops configured, using the default loop")
		CurrentConfig.Loops = []LoopConfig{DefaultLoopConfig()}
	}
	return nil
}

// FindLoopConfig returns the loop configuration with the given id.
func FindLoopConfig(id string) (*LoopConfig, error) {
	var availableIds []string
	for _, loopConfig := range CurrentConfig.Loops {
		availableIds = append(availableIds, loopConfig.ID)
		if loopConfig.ID == id {
			result := loopConfig
			return &result, nil
		}
	}

	return nil, fmt.Errorf("no loop with id found: %s, options: %s", id, availableIds)
}
