package store

import (
	"fmt"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/marszhhx/recare-tally/pkg/civil"
)

// Config supplies the store location and the board's civil time zone.
type Config interface {
	BasePath() string
	Timezone() string
}

// LoadConfig reads configuration from a .tally file in the working
// directory (or TALLY_CONFIG_PATH) and from TALLY_* environment variables.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.tally.db")
	viper.SetDefault("timezone", civil.DefaultZone)
	viper.SetConfigName(".tally") // .yaml is implicit
	viper.SetEnvPrefix("TALLY")
	viper.AutomaticEnv()

	if override := viper.GetString("config_path"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand store path: %w", err)
	}

	return &fileConfig{Path: path, Zone: viper.GetString("timezone")}, nil
}

type fileConfig struct {
	Path string `json:"path"`
	Zone string `json:"timezone"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Timezone() string {
	return f.Zone
}
