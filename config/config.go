// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/helengibson/graphTPP-sub002/internal/encode"
	"github.com/helengibson/graphTPP-sub002/internal/property"
	"github.com/helengibson/graphTPP-sub002/internal/pursuit"
	"github.com/helengibson/graphTPP-sub002/internal/rank"
	"github.com/helengibson/graphTPP-sub002/internal/table"
	"github.com/spf13/viper"
)

// SettingsName is the settings file's base name, looked for in $HOME.
const SettingsName = ".graphtpp"

// EncodeConfig is for turning an alignment into a feature table
type EncodeConfig struct {
	// name of the residue property, see `graphtpp properties`
	Property string `mapstructure:"property"`

	// gap strategy: "neighbour" or "global"
	Gap string `mapstructure:"gap"`

	// splits labels into tokens to find the class. empty means no class
	ClassDelimiter string `mapstructure:"class-delimiter"`

	// 0-based index of the class token
	ClassPiece int `mapstructure:"class-piece"`

	// fail when records differ in length instead of dropping values
	Strict bool `mapstructure:"strict"`
}

// RankConfig is settings for ranking attributes
type RankConfig struct {
	// keep this many attributes by information gain before optimizing. 0 is off
	PreSelect int `mapstructure:"preselect"`

	// projection output dimensions
	Dims int `mapstructure:"dims"`

	// relative projection change under which the optimizer has converged
	Convergence float64 `mapstructure:"convergence"`

	// maximum number of epochs
	Epochs int `mapstructure:"epochs"`

	// number of attributes to report. <= 0 reports all
	Select int `mapstructure:"select"`

	// log the 2-D projection as it changes
	Live bool `mapstructure:"live"`

	// class separation index
	Objective string `mapstructure:"objective"`
}

// OptimizerConfig is settings for the projection pursuit optimizer
type OptimizerConfig struct {
	LearningRate float64 `mapstructure:"learning-rate"`

	// seed for the random part of the starting projection
	Seed int64 `mapstructure:"seed"`
}

// Config is the root-level settings struct and is a mix
// of settings available in the settings file and those
// available from the command line
type Config struct {
	Encode    EncodeConfig    `mapstructure:"encode"`
	Rank      RankConfig      `mapstructure:"rank"`
	Optimizer OptimizerConfig `mapstructure:"optimizer"`

	// whether to log every epoch
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers every setting's default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("encode.property", "hydropathy")
	v.SetDefault("encode.gap", encode.NeighbourMean.String())
	v.SetDefault("encode.class-delimiter", "")
	v.SetDefault("encode.class-piece", 0)
	v.SetDefault("encode.strict", false)

	v.SetDefault("rank.preselect", 0)
	v.SetDefault("rank.dims", 2)
	v.SetDefault("rank.convergence", 0.001)
	v.SetDefault("rank.epochs", 100)
	v.SetDefault("rank.select", 0)
	v.SetDefault("rank.live", false)
	v.SetDefault("rank.objective", pursuit.Separation)

	v.SetDefault("optimizer.learning-rate", pursuit.DefaultLearningRate)
	v.SetDefault("optimizer.seed", 1)

	v.SetDefault("verbose", false)
}

// Init points v at its settings sources: the file at path (or
// $HOME/.graphtpp.yaml when path is empty) and GRAPHTPP_* environment
// variables. A missing default settings file is not an error.
func Init(v *viper.Viper, path string) error {
	SetDefaults(v)

	v.SetEnvPrefix("GRAPHTPP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigName(SettingsName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && (errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("failed to read settings %s: %w", filepath.Clean(v.ConfigFileUsed()), err)
	}
	return nil
}

// New returns a new Config struct populated by the global Viper's
// settings (settings file, environment and command line arguments)
func New() *Config {
	c, err := FromViper(viper.GetViper())
	if err != nil {
		log.Fatalf("unable to decode into struct, %v", err)
	}
	return c
}

// FromViper unmarshals the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Property looks the configured property up in the default registry.
func (c *Config) Property() (*property.Property, error) {
	return property.Default.Lookup(c.Encode.Property)
}

// GapStrategy parses the configured gap strategy.
func (c *Config) GapStrategy() (encode.GapStrategy, error) {
	return encode.ParseGapStrategy(c.Encode.Gap)
}

// BuildOptions are the feature table options.
func (c *Config) BuildOptions() table.BuildOptions {
	return table.BuildOptions{
		ClassDelimiter: c.Encode.ClassDelimiter,
		ClassPiece:     c.Encode.ClassPiece,
	}
}

// RankOptions are the ranking options. The live view is left to the caller.
func (c *Config) RankOptions() rank.Options {
	return rank.Options{
		PreSelectCount:      c.Rank.PreSelect,
		NumOutputDimensions: c.Rank.Dims,
		ConvergenceLimit:    c.Rank.Convergence,
		EpochLimit:          c.Rank.Epochs,
		NumToSelect:         c.Rank.Select,
		Objective:           c.Rank.Objective,
		Seed:                c.Optimizer.Seed,
		Verbose:             c.Verbose,
	}
}
