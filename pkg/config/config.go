// Package config loads settings from a .atas file, ATAS_ environment
// variables and an optional .env file.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// ConfigPathEnv names an extra directory searched for the .atas file.
	ConfigPathEnv = "ATAS_CONFIG_PATH"

	DefaultPath      = "~/.atas.db"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "pretty"
)

type Config interface {
	BasePath() string
	LogLevel() string
	LogFormat() string
	// File is the config file that was read, empty when none was found.
	File() string
}

// Load reads the configuration. dirs are searched for .atas before
// $ATAS_CONFIG_PATH and the working directory.
func Load(dirs ...string) (Config, error) {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetConfigName(".atas") // .yaml is implicit
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ATAS")
	v.AutomaticEnv()
	_ = v.BindEnv("log.level", "ATAS_LOG_LEVEL")
	_ = v.BindEnv("log.format", "ATAS_LOG_FORMAT")

	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}

	return &fileConfig{
		Path:   path,
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Source: v.ConfigFileUsed(),
	}, nil
}

type fileConfig struct {
	Path   string `json:"path"`
	Level  string `json:"logLevel"`
	Format string `json:"logFormat"`
	Source string `json:"-"`
}

func (f *fileConfig) BasePath() string  { return f.Path }
func (f *fileConfig) LogLevel() string  { return f.Level }
func (f *fileConfig) LogFormat() string { return f.Format }
func (f *fileConfig) File() string      { return f.Source }
