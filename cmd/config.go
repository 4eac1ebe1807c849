package cmd

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lazyre/lazyre"
)

// Config is the content of a .lazyre.yaml file.
type Config struct {
	Name string `yaml:"name"`

	// Optimize runs the peephole optimizer before matching.
	Optimize bool `yaml:"optimize"`
	// MaxPasses bounds the optimizer rounds, zero picks the default.
	MaxPasses int `yaml:"max_passes"`

	Label        uint32        `yaml:"label"`
	MatchTimeout time.Duration `yaml:"match_timeout"`
}

func defaultConfig() Config {
	return Config{
		Name:         "lazyre",
		Optimize:     true,
		MatchTimeout: 10 * time.Second,
	}
}

// options maps the config onto compile options.
func (c Config) options() lazyre.RegexOptions {
	if c.Optimize {
		return 0
	}
	return lazyre.NoOptimize
}

// loadConfig reads the configuration file at path. A missing file yields
// the defaults; keys the file leaves out keep their default values.
func loadConfig(path string) (Config, error) {
	config := defaultConfig()

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, err
	}
	return config, nil
}
