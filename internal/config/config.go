// Package config loads the optional .eslex.yml file that supplies
// default CLI behavior so flags don't need to be repeated on every
// invocation.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults an .eslex.yml file can override. Every
// field also has a corresponding CLI flag; flags win when both are
// set.
type Config struct {
	Format string `yaml:"format"`
	Color  *bool  `yaml:"color"`
	Plugin string `yaml:"plugin"`
}

// FileName is the config file eslex looks for in the current
// directory.
const FileName = ".eslex.yml"

// Load reads FileName from dir, returning a zero-value Config with no
// error if the file doesn't exist.
func Load(dir string) (Config, error) {
	path := dir + string(os.PathSeparator) + FileName
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
