// Package config loads ipcheck's CLI defaults from an optional
// ipcheck.yaml, searched at the locations a CLI tool built against the
// teacher's XDG layering convention would use.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const appName = "ipcheck"

// Config holds the CLI defaults a config file may override.
type Config struct {
	// ChecksumAlgorithms lists the digest.Algorithm names (case-insensitive)
	// the manifest builder always computes in addition to whatever
	// algorithms the package's own METS CHECKSUMTYPE declarations
	// require.
	ChecksumAlgorithms []string `yaml:"checksum_algorithms"`
	// SchematronResourceDir, when set, overrides the embedded Schematron
	// rule files with a directory on disk carrying the same six file names.
	SchematronResourceDir string `yaml:"schematron_resource_dir"`
}

// Default returns the built-in configuration used when no config file
// is found.
func Default() Config {
	return Config{ChecksumAlgorithms: []string{"SHA256"}}
}

// Load searches the standard ipcheck.yaml locations and returns the
// first one found, parsed; Default() if none exist.
func Load() (Config, error) {
	for _, path := range searchPaths(appName) {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, err
		}
		cfg := Default()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	return Default(), nil
}
