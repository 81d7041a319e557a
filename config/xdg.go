package config

import (
	"os"
	"path/filepath"
)

// xdgConfigHome returns $XDG_CONFIG_HOME, falling back to ~/.config.
func xdgConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config")
	}
	return ""
}

// searchPaths returns the config file locations ipcheck searches, in
// order: XDG config dir, a home dot-file, then the working
// directory.
func searchPaths(appName string) []string {
	var paths []string
	if dir := xdgConfigHome(); dir != "" {
		paths = append(paths, filepath.Join(dir, appName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, "."+appName+".yaml"))
	}
	paths = append(paths, appName+".yaml")
	return paths
}
