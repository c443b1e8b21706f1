package config

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultName is the renderer config used when none is given.
const DefaultName = "renderer.yaml"

//go:embed renderer.yaml
var configFS embed.FS

// Load reads a config file from disk, falling back to the embedded copy.
func Load(name string) ([]byte, error) {
	clean := cleanConfigPath(name)
	for _, p := range diskPaths(name, clean) {
		if data, err := os.ReadFile(p); err == nil {
			return data, nil
		}
	}
	return configFS.ReadFile(clean)
}

// ModTime reports the modification time of the on-disk copy of name.
func ModTime(name string) (time.Time, bool) {
	clean := cleanConfigPath(name)
	for _, p := range diskPaths(name, clean) {
		if info, err := os.Stat(p); err == nil {
			return info.ModTime(), true
		}
	}
	return time.Time{}, false
}

// Changed reports whether the on-disk copy of name was modified after since,
// along with its modification time. Editors often emit several write events
// for one save; only the first of them sees a newer time.
func Changed(name string, since time.Time) (time.Time, bool) {
	mod, ok := ModTime(name)
	if !ok {
		return since, false
	}
	return mod, mod.After(since)
}

func cleanConfigPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "config/"); ok {
		return after
	}
	return s
}

func diskPaths(name, clean string) []string {
	if name == "" {
		return nil
	}
	return []string{name, filepath.Join("config", filepath.FromSlash(clean))}
}
