package scene

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultScript is the scene the demo starts with.
const DefaultScript = "demo.tengo"

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadScript reads a scene script from disk, falling back to the embedded
// copy.
func LoadScript(name string) ([]byte, error) {
	if filepath.Ext(name) != "" {
		if data, err := os.ReadFile(name); err == nil {
			return data, nil
		}
	}
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(filepath.Join("scene", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "scene/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scene/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	if filepath.Ext(s) == "" {
		s += ".tengo"
	}

	return fmt.Sprintf("scripts/%s", s)
}
