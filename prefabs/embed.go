package prefabs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is the on-disk directory whose files shadow the embedded ones, so tuning
// and scripts can be edited without a rebuild.
var Dir = "prefabs"

// Load reads a prefab, preferring the copy under Dir.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(DiskPath(clean)); err == nil {
		return data, nil
	}
	data, err := PrefabsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("prefabs: read %s: %w", clean, err)
	}
	return data, nil
}

// LoadScript reads a scenario script, preferring the copy under Dir. A bare
// name without extension gets ".tengo".
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(DiskPath(clean)); err == nil {
		return data, nil
	}
	data, err := ScriptsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("prefabs: read %s: %w", clean, err)
	}
	return data, nil
}

// Scripts lists the embedded scenario script names.
func Scripts() []string {
	entries, err := fs.ReadDir(ScriptsFS, "scripts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tengo"))
	}
	sort.Strings(names)
	return names
}

// ModTime reports the modification time of the disk copy, if any.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(DiskPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// TuningPath is where the disk copy of a tuning file lives.
func TuningPath(name string) string {
	return DiskPath(cleanPrefabPath(name))
}

// ScriptPath is where the disk copy of a scenario script lives.
func ScriptPath(name string) string {
	return DiskPath(cleanScriptPath(name))
}

// DiskPath maps a cleaned prefab path to its location under Dir.
func DiskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	return s
}

func cleanScriptPath(p string) string {
	s := cleanPrefabPath(p)
	s = strings.TrimPrefix(s, "scripts/")
	if path.Ext(s) == "" {
		s += ".tengo"
	}
	return "scripts/" + s
}
