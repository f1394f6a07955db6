package common

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Build metadata for the FinBuddy binary. Release builds inject these via
// ldflags; ad hoc builds fall back to a .version file next to the binary.
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// LoadVersionFromFile fills in metadata still at its default from a
// .version file beside the executable. Values injected via ldflags win.
func LoadVersionFromFile() {
	exe, err := os.Executable()
	if err != nil {
		return
	}
	loadVersionFrom(filepath.Join(filepath.Dir(exe), ".version"))
}

// loadVersionFrom parses one "key: value" pair per line; keys are
// "version", "build" and "commit". Blank lines and # comments are skipped.
func loadVersionFrom(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch strings.TrimSpace(key) {
		case "version":
			if Version == "dev" {
				Version = val
			}
		case "build":
			if Build == "unknown" {
				Build = val
			}
		case "commit":
			if GitCommit == "unknown" {
				GitCommit = val
			}
		}
	}
}
