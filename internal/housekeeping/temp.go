package housekeeping

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"skihide/pkg/core"
)

// TempReport counts what CleanTemp removed.
type TempReport struct {
	Files  int `json:"files" yaml:"files"`
	Dirs   int `json:"dirs" yaml:"dirs"`
	Failed int `json:"failed" yaml:"failed"`
}

// CleanTemp deletes every file under dir, then every directory left empty,
// deepest first. dir itself is kept. Entries that are locked or vanish
// mid-walk count as failed.
func CleanTemp(dir string, log core.Logger) (TempReport, error) {
	var report TempReport

	info, err := os.Stat(dir)
	if err != nil {
		return report, fmt.Errorf("failed to open temp dir: %w", err)
	}
	if !info.IsDir() {
		return report, fmt.Errorf("%s is not a directory", dir)
	}

	var dirs []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			report.Failed++
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == dir {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.Debug("Temp file kept", "path", path, "error", err)
			report.Failed++
			return nil
		}
		report.Files++
		return nil
	})
	if walkErr != nil {
		return report, fmt.Errorf("failed to walk temp dir: %w", walkErr)
	}

	sort.Slice(dirs, func(i, j int) bool {
		return depth(dirs[i]) > depth(dirs[j])
	})
	for _, path := range dirs {
		entries, err := os.ReadDir(path)
		if err != nil {
			report.Failed++
			continue
		}
		if len(entries) > 0 {
			// Still holds files that could not be removed.
			continue
		}
		if err := os.Remove(path); err != nil {
			report.Failed++
			continue
		}
		report.Dirs++
	}

	log.Info("Temp folder cleaned", "dir", dir, "files", report.Files, "dirs", report.Dirs, "failed", report.Failed)
	return report, nil
}

func depth(path string) int {
	return strings.Count(filepath.Clean(path), string(filepath.Separator))
}
