package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
)

// EnsureProjectTree creates {base}/{monitoringID}/{subdirs} and returns the root and each subdir by name.
// It is safe to call when the directories already exist.
func EnsureProjectTree(base string, monitoringID int64) (string, map[string]string, error) {
	root, err := filepath.Abs(filepath.Join(base, strconv.FormatInt(monitoringID, 10)))
	if err != nil {
		return "", nil, err
	}
	dirs := make(map[string]string, len(models.ProjectSubdirs))
	for _, name := range models.ProjectSubdirs {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", nil, fmt.Errorf("create %s: %w", dir, err)
		}
		dirs[name] = dir
	}
	return root, dirs, nil
}
