package resolver

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// maxSearchDepth bounds the downward search for a go.mod.
const maxSearchDepth = 3

// Resolve turns a local path into the root directory of the Go module that
// contains it. If no go.mod exists at or above the path, the shallowest one
// below it is used.
func Resolve(input string, logger *slog.Logger) (string, error) {
	absPath, err := filepath.Abs(input)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", absPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", absPath)
	}

	modRoot, err := findModuleRoot(absPath)
	if err != nil {
		modRoot, err = findModuleRootInTree(absPath)
		if err != nil {
			return "", err
		}
	}

	logger.Info("resolved local directory", "input", input, "module_root", modRoot)
	return modRoot, nil
}

// findModuleRoot walks up from dir to the nearest directory holding a go.mod.
func findModuleRoot(dir string) (string, error) {
	current := dir
	for {
		if _, err := os.Stat(filepath.Join(current, "go.mod")); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no go.mod found in %s or any parent directory", dir)
		}
		current = parent
	}
}

// findModuleRootInTree searches root breadth-first for a go.mod, returning the
// shallowest match; ties are broken alphabetically.
func findModuleRootInTree(root string) (string, error) {
	level := []string{root}
	for depth := 0; depth <= maxSearchDepth && len(level) > 0; depth++ {
		var next []string
		for _, dir := range level {
			if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
				return dir, nil
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				continue
			}
			for _, e := range entries {
				if !e.IsDir() || skipDir(e.Name()) {
					continue
				}
				next = append(next, filepath.Join(dir, e.Name()))
			}
		}
		sort.Strings(next)
		level = next
	}
	return "", fmt.Errorf("no go.mod found in %s within %d levels", root, maxSearchDepth)
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules" || name == "testdata"
}
