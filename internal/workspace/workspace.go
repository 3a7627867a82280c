package workspace

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// CleanupGracePeriod gives the deploy subprocess a moment to release any
// lingering file handles before the workspace is torn down. Heuristic, not
// a guarantee.
var CleanupGracePeriod = 1 * time.Second

// Workspace is an ephemeral directory holding one deployment run's copied
// and restructured files. It is owned by exactly one run and removed when
// the run ends, whatever the outcome.
type Workspace struct {
	Path   string
	logger *zap.SugaredLogger
}

// Create makes a uniquely named temporary directory and copies the full
// source tree into it.
func Create(sourceDir string, logger *zap.SugaredLogger) (*Workspace, error) {
	idBytes := make([]byte, 8)
	if _, err := rand.Read(idBytes); err != nil {
		return nil, fmt.Errorf("failed to generate workspace id: %v", err)
	}

	path := filepath.Join(os.TempDir(), "airlift-"+hex.EncodeToString(idBytes))
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace %s: %v", path, err)
	}

	ws := &Workspace{Path: path, logger: logger}
	if err := CopyTree(sourceDir, path); err != nil {
		ws.Remove()
		return nil, err
	}

	if logger != nil {
		files, err := ListFiles(path)
		if err == nil {
			logger.Infof("Copied %d files into %s", len(files), path)
		}
	}

	return ws, nil
}

// CopyTree recursively copies every regular file under src into dst,
// recreating the directory layout.
func CopyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)
		if info.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %v", target, err)
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		if err := copyFile(path, target); err != nil {
			return fmt.Errorf("failed to copy %s: %v", path, err)
		}

		return nil
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// ListFiles recursively lists every regular file under dir, creating the
// directory first if it does not exist. Paths come back sorted for stable
// output.
func ListFiles(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %v", dir, err)
	}

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Remove tears the workspace down after the grace period. Individual
// deletion failures are collected and logged as warnings; they never stop
// the traversal and never surface to the caller.
func (ws *Workspace) Remove() {
	time.Sleep(CleanupGracePeriod)

	var errs error

	// Delete files first, deepest paths last, so emptied directories can
	// go in a second pass.
	var dirs []string
	filepath.Walk(ws.Path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			errs = multierr.Append(errs, err)
			return nil
		}
		if info.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		if err := os.Remove(path); err != nil {
			errs = multierr.Append(errs, err)
		}
		return nil
	})

	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	for _, dir := range dirs {
		if err := os.Remove(dir); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if errs != nil && ws.logger != nil {
		ws.logger.Warnf("Failed to fully remove workspace %s: %v", ws.Path, errs)
	}
}
