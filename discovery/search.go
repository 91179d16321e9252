package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gridscan/raster-audit/util"
)

// Batch-aborting discovery failures. Callers must treat every one of
// these as fatal for the whole run.
var (
	ErrPathNotFound     = errors.New("source path does not exist")
	ErrNotADirectory    = errors.New("source path is a file, not a directory")
	ErrPermissionDenied = errors.New("source path is not readable")
	ErrNoMatchingFiles  = errors.New("no .tif or .tiff files found")
	ErrNoValidFiles     = errors.New("no file passed raster validation")
)

// Search recursively collects every .tif/.tiff file under root. The
// extension match is case sensitive. An empty result is a hard error:
// silently producing empty reports would mask a bad input path.
func Search(ctx util.LogContext, root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, root)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, absRoot)
		}
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, absRoot)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, absRoot)
	}
	if _, err = os.ReadDir(absRoot); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, absRoot)
	}

	matches := []string{}
	walkErr := filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Root readability is verified above; failures further
			// down are skipped, not fatal.
			util.LogAlert(ctx, fmt.Sprintf("Skipping unreadable entry during search: %v", err))
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".tif", ".tiff":
			matches = append(matches, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoMatchingFiles, absRoot)
	}
	util.LogInfo(ctx, fmt.Sprintf("Found %d TIF files under %s", len(matches), absRoot))
	return matches, nil
}
