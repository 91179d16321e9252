package discovery

import (
	"fmt"
	"path/filepath"

	"github.com/gridscan/raster-audit/raster"
	"github.com/gridscan/raster-audit/util"
)

// Rasters narrower or shorter than this are treated as damaged output
// from a failed delivery rather than imagery.
const minRasterEdge = 10

// Validate opens every candidate through the raster capability and
// discards files that fail to open, report no bands, or are smaller
// than minRasterEdge on either side. Discards are logged per file; an
// empty survivor set is a hard error.
func Validate(ctx util.LogContext, open raster.Opener, paths []string) ([]string, error) {
	valid := []string{}
	discarded := 0

	for _, path := range paths {
		if reason := validateOne(open, path); reason != "" {
			util.LogAlert(ctx, fmt.Sprintf("Discarding %s: %s", filepath.Base(path), reason))
			discarded++
			continue
		}
		valid = append(valid, path)
	}

	util.LogInfo(ctx, fmt.Sprintf("Raster validation: %d valid, %d discarded", len(valid), discarded))
	if len(valid) == 0 {
		return nil, ErrNoValidFiles
	}
	return valid, nil
}

func validateOne(open raster.Opener, path string) (reason string) {
	dataset := open(path)
	if dataset == nil {
		return "not decodable imagery"
	}
	defer dataset.Close()

	if dataset.BandCount() < 1 {
		return "no bands"
	}
	if dataset.Width() < minRasterEdge || dataset.Height() < minRasterEdge {
		return fmt.Sprintf("raster is only %dx%d pixels", dataset.Width(), dataset.Height())
	}
	return ""
}
