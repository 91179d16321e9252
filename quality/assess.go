package quality

import (
	"fmt"
	"path/filepath"

	"github.com/gridscan/raster-audit/products"
	"github.com/gridscan/raster-audit/raster"
	"github.com/gridscan/raster-audit/util"
)

const (
	// tileEdge bounds how much pixel data is resident at once,
	// independent of raster size
	tileEdge = 512
	// corruptedZeroRatio is a strict boundary: exactly 30% zero
	// samples is still healthy
	corruptedZeroRatio = 0.30
)

// Record is the structural quality assessment of one raster. Every
// field defaulting to false is the failure-safe direction: an
// unassessable raster reports as unopenable, not as healthy.
type Record struct {
	CanOpen           bool
	IsCorrupted       bool
	IsSpectrumMissing bool
	HasRPC            bool
	HasRPB            bool
}

// Assess opens one raster, estimates its zero-pixel ratio by tiles,
// checks its band count, and probes sidecarRoot for RPC/RPB companions.
// Assessment never fails: problems degrade the record's fields.
func Assess(ctx util.LogContext, open raster.Opener, path, sidecarRoot string) Record {
	record := Record{}

	if dataset := open(path); dataset == nil {
		util.LogAlert(ctx, fmt.Sprintf("Raster %s cannot be opened", filepath.Base(path)))
	} else {
		record.CanOpen = true
		assessPixels(ctx, dataset, path, &record)
	}

	record.HasRPC, record.HasRPB = FindSidecars(sidecarRoot, products.Stem(path))
	return record
}

// assessPixels owns the dataset handle; it is released before return no
// matter how scanning goes.
func assessPixels(ctx util.LogContext, dataset raster.Dataset, path string, record *Record) {
	defer dataset.Close()

	zero, total, err := countZeroSamples(dataset)
	if err != nil {
		record.IsSpectrumMissing = true
		util.LogAlert(ctx, fmt.Sprintf("Failed reading raster %s: %v", filepath.Base(path), err))
		return
	}

	if total > 0 && float64(zero)/float64(total) > corruptedZeroRatio {
		record.IsCorrupted = true
	}
	record.IsSpectrumMissing = dataset.BandCount() < 1
}

// countZeroSamples walks the pixel grid in fixed-size tiles,
// accumulating zero and total sample counts across all bands.
func countZeroSamples(dataset raster.Dataset) (zero, total int64, err error) {
	width, height := dataset.Width(), dataset.Height()

	for yOff := 0; yOff < height; yOff += tileEdge {
		ySize := tileEdge
		if yOff+ySize > height {
			ySize = height - yOff
		}
		for xOff := 0; xOff < width; xOff += tileEdge {
			xSize := tileEdge
			if xOff+xSize > width {
				xSize = width - xOff
			}

			block, readErr := dataset.ReadBlock(xOff, yOff, xSize, ySize)
			if readErr != nil {
				return 0, 0, readErr
			}
			for _, sample := range block {
				total++
				if sample == 0 {
					zero++
				}
			}
		}
	}
	return zero, total, nil
}
