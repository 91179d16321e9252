package raster

import "fmt"

// MemoryDataset is an in-memory Dataset, mainly useful as a stand-in for
// real imagery in tests. Samples are band-interleaved by pixel.
type MemoryDataset struct {
	width   int
	height  int
	bands   int
	samples []float64
	closed  bool

	// FailReads makes every ReadBlock return an error, simulating a
	// raster that opens but cannot be scanned.
	FailReads bool
}

// NewMemoryDataset builds a MemoryDataset over the given samples. The
// sample slice must hold width*height*bands values.
func NewMemoryDataset(width, height, bands int, samples []float64) (*MemoryDataset, error) {
	if len(samples) != width*height*bands {
		return nil, fmt.Errorf("expected %d samples, got %d", width*height*bands, len(samples))
	}
	return &MemoryDataset{width: width, height: height, bands: bands, samples: samples}, nil
}

// Width returns the pixel width
func (d *MemoryDataset) Width() int { return d.width }

// Height returns the pixel height
func (d *MemoryDataset) Height() int { return d.height }

// BandCount returns the number of bands
func (d *MemoryDataset) BandCount() int { return d.bands }

// ReadBlock reads a window of samples across all bands
func (d *MemoryDataset) ReadBlock(xOff, yOff, xSize, ySize int) ([]float64, error) {
	if d.closed {
		return nil, fmt.Errorf("dataset is closed")
	}
	if d.FailReads {
		return nil, fmt.Errorf("simulated read failure")
	}
	if xOff < 0 || yOff < 0 || xSize < 1 || ySize < 1 ||
		xOff+xSize > d.width || yOff+ySize > d.height {
		return nil, fmt.Errorf("block (%d,%d %dx%d) outside raster %dx%d",
			xOff, yOff, xSize, ySize, d.width, d.height)
	}

	out := make([]float64, 0, xSize*ySize*d.bands)
	for row := 0; row < ySize; row++ {
		rowStart := ((yOff+row)*d.width + xOff) * d.bands
		out = append(out, d.samples[rowStart:rowStart+xSize*d.bands]...)
	}
	return out, nil
}

// Closed reports whether Close has been called
func (d *MemoryDataset) Closed() bool { return d.closed }

// Close marks the dataset released
func (d *MemoryDataset) Close() error {
	d.closed = true
	return nil
}
