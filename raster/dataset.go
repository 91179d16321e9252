package raster

// Dataset is an opened raster product. Implementations own whatever
// underlying handle is needed and release it on Close.
type Dataset interface {
	Width() int
	Height() int
	BandCount() int
	// ReadBlock reads a window of pixel data covering every band. Samples
	// come back band-interleaved by pixel as float64, length
	// xSize*ySize*BandCount().
	ReadBlock(xOff, yOff, xSize, ySize int) ([]float64, error)
	Close() error
}

// Opener opens a raster product at a path. A nil Dataset means the file
// is not decodable imagery; that is a data quality signal, not an error.
type Opener func(path string) Dataset
