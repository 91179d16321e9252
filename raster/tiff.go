package raster

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/tiff"
)

// Open decodes a TIFF raster at the given path. It returns nil for
// anything that is not decodable imagery (missing file, truncated or
// non-TIFF content); callers treat nil as "cannot open".
func Open(path string) Dataset {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	img, err := tiff.Decode(file)
	if err != nil {
		return nil
	}

	return &tiffDataset{img: img, bands: bandsFor(img)}
}

type tiffDataset struct {
	img   image.Image
	bands int
}

func (d *tiffDataset) Width() int {
	return d.img.Bounds().Dx()
}

func (d *tiffDataset) Height() int {
	return d.img.Bounds().Dy()
}

func (d *tiffDataset) BandCount() int {
	return d.bands
}

func (d *tiffDataset) ReadBlock(xOff, yOff, xSize, ySize int) ([]float64, error) {
	if xOff < 0 || yOff < 0 || xSize < 1 || ySize < 1 ||
		xOff+xSize > d.Width() || yOff+ySize > d.Height() {
		return nil, fmt.Errorf("block (%d,%d %dx%d) outside raster %dx%d",
			xOff, yOff, xSize, ySize, d.Width(), d.Height())
	}

	min := d.img.Bounds().Min
	out := make([]float64, 0, xSize*ySize*d.bands)
	for row := 0; row < ySize; row++ {
		for col := 0; col < xSize; col++ {
			out = appendSamples(out, d.img, min.X+xOff+col, min.Y+yOff+row)
		}
	}
	return out, nil
}

func (d *tiffDataset) Close() error {
	d.img = nil
	return nil
}

// bandsFor maps the decoded pixel layout to a spectral band count.
// Alpha is an extra sample, not a band.
func bandsFor(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16, *image.Paletted:
		return 1
	case *image.CMYK:
		return 4
	default:
		return 3
	}
}

func appendSamples(out []float64, img image.Image, x, y int) []float64 {
	switch im := img.(type) {
	case *image.Gray:
		return append(out, float64(im.GrayAt(x, y).Y))
	case *image.Gray16:
		return append(out, float64(im.Gray16At(x, y).Y))
	case *image.Paletted:
		return append(out, float64(im.ColorIndexAt(x, y)))
	case *image.CMYK:
		px := im.CMYKAt(x, y)
		return append(out, float64(px.C), float64(px.M), float64(px.Y), float64(px.K))
	case *image.NRGBA:
		px := im.NRGBAAt(x, y)
		return append(out, float64(px.R), float64(px.G), float64(px.B))
	case *image.RGBA:
		px := im.RGBAAt(x, y)
		return append(out, float64(px.R), float64(px.G), float64(px.B))
	case *image.NRGBA64:
		px := im.NRGBA64At(x, y)
		return append(out, float64(px.R), float64(px.G), float64(px.B))
	case *image.RGBA64:
		px := im.RGBA64At(x, y)
		return append(out, float64(px.R), float64(px.G), float64(px.B))
	default:
		r, g, b, _ := img.At(x, y).RGBA()
		return append(out, float64(r>>8), float64(g>>8), float64(b>>8))
	}
}
