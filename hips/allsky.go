package hips

import (
	"bytes"
	"image"
)

// Decoder decodes an encoded image into a standard image.Image. Image
// codecs are a non-goal of this engine (treated as a black-box port, the
// same way Ephemeris stands in for ERFA); a host registers jpeg/png/webp
// support by importing the matching codec package for its side effects
// (image/jpeg, image/png, golang.org/x/image/webp, …) and decoding happens
// through the standard library's format-sniffing image.Decode.
var Decoder = image.Decode

// AllSkyImage is the decoded Norder3/Allsky composite: a 27x29 grid
// encoding all 768 order-3 healpix tiles in a single image (§6).
type AllSkyImage struct {
	Img      image.Image
	TileSize int
}

const (
	allSkyCols = 27
	allSkyRows = 29
	allSkyTiles = 768
)

// DecodeAllSky decodes the composite and derives each tile's cell size
// from the image bounds divided by the 27x29 grid.
func DecodeAllSky(data []byte) (*AllSkyImage, error) {
	img, _, err := Decoder(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	tileSize := b.Dx() / allSkyCols
	return &AllSkyImage{Img: img, TileSize: tileSize}, nil
}

// TileBounds returns the sub-rectangle of the composite image containing
// the order-3 tile at pix (0..767), in the 27-column row-major layout.
func (a *AllSkyImage) TileBounds(pix int) image.Rectangle {
	if pix < 0 || pix >= allSkyTiles {
		return image.Rectangle{}
	}
	col := pix % allSkyCols
	row := pix / allSkyCols
	x0 := col * a.TileSize
	y0 := row * a.TileSize
	return image.Rect(x0, y0, x0+a.TileSize, y0+a.TileSize)
}
