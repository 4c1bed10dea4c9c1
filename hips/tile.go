package hips

import "fmt"

// TilePath implements §6's wire layout: `Norder{o}/Dir{pix//10000*10000}/Npix{pix}.{ext}`.
func TilePath(order, pix int, ext string) string {
	dir := (pix / 10000) * 10000
	return fmt.Sprintf("Norder%d/Dir%d/Npix%d.%s", order, dir, pix, ext)
}

// NumTilesAtOrder returns 12*4^order, the healpix tile count at a given
// order.
func NumTilesAtOrder(order int) int64 {
	n := int64(12)
	for i := 0; i < order; i++ {
		n *= 4
	}
	return n
}

// ParentPix returns the index, one order up, of the parent of pix (pix must
// be at order >= 1); healpix nested-scheme parents are pix/4.
func ParentPix(pix int) int { return pix / 4 }

// ChildPixels returns the four nested-scheme children of pix, one order
// down.
func ChildPixels(pix int) [4]int {
	base := pix * 4
	return [4]int{base, base + 1, base + 2, base + 3}
}
