package models

// SliceMeta holds the per-study acquisition metadata attached to each slice.
// Windowing values drive the density lookup curve; pixel spacing and
// thickness give the physical size of a voxel.
type SliceMeta struct {
	// SamplesPerPixel is the number of samples per pixel (1 for grayscale)
	SamplesPerPixel int

	// BitsAllocated is the number of bits allocated per sample
	BitsAllocated int

	// WindowCenter is the center of the display window in density units
	WindowCenter float64

	// WindowWidth is the width of the display window in density units
	WindowWidth float64

	// Signed indicates the source samples were two's-complement encoded
	Signed bool

	// SourceFormat names the file type the slice was decoded from
	SourceFormat string

	// PixelSpacingX and PixelSpacingY are the physical extent of one pixel in mm
	PixelSpacingX float64
	PixelSpacingY float64

	// Thickness is the physical thickness of the slice in mm
	Thickness float64
}

// Slice represents a single 2D density scan at a fixed position along the
// stacking axis. Samples are row-major unsigned 16-bit density values.
type Slice struct {
	// Width and Height are the slice dimensions in pixels
	Width  int
	Height int

	// Samples is the row-major density buffer of length Width*Height
	Samples []uint16

	// Index is the position of this slice in the sequence
	Index int

	// Meta is the acquisition metadata for this slice
	Meta SliceMeta
}

// At returns the density sample at pixel (x, y).
func (s *Slice) At(x, y int) uint16 {
	return s.Samples[y*s.Width+x]
}

// Release drops the sample buffer so it can be reclaimed once the slice
// has been copied into a volume grid.
func (s *Slice) Release() {
	s.Samples = nil
}
