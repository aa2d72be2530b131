// Package phantom generates synthetic slice stacks with known embedded
// shapes. The CLI demo and the scanner tests use them to validate volume
// estimates against closed-form geometry.
package phantom

import "cavityscan/internal/models"

func blankSlice(width, height, index int, fill uint16) *models.Slice {
	samples := make([]uint16, width*height)
	for i := range samples {
		samples[i] = fill
	}
	return &models.Slice{
		Width:   width,
		Height:  height,
		Samples: samples,
		Index:   index,
		Meta: models.SliceMeta{
			SamplesPerPixel: 1,
			BitsAllocated:   16,
			SourceFormat:    "phantom",
			PixelSpacingX:   1,
			PixelSpacingY:   1,
			Thickness:       1,
		},
	}
}

// Block builds a stack of depth slices where the interior region at least
// margin pixels away from every slice edge holds the inside density and
// the rest holds the outside density. Every layer carries the block.
func Block(width, height, depth, margin int, inside, outside uint16) []*models.Slice {
	slices := make([]*models.Slice, depth)
	for z := 0; z < depth; z++ {
		s := blankSlice(width, height, z, outside)
		for y := margin; y < height-margin; y++ {
			for x := margin; x < width-margin; x++ {
				s.Samples[y*s.Width+x] = inside
			}
		}
		slices[z] = s
	}
	return slices
}

// Cylinder builds a stack of depth slices with a flat-topped cylinder of
// the given radius centered at (cx, cy), spanning layers z0 through z1
// inclusive. Voxels inside the cylinder hold the inside density, all
// others the outside density.
func Cylinder(width, height, depth, cx, cy, radius, z0, z1 int, inside, outside uint16) []*models.Slice {
	slices := make([]*models.Slice, depth)
	r2 := radius * radius
	for z := 0; z < depth; z++ {
		s := blankSlice(width, height, z, outside)
		if z >= z0 && z <= z1 {
			for y := 0; y < height; y++ {
				for x := 0; x < width; x++ {
					dx := x - cx
					dy := y - cy
					if dx*dx+dy*dy <= r2 {
						s.Samples[y*s.Width+x] = inside
					}
				}
			}
		}
		slices[z] = s
	}
	return slices
}
