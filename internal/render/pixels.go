package render

import "image/color"

// Palette maps cell states to colours. Values > 0 use On; everything else
// uses Off, so Life's 0/1 and Ising's -1/+1 share one painter.
type Palette struct {
	On  color.Color
	Off color.Color
}

// DefaultPalette is white live cells (or up spins) on black.
var DefaultPalette = Palette{On: color.White, Off: color.Black}

// IsingPalette renders up spins warm and down spins cool.
var IsingPalette = Palette{
	On:  color.RGBA{R: 240, G: 200, B: 80, A: 255},
	Off: color.RGBA{R: 30, G: 50, B: 110, A: 255},
}

// PaletteFor returns the palette used for the named simulation.
func PaletteFor(name string) Palette {
	if name == "ising" {
		return IsingPalette
	}
	return DefaultPalette
}

// fillCellsRGBA converts cell states into RGBA pixels in buf.
func fillCellsRGBA(buf []byte, cells []int8, p Palette) {
	rOn, gOn, bOn, aOn := p.On.RGBA()
	rOff, gOff, bOff, aOff := p.Off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c > 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}
