package draw

import "math"

// Cotton texture parameters. The SVG sink emits them as an feTurbulence
// filter; the raster sink evaluates FractalNoise per pixel.
const (
	TextureFrequency = 0.8
	TextureOctaves   = 4
	TextureGrey      = 0.6 // grey level of the texture color
	TextureAlpha     = 0.1 // alpha scale applied to the noise
)

// FractalNoise returns deterministic fractal value noise in [0, 1] at the
// unit-space position (x, y). The same position always yields the same value.
func FractalNoise(x, y float64) float64 {
	var sum, norm float64
	amp, freq := 1.0, TextureFrequency
	for o := 0; o < TextureOctaves; o++ {
		sum += amp * valueNoise(x*freq, y*freq, uint32(o))
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / norm
}

func valueNoise(x, y float64, seed uint32) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := smooth(x-x0), smooth(y-y0)
	ix, iy := int32(x0), int32(y0)

	v00 := lattice(ix, iy, seed)
	v10 := lattice(ix+1, iy, seed)
	v01 := lattice(ix, iy+1, seed)
	v11 := lattice(ix+1, iy+1, seed)

	top := v00 + (v10-v00)*fx
	bottom := v01 + (v11-v01)*fx
	return top + (bottom-top)*fy
}

func smooth(t float64) float64 { return t * t * (3 - 2*t) }

// lattice hashes an integer grid point to [0, 1].
func lattice(ix, iy int32, seed uint32) float64 {
	h := uint32(ix)*0x8da6b343 ^ uint32(iy)*0xd8163841 ^ (seed+1)*0xcb1ab31f
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return float64(h) / math.MaxUint32
}
