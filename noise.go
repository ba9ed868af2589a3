package start2d

import (
	"math"
	"math/rand/v2"
)

const (
	noiseYWrapB = 4
	noiseYWrap  = 1 << noiseYWrapB
	noiseZWrapB = 8
	noiseZWrap  = 1 << noiseZWrapB
	noiseSize   = 4095

	noiseOctaves = 4
	noiseFalloff = 0.5
)

// Noise is a seeded, smoothly varying value noise in three dimensions,
// summed over octaves. Values lie in [0, 1).
type Noise struct {
	table [noiseSize + 1]float64
}

// NewNoise returns the noise field for seed.
func NewNoise(seed int64) *Noise {
	n := &Noise{}
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	for i := range n.table {
		n.table[i] = r.Float64()
	}
	return n
}

func scaledCosine(i float64) float64 {
	return 0.5 * (1 - math.Cos(i*math.Pi))
}

// At returns the noise value at (x, y, z). Negative coordinates are
// mirrored.
func (n *Noise) At(x, y, z float64) float64 {
	x, y, z = math.Abs(x), math.Abs(y), math.Abs(z)
	xi, yi, zi := int(x), int(y), int(z)
	xf, yf, zf := x-float64(xi), y-float64(yi), z-float64(zi)

	var r float64
	ampl := 0.5
	for range noiseOctaves {
		of := xi + yi<<noiseYWrapB + zi<<noiseZWrapB
		rxf, ryf := scaledCosine(xf), scaledCosine(yf)

		n1 := n.at(of)
		n1 += rxf * (n.at(of+1) - n1)
		n2 := n.at(of + noiseYWrap)
		n2 += rxf * (n.at(of+noiseYWrap+1) - n2)
		n1 += ryf * (n2 - n1)

		of += noiseZWrap
		n2 = n.at(of)
		n2 += rxf * (n.at(of+1) - n2)
		n3 := n.at(of + noiseYWrap)
		n3 += rxf * (n.at(of+noiseYWrap+1) - n3)
		n2 += ryf * (n3 - n2)

		n1 += scaledCosine(zf) * (n2 - n1)
		r += n1 * ampl
		ampl *= noiseFalloff

		xi, xf = xi<<1, xf*2
		yi, yf = yi<<1, yf*2
		zi, zf = zi<<1, zf*2
		if xf >= 1 {
			xi, xf = xi+1, xf-1
		}
		if yf >= 1 {
			yi, yf = yi+1, yf-1
		}
		if zf >= 1 {
			zi, zf = zi+1, zf-1
		}
	}
	return r
}

func (n *Noise) at(i int) float64 {
	return n.table[i&noiseSize]
}

// randomSeed returns a seed in [1000, 10000).
func randomSeed() int64 {
	return 1000 + rand.Int64N(9000)
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}
