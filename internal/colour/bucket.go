package colour

import (
	"cmp"
	"image"
	"math"
	"slices"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// gridBits is the per-channel precision of the colour-to-cell lookup table.
const gridBits = 6

// linearLUT holds the sRGB -> linear transfer for every 8-bit channel value.
var linearLUT = func() [256]float64 {
	var lut [256]float64
	for i := range lut {
		lut[i], _, _ = colorful.Color{R: float64(i) / 255.0}.LinearRgb()
	}
	return lut
}()

// labKey identifies a cell of the quantised L*a*b* grid.
type labKey struct {
	l, a, b int32
}

// grid maps every reduced sRGB triple onto a dense Lab cell id. A grid is
// immutable once built and shared by every extraction with the same steps.
type grid struct {
	cells []uint32
	count int
}

func gridIndex(r, g, b uint8) int {
	const shift = 8 - gridBits
	return int(r>>shift)<<(2*gridBits) | int(g>>shift)<<gridBits | int(b>>shift)
}

// expand widens a gridBits channel back to 8 bits.
func expand(v int) uint8 {
	return uint8(v<<(8-gridBits) | v>>(2*gridBits-8))
}

func newGrid(lightnessStep, chromaStep float64) *grid {
	const levels = 1 << gridBits
	g := &grid{cells: make([]uint32, levels*levels*levels)}
	ids := make(map[labKey]uint32)

	for i := range g.cells {
		r := expand(i >> (2 * gridBits))
		gg := expand(i >> gridBits & (levels - 1))
		b := expand(i & (levels - 1))

		x, y, z := colorful.LinearRgbToXyz(linearLUT[r], linearLUT[gg], linearLUT[b])
		l, la, lb := colorful.XyzToLab(x, y, z)
		k := labKey{
			l: int32(math.Floor(l / lightnessStep)),
			a: int32(math.Floor(la / chromaStep)),
			b: int32(math.Floor(lb / chromaStep)),
		}
		id, ok := ids[k]
		if !ok {
			id = uint32(len(ids))
			ids[k] = id
		}
		g.cells[i] = id
	}
	g.count = len(ids)
	return g
}

type gridKey struct {
	lightnessStep, chromaStep float64
}

type gridEntry struct {
	once sync.Once
	grid *grid
}

var grids sync.Map // gridKey -> *gridEntry

// gridFor returns the process-wide grid for the given steps, building it on
// first use.
func gridFor(lightnessStep, chromaStep float64) *grid {
	v, _ := grids.LoadOrStore(gridKey{lightnessStep, chromaStep}, &gridEntry{})
	e := v.(*gridEntry)
	e.once.Do(func() {
		e.grid = newGrid(lightnessStep, chromaStep)
	})
	return e.grid
}

// bucket accumulates pixels whose colours fall into the same Lab cell.
type bucket struct {
	cell   uint32
	order  int
	weight int
	border bool

	sumR, sumG, sumB, sumA uint64

	mean       Colour
	saturation float64
	vivid      bool
}

// finalise computes the mean colour and the vividness classification.
func (b *bucket) finalise(vividSaturation float64) {
	n := float64(b.weight) * 255.0
	b.mean = Colour{
		R: float64(b.sumR) / n,
		G: float64(b.sumG) / n,
		B: float64(b.sumB) / n,
		A: float64(b.sumA) / n,
	}
	b.saturation = Saturation(b.mean)
	b.vivid = b.saturation >= vividSaturation
}

// bucketer groups pixels of one raster. It is owned by a single Extract call.
type bucketer struct {
	grid *grid

	// slots holds 1 + the bucket index of each grid cell, 0 when unseen.
	slots   []int32
	buckets []bucket
}

func newBucketer(g *grid) *bucketer {
	return &bucketer{grid: g, slots: make([]int32, g.count)}
}

// scan adds every pixel of the raster. Fully transparent pixels are skipped
// unless includeTransparent is set.
func (q *bucketer) scan(raster *image.NRGBA, includeTransparent bool) {
	bounds := raster.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	cells := q.grid.cells

	for y := 0; y < h; y++ {
		row := raster.Pix[y*raster.Stride : y*raster.Stride+w*4]
		edgeRow := y == 0 || y == h-1
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+4 : x*4+4]
			if p[3] == 0 && !includeTransparent {
				continue
			}

			cell := cells[gridIndex(p[0], p[1], p[2])]
			n := q.slots[cell]
			if n == 0 {
				q.buckets = append(q.buckets, bucket{cell: cell, order: len(q.buckets)})
				n = int32(len(q.buckets))
				q.slots[cell] = n
			}

			bk := &q.buckets[n-1]
			bk.weight++
			bk.sumR += uint64(p[0])
			bk.sumG += uint64(p[1])
			bk.sumB += uint64(p[2])
			bk.sumA += uint64(p[3])
			if edgeRow || x == 0 || x == w-1 {
				bk.border = true
			}
		}
	}
}

// bucketRaster groups the raster into buckets ranked by weight, heaviest
// first, ties kept in discovery order.
func bucketRaster(raster *image.NRGBA, g *grid, vividSaturation float64) []*bucket {
	q := newBucketer(g)
	q.scan(raster, false)
	if len(q.buckets) == 0 {
		// Every pixel is transparent; analyse them anyway.
		q.scan(raster, true)
	}

	ranked := make([]*bucket, len(q.buckets))
	for i := range q.buckets {
		q.buckets[i].finalise(vividSaturation)
		ranked[i] = &q.buckets[i]
	}
	slices.SortStableFunc(ranked, func(a, b *bucket) int {
		return cmp.Compare(b.weight, a.weight)
	})
	return ranked
}
