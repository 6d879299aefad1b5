package renderer

import (
	"github.com/df07/go-wknder/pkg/core"
)

// Band is a contiguous range of image rows rendered by a single worker
type Band struct {
	ID      int          // Unique band identifier
	MinY    int          // First row, counted from the top of the image
	MaxY    int          // One past the last row
	Sampler core.Sampler // Band-specific random stream for deterministic results
}

// Rows returns the number of rows in the band
func (b *Band) Rows() int {
	return b.MaxY - b.MinY
}

// NewBand creates a band over rows [minY, maxY) seeded from seed+id
func NewBand(id, minY, maxY int, seed int64) *Band {
	return &Band{
		ID:      id,
		MinY:    minY,
		MaxY:    maxY,
		Sampler: core.NewSeededSampler(seed + int64(id)),
	}
}

// NewBandGrid splits height rows into count contiguous, disjoint bands that
// cover the whole image. Earlier bands take the remainder rows.
func NewBandGrid(height, count int, seed int64) []*Band {
	count = max(1, min(count, height))
	base := height / count
	extra := height % count

	bands := make([]*Band, 0, count)
	y := 0
	for id := 0; id < count; id++ {
		rows := base
		if id < extra {
			rows++
		}
		bands = append(bands, NewBand(id, y, y+rows, seed))
		y += rows
	}
	return bands
}
