package graph

import (
	"math"
	"sort"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
)

// NearbyQuerier answers "which points lie within radius of center". The host
// may back it with a physics engine; BucketIndex is the built-in version.
type NearbyQuerier interface {
	Nearby(center geo.Vec2, radius float64) []VertexID
}

// BucketIndex hashes vertex positions into square grid cells.
type BucketIndex struct {
	cellSize float64
	buckets  map[[2]int][]VertexID
	pos      map[VertexID]geo.Vec2
}

// NewBucketIndex creates an index with the given cell size. A cell size close
// to the usual query radius keeps lookups to a handful of cells.
func NewBucketIndex(cellSize float64) *BucketIndex {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &BucketIndex{
		cellSize: cellSize,
		buckets:  make(map[[2]int][]VertexID),
		pos:      make(map[VertexID]geo.Vec2),
	}
}

func (b *BucketIndex) cellKey(p geo.Vec2) [2]int {
	return [2]int{int(math.Floor(p.X / b.cellSize)), int(math.Floor(p.Y / b.cellSize))}
}

// Insert indexes a vertex position.
func (b *BucketIndex) Insert(id VertexID, p geo.Vec2) {
	k := b.cellKey(p)
	b.buckets[k] = append(b.buckets[k], id)
	b.pos[id] = p
}

// Nearby returns the indexed vertices within radius of center, nearest first.
// Equal distances are ordered by VertexID for deterministic output.
func (b *BucketIndex) Nearby(center geo.Vec2, radius float64) []VertexID {
	lo := b.cellKey(geo.Vec2{X: center.X - radius, Y: center.Y - radius})
	hi := b.cellKey(geo.Vec2{X: center.X + radius, Y: center.Y + radius})

	var out []VertexID
	for cx := lo[0]; cx <= hi[0]; cx++ {
		for cy := lo[1]; cy <= hi[1]; cy++ {
			for _, id := range b.buckets[[2]int{cx, cy}] {
				if b.pos[id].Distance(center) <= radius {
					out = append(out, id)
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		di, dj := b.pos[out[i]].Distance(center), b.pos[out[j]].Distance(center)
		if di != dj {
			return di < dj
		}
		return out[i] < out[j]
	})
	return out
}

// ConnectNearby links every vertex in ids to the points q reports within
// radius of it. Returns the number of new connections.
func (g *Graph) ConnectNearby(q NearbyQuerier, ids []VertexID, radius float64) int {
	if q == nil || radius <= 0 {
		return 0
	}
	count := 0
	for _, id := range ids {
		v := g.Vertex(id)
		if v == nil {
			continue
		}
		for _, other := range q.Nearby(v.Pos, radius) {
			if other == id {
				continue
			}
			if g.Link(id, other, true) {
				count++
			}
		}
	}
	return count
}
