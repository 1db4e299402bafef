package graph

import (
	"math"

	"github.com/zyedidia/generic/mapset"
)

// relaxEpsilon keeps float noise from overturning an already settled path.
const relaxEpsilon = 1e-9

// Search runs a breadth-first shortest-route search from set[src] over the
// vertices listed in set and returns one route per entry of set, in order.
//
// Edges leading outside set and disabled edges are skipped. Neighbors are
// visited in edge-list order and a vertex is re-queued only when a strictly
// shorter distance reaches it, so on equal distances the first settled
// predecessor wins. Unreachable entries hold the Unreachable route; the
// source holds the single-vertex route at distance 0.
func (g *Graph) Search(set []VertexID, src int) []Route {
	n := len(set)
	routes := make([]Route, n)
	if src < 0 || src >= n {
		for i := range routes {
			routes[i] = Unreachable()
		}
		return routes
	}

	index := make(map[VertexID]int, n)
	for i, id := range set {
		index[id] = i
	}

	dist := make([]float64, n)
	prev := make([]int, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[src] = 0

	queue := make([]int, 0, n)
	queue = append(queue, src)
	queued := mapset.New[int]()
	queued.Put(src)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		queued.Remove(cur)

		v := g.Vertex(set[cur])
		if v == nil {
			continue
		}
		for _, e := range v.Edges {
			if !e.Enabled {
				continue
			}
			next, ok := index[e.To]
			if !ok {
				continue
			}
			nd := dist[cur] + e.Weight
			if nd < dist[next]-relaxEpsilon {
				dist[next] = nd
				prev[next] = cur
				if !queued.Has(next) {
					queued.Put(next)
					queue = append(queue, next)
				}
			}
		}
	}

	for i := range set {
		routes[i] = buildRoute(set, prev, dist, src, i)
	}
	return routes
}

// buildRoute walks predecessors from dst back to src and reverses the walk.
func buildRoute(set []VertexID, prev []int, dist []float64, src, dst int) Route {
	if math.IsInf(dist[dst], 1) {
		return Unreachable()
	}
	var walk []VertexID
	for at := dst; at != -1; at = prev[at] {
		walk = append(walk, set[at])
		if at == src {
			break
		}
	}
	for i, j := 0, len(walk)-1; i < j; i, j = i+1, j-1 {
		walk[i], walk[j] = walk[j], walk[i]
	}
	return NewRoute(dist[dst], walk...)
}
