package system

import "fringe-client/internal/gamemap"

// FindPath returns the shortest 4-connected walkable path from `from` to
// `to`, both ends included, or nil when `to` cannot be reached. The start
// tile itself need not be walkable.
func FindPath(m *gamemap.Map, from, to gamemap.Point) []gamemap.Point {
	if !m.InBounds(from.X, from.Y) || !m.IsWalkable(to.X, to.Y) {
		return nil
	}
	if from == to {
		return []gamemap.Point{from}
	}

	prev := make([]int, m.Width*m.Height)
	for i := range prev {
		prev[i] = -1
	}
	idx := func(p gamemap.Point) int { return p.Y*m.Width + p.X }
	start := idx(from)
	prev[start] = start

	queue := []gamemap.Point{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			break
		}
		for _, d := range dirs {
			n := gamemap.Point{X: cur.X + d[0], Y: cur.Y + d[1]}
			if !m.IsWalkable(n.X, n.Y) || prev[idx(n)] != -1 {
				continue
			}
			prev[idx(n)] = idx(cur)
			queue = append(queue, n)
		}
	}
	if prev[idx(to)] == -1 {
		return nil
	}

	var path []gamemap.Point
	for i := idx(to); ; i = prev[i] {
		path = append(path, gamemap.Point{X: i % m.Width, Y: i / m.Width})
		if i == start {
			break
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
