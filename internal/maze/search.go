package maze

// search runs a breadth-first search from the rover's cell to the nearest
// cell of the target kind, following established links only. Neighbors
// are expanded in the fixed AllDirections order, so ties between equally
// near targets always resolve the same way. Black cells are never
// entered. The returned route excludes the rover's cell and ends on the
// target; it is nil when no target is reachable or the rover already
// stands on one.
func (m *Maze) search(target Kind) []Position {
	queue := []Position{m.pos}
	visited := map[Position]bool{m.pos: true}
	parent := make(map[Position]Position)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cell := m.cells[cur]
		if cell.Kind == target {
			return m.reconstruct(parent, cur)
		}
		for _, d := range AllDirections() {
			np, ok := cell.Neighbor(d)
			if !ok || visited[np] {
				continue
			}
			if m.cells[np].Kind == KindBlack {
				continue
			}
			visited[np] = true
			parent[np] = cur
			queue = append(queue, np)
		}
	}
	return nil
}

// reconstruct walks the parent links back from the target and reverses
// them into rover-to-target order.
func (m *Maze) reconstruct(parent map[Position]Position, target Position) []Position {
	if target == m.pos {
		return nil
	}
	var path []Position
	for cur := target; cur != m.pos; cur = parent[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
