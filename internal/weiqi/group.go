package weiqi

// collectGroup flood-fills the group of same-colored stones containing (x, y)
// and returns its stones together with the set of empty cells adjacent to it.
func (b *Board) collectGroup(x, y int) ([]point, map[point]struct{}) {
	color := b[y][x]
	liberties := make(map[point]struct{})
	if color == Empty {
		return nil, liberties
	}

	seen := map[point]bool{{x, y}: true}
	stack := []point{{x, y}}
	var stones []point

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stones = append(stones, cur)

		for _, n := range neighbors(cur.x, cur.y) {
			switch v := b[n.y][n.x]; {
			case v == Empty:
				liberties[n] = struct{}{}
			case v == color && !seen[n]:
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}

	return stones, liberties
}

// Liberties returns the liberty count of the group at (x, y); 0 for an empty cell.
func (b *Board) Liberties(x, y int) int {
	if !onBoard(x, y) {
		return 0
	}
	_, libs := b.collectGroup(x, y)
	return len(libs)
}
