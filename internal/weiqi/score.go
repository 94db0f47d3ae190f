package weiqi

// Result is an area score: stones on the board plus surrounded territory plus
// stones captured during play. Winner is Empty for a draw.
type Result struct {
	Black  int   `json:"black"`
	White  int   `json:"white"`
	Winner Stone `json:"winner"`
}

// Territory credits every maximal empty region to the single color that
// borders it. Regions touching both colors (dame) or no stones at all count
// for nobody.
func (b *Board) Territory() (black, white int) {
	var visited [Size][Size]bool

	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if visited[y][x] || b[y][x] != Empty {
				continue
			}

			visited[y][x] = true
			queue := []point{{x, y}}
			size := 0
			var bordering [3]bool

			for len(queue) > 0 {
				cur := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				size++

				for _, n := range neighbors(cur.x, cur.y) {
					v := b[n.y][n.x]
					if v != Empty {
						bordering[v] = true
						continue
					}
					if !visited[n.y][n.x] {
						visited[n.y][n.x] = true
						queue = append(queue, n)
					}
				}
			}

			switch {
			case bordering[Black] && !bordering[White]:
				black += size
			case bordering[White] && !bordering[Black]:
				white += size
			}
		}
	}

	return black, white
}

// Score computes the current area score without ending the game.
func (that *Game) Score() Result {
	blackTerritory, whiteTerritory := that.board.Territory()

	result := Result{
		Black: that.board.Count(Black) + blackTerritory + that.captures[Black],
		White: that.board.Count(White) + whiteTerritory + that.captures[White],
	}

	switch {
	case result.Black > result.White:
		result.Winner = Black
	case result.White > result.Black:
		result.Winner = White
	default:
		result.Winner = Empty
	}

	return result
}
