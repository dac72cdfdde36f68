package game

import "math/rand"

// FreeCell is the sentinel value of the permanently marked center cell.
const FreeCell = 0

// PoolSize is the highest drawable number; the pool is [1, PoolSize].
const PoolSize = 75

// Grid is a 5x5 bingo card in row-major order.
type Grid [5][5]int

// Marks is the marking state of a card, parallel to Grid.
type Marks [5][5]bool

// Column ranges: B 1-15, I 16-30, N 31-45, G 46-60, O 61-75.
const columnSpan = 15

// Generate produces a random card. Each column holds five distinct numbers
// from its own 15-number range, except the center cell which is FreeCell.
// Generation is column-major, the returned grid is transposed to row-major.
func Generate() Grid {
	var columns [5][5]int
	for col := 0; col < 5; col++ {
		low := col*columnSpan + 1
		used := make(map[int]bool, 5)
		for row := 0; row < 5; row++ {
			if col == 2 && row == 2 {
				columns[col][row] = FreeCell
				continue
			}
			n := low + rand.Intn(columnSpan)
			for used[n] {
				n = low + rand.Intn(columnSpan)
			}
			used[n] = true
			columns[col][row] = n
		}
	}

	var card Grid
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			card[row][col] = columns[col][row]
		}
	}
	return card
}

// NewMarks returns the initial marking grid with only the FREE cell marked.
func NewMarks() Marks {
	var m Marks
	m[2][2] = true
	return m
}
