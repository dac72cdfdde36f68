package game

import "testing"

func TestGenerate(t *testing.T) {
	t.Run("columns stay in range and hold distinct numbers", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			card := Generate()
			for col := 0; col < 5; col++ {
				low, high := col*15+1, col*15+15
				seen := make(map[int]bool)
				for row := 0; row < 5; row++ {
					if col == 2 && row == 2 {
						continue
					}
					n := card[row][col]
					if n < low || n > high {
						t.Fatalf("cell (%d,%d) = %d outside [%d,%d]", row, col, n, low, high)
					}
					if seen[n] {
						t.Fatalf("column %d repeats %d", col, n)
					}
					seen[n] = true
				}
			}
		}
	})

	t.Run("center cell is the free sentinel", func(t *testing.T) {
		card := Generate()
		if card[2][2] != FreeCell {
			t.Errorf("expected FREE at (2,2), got %d", card[2][2])
		}
	})
}

func TestNewMarks(t *testing.T) {
	m := NewMarks()
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			want := row == 2 && col == 2
			if m[row][col] != want {
				t.Errorf("cell (%d,%d) = %v, want %v", row, col, m[row][col], want)
			}
		}
	}
}
