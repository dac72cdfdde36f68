package game

import (
	"reflect"
	"testing"
)

// testGrid builds a fixed column-range-valid card whose first row is
// [5,20,35,50,65], matching the worked reach example.
func testGrid() Grid {
	var g Grid
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			g[row][col] = col*15 + row*3 + 1
		}
	}
	g[0] = [5]int{5, 20, 35, 50, 65}
	g[2][2] = FreeCell
	return g
}

func TestCheckBingo(t *testing.T) {
	t.Run("empty grid is not bingo", func(t *testing.T) {
		if CheckBingo(Marks{}) {
			t.Error("expected false for empty grid")
		}
	})

	t.Run("full grid is bingo", func(t *testing.T) {
		var m Marks
		for row := 0; row < 5; row++ {
			for col := 0; col < 5; col++ {
				m[row][col] = true
			}
		}
		if !CheckBingo(m) {
			t.Error("expected true for fully marked grid")
		}
	})

	t.Run("each single full line is bingo", func(t *testing.T) {
		for row := 0; row < 5; row++ {
			var m Marks
			for col := 0; col < 5; col++ {
				m[row][col] = true
			}
			if !CheckBingo(m) {
				t.Errorf("row %d not detected", row)
			}
		}
		for col := 0; col < 5; col++ {
			var m Marks
			for row := 0; row < 5; row++ {
				m[row][col] = true
			}
			if !CheckBingo(m) {
				t.Errorf("column %d not detected", col)
			}
		}
		var diag, anti Marks
		for i := 0; i < 5; i++ {
			diag[i][i] = true
			anti[i][4-i] = true
		}
		if !CheckBingo(diag) {
			t.Error("main diagonal not detected")
		}
		if !CheckBingo(anti) {
			t.Error("anti-diagonal not detected")
		}
	})

	t.Run("free cell plus four in matching line is bingo", func(t *testing.T) {
		m := NewMarks()
		for col := 0; col < 5; col++ {
			if col != 2 {
				m[2][col] = true
			}
		}
		if !CheckBingo(m) {
			t.Error("middle row through FREE not detected")
		}
	})
}

func TestCheckReach(t *testing.T) {
	t.Run("four of five in a row is reach", func(t *testing.T) {
		var m Marks
		m[0][0], m[0][1], m[0][2], m[0][3] = true, true, true, true
		if !CheckReach(m) {
			t.Error("expected reach")
		}
	})

	t.Run("completed line is not reach", func(t *testing.T) {
		var m Marks
		for col := 0; col < 5; col++ {
			m[0][col] = true
		}
		if CheckReach(m) {
			t.Error("full row should not count as reach")
		}
	})

	t.Run("reach and bingo never both true", func(t *testing.T) {
		grids := []Marks{}
		var full Marks
		for row := 0; row < 5; row++ {
			for col := 0; col < 5; col++ {
				full[row][col] = true
			}
		}
		var diag Marks
		for i := 0; i < 5; i++ {
			diag[i][i] = true
		}
		grids = append(grids, full, diag, NewMarks())
		for i, m := range grids {
			if CheckBingo(m) && CheckReach(m) {
				t.Errorf("grid %d reports both bingo and reach", i)
			}
		}
	})
}

func TestMissingForReach(t *testing.T) {
	g := testGrid()

	t.Run("single reach line yields its one unmarked number", func(t *testing.T) {
		var m Marks
		m[0][0], m[0][1], m[0][2], m[0][3] = true, true, true, true
		got := MissingForReach(m, g)
		if !reflect.DeepEqual(got, []int{65}) {
			t.Errorf("expected [65], got %v", got)
		}
	})

	t.Run("multiple reach lines each contribute", func(t *testing.T) {
		var m Marks
		// Row 0 missing (0,4); column 0 missing (4,0).
		m[0][0], m[0][1], m[0][2], m[0][3] = true, true, true, true
		m[1][0], m[2][0], m[3][0] = true, true, true
		got := MissingForReach(m, g)
		want := []int{g[4][0], g[0][4]}
		if want[0] > want[1] {
			want[0], want[1] = want[1], want[0]
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("no reach yields empty set", func(t *testing.T) {
		if got := MissingForReach(NewMarks(), g); len(got) != 0 {
			t.Errorf("expected no missing numbers, got %v", got)
		}
	})
}
