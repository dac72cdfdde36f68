package game

import "sort"

// line is a set of five cell coordinates forming a winning line.
type line [5][2]int

// lines enumerates the 12 winning lines in a fixed order: rows 0-4,
// columns 0-4, main diagonal, anti-diagonal. MissingForReach depends on
// this order being stable.
func lines() []line {
	out := make([]line, 0, 12)
	for row := 0; row < 5; row++ {
		var l line
		for col := 0; col < 5; col++ {
			l[col] = [2]int{row, col}
		}
		out = append(out, l)
	}
	for col := 0; col < 5; col++ {
		var l line
		for row := 0; row < 5; row++ {
			l[row] = [2]int{row, col}
		}
		out = append(out, l)
	}
	var diag, anti line
	for i := 0; i < 5; i++ {
		diag[i] = [2]int{i, i}
		anti[i] = [2]int{i, 4 - i}
	}
	return append(out, diag, anti)
}

func markedCount(m Marks, l line) int {
	count := 0
	for _, cell := range l {
		if m[cell[0]][cell[1]] {
			count++
		}
	}
	return count
}

// CheckBingo reports whether any row, column or diagonal is fully marked.
func CheckBingo(m Marks) bool {
	for _, l := range lines() {
		if markedCount(m, l) == 5 {
			return true
		}
	}
	return false
}

// CheckReach reports whether any line has exactly four of five cells marked.
// A completed line is bingo, not reach; callers only invoke this when
// CheckBingo is false.
func CheckReach(m Marks) bool {
	for _, l := range lines() {
		if markedCount(m, l) == 4 {
			return true
		}
	}
	return false
}

// MissingForReach returns the numbers sitting under the single unmarked cell
// of every line that is one mark away from bingo. A grid can be on reach along
// several lines at once; each contributes its missing number. The result is
// deduplicated and sorted ascending.
func MissingForReach(m Marks, numbers Grid) []int {
	seen := make(map[int]bool)
	var missing []int
	for _, l := range lines() {
		if markedCount(m, l) != 4 {
			continue
		}
		for _, cell := range l {
			if !m[cell[0]][cell[1]] {
				n := numbers[cell[0]][cell[1]]
				if !seen[n] {
					seen[n] = true
					missing = append(missing, n)
				}
			}
		}
	}
	sort.Ints(missing)
	return missing
}
