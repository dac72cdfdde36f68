package game

// MarkResult is the outcome of running a mark through the evaluator pipeline.
// Bingo and Reach are mutually exclusive; Missing is only populated on reach.
type MarkResult struct {
	Marks   Marks
	Changed bool
	Bingo   bool
	Reach   bool
	Missing []int
}

// AutoMark marks every cell of the card matching the drawn number that is not
// already marked. A card normally holds a number at most once, but duplicates
// are tolerated. When nothing changed the input grid is returned unclassified;
// otherwise the result carries the evaluator's verdict for the new grid.
func AutoMark(numbers Grid, marks Marks, drawn int) MarkResult {
	changed := false
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			if numbers[row][col] == drawn && !marks[row][col] {
				marks[row][col] = true
				changed = true
			}
		}
	}
	if !changed {
		return MarkResult{Marks: marks}
	}
	return classify(numbers, marks)
}

// ManualMark marks a single cell tapped by the participant. The mark is a
// no-op unless the cell is not the FREE cell, its number has actually been
// drawn, and it is not already marked. Valid marks share AutoMark's
// classification pipeline.
func ManualMark(numbers Grid, marks Marks, row, col int, drawnNumbers []int) MarkResult {
	if row < 0 || row > 4 || col < 0 || col > 4 {
		return MarkResult{Marks: marks}
	}
	if row == 2 && col == 2 {
		return MarkResult{Marks: marks}
	}
	if marks[row][col] {
		return MarkResult{Marks: marks}
	}
	wasDrawn := false
	for _, n := range drawnNumbers {
		if n == numbers[row][col] {
			wasDrawn = true
			break
		}
	}
	if !wasDrawn {
		return MarkResult{Marks: marks}
	}

	marks[row][col] = true
	return classify(numbers, marks)
}

func classify(numbers Grid, marks Marks) MarkResult {
	result := MarkResult{Marks: marks, Changed: true}
	if CheckBingo(marks) {
		result.Bingo = true
		return result
	}
	if CheckReach(marks) {
		result.Reach = true
		result.Missing = MissingForReach(marks, numbers)
	}
	return result
}
