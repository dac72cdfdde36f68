package game

import "testing"

// Simulates a participant's full round: the host draws until the card hits
// bingo or the pool runs dry, with every ledger append flowing through the
// synchronizer into auto-marking.
func TestDrawUntilBingo(t *testing.T) {
	card := Generate()
	marks := NewMarks()
	sync := &Synchronizer{}
	var ledger []int

	sync.Observe(0, 0) // attach to the fresh game

	emits := 0
	sawReach := false
	for {
		n, err := DrawNext(ledger)
		if err != nil {
			if len(ledger) != PoolSize {
				t.Fatalf("pool exhausted after %d draws", len(ledger))
			}
			break
		}
		ledger = append(ledger, n)

		if !sync.Observe(n, len(ledger)) {
			t.Fatalf("draw %d not emitted", n)
		}
		emits++

		res := AutoMark(card, marks, n)
		marks = res.Marks
		sync.Done()

		if res.Reach {
			sawReach = true
			if len(res.Missing) == 0 {
				t.Fatal("reach reported without missing numbers")
			}
			for _, missing := range res.Missing {
				found := false
				for row := 0; row < 5; row++ {
					for col := 0; col < 5; col++ {
						if card[row][col] == missing {
							found = true
						}
					}
				}
				if !found {
					t.Fatalf("missing number %d not on the card", missing)
				}
			}
		}
		if res.Bingo {
			if !CheckBingo(marks) {
				t.Fatal("bingo reported but grid disagrees")
			}
			break
		}
	}

	if emits != len(ledger) {
		t.Errorf("expected one emit per draw, got %d for %d draws", emits, len(ledger))
	}
	// 24 real numbers plus FREE must always produce a bingo before the pool
	// empties, and a reach necessarily precedes it.
	if !CheckBingo(marks) {
		t.Error("card never reached bingo despite full pool")
	}
	if !sawReach {
		t.Error("bingo happened without an observed reach")
	}

	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			if !marks[row][col] {
				continue
			}
			if row == 2 && col == 2 {
				continue
			}
			drawn := false
			for _, n := range ledger {
				if n == card[row][col] {
					drawn = true
					break
				}
			}
			if !drawn {
				t.Errorf("cell (%d,%d)=%d marked without being drawn", row, col, card[row][col])
			}
		}
	}
}
