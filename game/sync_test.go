package game

import "testing"

func TestSynchronizer(t *testing.T) {
	t.Run("first observation of a fresh game is silent", func(t *testing.T) {
		s := &Synchronizer{}
		if s.Observe(0, 0) {
			t.Error("fresh game should not emit")
		}
		if s.State() != Synced {
			t.Errorf("expected Synced, got %v", s.State())
		}
	})

	t.Run("cold attach with history is suppressed by default", func(t *testing.T) {
		s := &Synchronizer{}
		if s.Observe(17, 5) {
			t.Error("cold attach should not replay history when the policy is off")
		}
		if s.Observe(17, 5) {
			t.Error("duplicate delivery should not emit")
		}
	})

	t.Run("cold attach replays exactly once when enabled", func(t *testing.T) {
		s := &Synchronizer{ReplayOnColdAttach: true}
		if !s.Observe(17, 5) {
			t.Fatal("expected one replay on cold attach with history")
		}
		s.Done()
		if s.Observe(17, 5) {
			t.Error("replay must happen at most once")
		}
	})

	t.Run("replay policy does not fire on empty history", func(t *testing.T) {
		s := &Synchronizer{ReplayOnColdAttach: true}
		if s.Observe(0, 0) {
			t.Error("nothing to replay on a fresh game")
		}
	})

	t.Run("new number emits exactly once", func(t *testing.T) {
		s := &Synchronizer{}
		s.Observe(0, 0)
		if !s.Observe(7, 1) {
			t.Fatal("expected emit for newly drawn number")
		}
		s.Done()
		if s.Observe(7, 1) {
			t.Error("redelivered snapshot must not emit again")
		}
		if !s.Observe(23, 2) {
			t.Error("next draw should emit")
		}
	})

	t.Run("a draw during reaction is handed back by Done", func(t *testing.T) {
		s := &Synchronizer{}
		s.Observe(0, 0)
		if !s.Observe(7, 1) {
			t.Fatal("expected emit")
		}
		// Second draw lands before Done.
		if s.Observe(23, 2) {
			t.Error("must not double-trigger while reacting")
		}
		next, again := s.Done()
		if !again || next != 23 {
			t.Fatalf("expected Done to hand back 23, got (%d, %v)", next, again)
		}
		if _, again := s.Done(); again {
			t.Error("no further pending draw expected")
		}
		if s.Observe(23, 2) {
			t.Error("redelivery of the handed-back number must not re-emit")
		}
		if !s.Observe(31, 3) {
			t.Error("fresh draw after Done should emit")
		}
	})

	t.Run("the newest draw wins while reacting", func(t *testing.T) {
		s := &Synchronizer{}
		s.Observe(0, 0)
		if !s.Observe(7, 1) {
			t.Fatal("expected emit")
		}
		s.Observe(23, 2)
		s.Observe(31, 3)
		next, again := s.Done()
		if !again || next != 31 {
			t.Fatalf("expected the latest snapshot's number 31, got (%d, %v)", next, again)
		}
		if _, again := s.Done(); again {
			t.Error("expected Synced after the handed-back number is processed")
		}
		if s.State() != Synced {
			t.Errorf("expected Synced, got %v", s.State())
		}
	})

	t.Run("every draw is eventually emitted despite racing updates", func(t *testing.T) {
		s := &Synchronizer{}
		s.Observe(0, 0)
		emitted := make(map[int]bool)
		for n := 1; n <= 5; n++ {
			if s.Observe(n, n) {
				emitted[n] = true
				// The next draw arrives before this reaction finishes.
				if n < 5 {
					s.Observe(n+1, n+1)
					n++
				}
				for {
					next, again := s.Done()
					if !again {
						break
					}
					emitted[next] = true
				}
			}
		}
		for n := 1; n <= 5; n++ {
			if !emitted[n] {
				t.Errorf("number %d was never emitted", n)
			}
		}
	})
}
