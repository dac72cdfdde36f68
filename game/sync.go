package game

// SyncState is the per-client position in the ledger synchronization
// state machine.
type SyncState int

const (
	// Uninitialized means no authoritative current number has been seen yet.
	Uninitialized SyncState = iota
	// Synced means the local shadow matches the last authoritative value.
	Synced
	// Reacting means a change was just detected and downstream consumers
	// (auto-mark, presentation) are still processing it.
	Reacting
)

// Synchronizer reconciles one client's view of a game's current number with
// the authoritative ledger. It turns at-least-once snapshot delivery into an
// edge-triggered "new number" signal: exactly one emit per real change,
// duplicates suppressed, and the game's full history never replayed on attach.
//
// ReplayOnColdAttach is the one deliberate exception: when true, the very
// first observation of a game that already has history emits once, so a client
// joining mid-game still sees the reveal for the most recent draw. Later
// duplicates are suppressed regardless.
type Synchronizer struct {
	ReplayOnColdAttach bool

	state   SyncState
	shadow  int // 0 = none observed
	pending int // draw observed while Reacting, emitted by Done
}

// State returns the current machine state.
func (s *Synchronizer) State() SyncState {
	return s.state
}

// Observe feeds one authoritative update: the game's current number
// (0 when none drawn yet) and the ledger length at that moment. It reports
// whether the caller should react to current as a newly drawn number.
func (s *Synchronizer) Observe(current, drawnCount int) bool {
	switch s.state {
	case Uninitialized:
		s.shadow = current
		s.state = Synced
		if current != 0 && s.ReplayOnColdAttach && drawnCount > 0 {
			s.state = Reacting
			return true
		}
		return false
	case Synced:
		if current == 0 || current == s.shadow {
			return false
		}
		s.shadow = current
		s.state = Reacting
		return true
	default:
		// A newer draw landed while downstream consumers are still busy.
		// Hold it for Done instead of adopting it, so no ledger change is
		// ever swallowed.
		if current != 0 && current != s.shadow {
			s.pending = current
		}
		return false
	}
}

// Done signals that downstream processing of the last emitted number has
// completed. When a newer draw was observed during the reaction, Done hands
// it back: the machine stays Reacting and the caller reacts to the returned
// number before calling Done again. Otherwise the machine returns to Synced.
func (s *Synchronizer) Done() (int, bool) {
	if s.state != Reacting {
		return 0, false
	}
	if s.pending != 0 && s.pending != s.shadow {
		s.shadow = s.pending
		s.pending = 0
		return s.shadow, true
	}
	s.pending = 0
	s.state = Synced
	return 0, false
}
