package colshape

import "sort"

// Transitions is the outcome of one tick: the shapes the tracked point
// entered and the shapes it left. Both lists are sorted by id so a fixed
// input sequence always yields the same batches.
type Transitions struct {
	Entered []string
	Left    []string
}

// Empty reports whether the tick produced no transitions.
func (t Transitions) Empty() bool {
	return len(t.Entered) == 0 && len(t.Left) == 0
}

// Tracker remembers which shapes contained the tracked point on the
// previous tick and diffs each new containment set against it.
type Tracker struct {
	inside map[Handle]string // handle → shape id
}

func NewTracker() *Tracker {
	return &Tracker{inside: make(map[Handle]string)}
}

// Step recomputes the full containment set for p and replaces the
// previous one with it.
func (t *Tracker) Step(r *Registry, p Vector3) Transitions {
	current := make(map[Handle]string, len(t.inside))
	r.Candidates(p, func(s *Shape) {
		if Contains(p, s) {
			current[s.handle] = s.ID
		}
	})

	var tr Transitions
	for h, id := range current {
		if _, was := t.inside[h]; !was {
			tr.Entered = append(tr.Entered, id)
		}
	}
	for h, id := range t.inside {
		if _, still := current[h]; !still {
			tr.Left = append(tr.Left, id)
		}
	}
	sort.Strings(tr.Entered)
	sort.Strings(tr.Left)

	t.inside = current
	return tr
}

// Forget drops h from the inside set without reporting a transition.
// Called when a shape is deleted.
func (t *Tracker) Forget(h Handle) {
	delete(t.inside, h)
}

// Inside returns the ids currently containing the tracked point, sorted.
func (t *Tracker) Inside() []string {
	ids := make([]string, 0, len(t.inside))
	for _, id := range t.inside {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
