package engine

import (
	"slices"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultMembershipDebounce is the quiet window before a section's
// membership is recomputed.
const DefaultMembershipDebounce = 200 * time.Millisecond

// MembershipDebouncer coalesces membership recompute requests per section.
// It is polled from the owner's event loop; it never starts goroutines.
type MembershipDebouncer struct {
	clock   clockwork.Clock
	window  time.Duration
	pending map[string]time.Time
	holds   int
}

// NewMembershipDebouncer creates a debouncer. A nil clock uses the real clock
// and a non-positive window uses DefaultMembershipDebounce.
func NewMembershipDebouncer(clock clockwork.Clock, window time.Duration) *MembershipDebouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if window <= 0 {
		window = DefaultMembershipDebounce
	}
	return &MembershipDebouncer{
		clock:   clock,
		window:  window,
		pending: make(map[string]time.Time),
	}
}

// Schedule requests a recompute of sectionID, restarting its quiet window.
func (d *MembershipDebouncer) Schedule(sectionID string) {
	d.pending[sectionID] = d.clock.Now()
}

// Cancel drops any pending request for sectionID.
func (d *MembershipDebouncer) Cancel(sectionID string) {
	delete(d.pending, sectionID)
}

// Hold suspends releases while an interaction is in progress. Holds nest.
func (d *MembershipDebouncer) Hold() {
	d.holds++
}

// Release ends one hold. When the last hold is released every pending section
// is re-armed so it fires a full window after the interaction ends.
func (d *MembershipDebouncer) Release() {
	if d.holds == 0 {
		return
	}
	d.holds--
	if d.holds > 0 {
		return
	}
	now := d.clock.Now()
	for id := range d.pending {
		d.pending[id] = now
	}
}

func (d *MembershipDebouncer) Held() bool { return d.holds > 0 }
func (d *MembershipDebouncer) Pending() int { return len(d.pending) }

// Ready returns, in sorted order, the sections whose quiet window has elapsed
// and removes them from the pending set. Nothing is returned while held.
func (d *MembershipDebouncer) Ready() []string {
	if d.holds > 0 || len(d.pending) == 0 {
		return nil
	}
	now := d.clock.Now()
	var ready []string
	for id, at := range d.pending {
		if now.Sub(at) >= d.window {
			ready = append(ready, id)
		}
	}
	for _, id := range ready {
		delete(d.pending, id)
	}
	slices.Sort(ready)
	return ready
}
