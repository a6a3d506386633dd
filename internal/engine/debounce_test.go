package engine

import (
	"slices"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestMembershipDebouncerWindow(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d := NewMembershipDebouncer(clock, 200*time.Millisecond)

	d.Schedule("s1")
	if got := d.Ready(); got != nil {
		t.Fatalf("Ready() immediately = %v", got)
	}

	clock.Advance(199 * time.Millisecond)
	if got := d.Ready(); got != nil {
		t.Fatalf("Ready() before window = %v", got)
	}

	clock.Advance(time.Millisecond)
	if got := d.Ready(); !slices.Equal(got, []string{"s1"}) {
		t.Fatalf("Ready() after window = %v, want [s1]", got)
	}
	if got := d.Ready(); got != nil {
		t.Fatalf("Ready() twice = %v", got)
	}
}

func TestMembershipDebouncerCoalesces(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d := NewMembershipDebouncer(clock, 200*time.Millisecond)

	d.Schedule("s1")
	clock.Advance(150 * time.Millisecond)
	d.Schedule("s1")
	d.Schedule("s2")
	clock.Advance(150 * time.Millisecond)
	if got := d.Ready(); got != nil {
		t.Fatalf("Ready() after reschedule = %v", got)
	}
	if d.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", d.Pending())
	}

	clock.Advance(50 * time.Millisecond)
	if got := d.Ready(); !slices.Equal(got, []string{"s1", "s2"}) {
		t.Fatalf("Ready() = %v, want [s1 s2]", got)
	}
}

func TestMembershipDebouncerHold(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d := NewMembershipDebouncer(clock, 200*time.Millisecond)

	d.Hold()
	d.Hold()
	d.Schedule("s1")
	clock.Advance(time.Second)
	if got := d.Ready(); got != nil {
		t.Fatalf("Ready() while held = %v", got)
	}

	d.Release()
	if !d.Held() {
		t.Fatal("nested hold released early")
	}
	if got := d.Ready(); got != nil {
		t.Fatalf("Ready() with one hold left = %v", got)
	}

	d.Release()
	if d.Held() {
		t.Fatal("still held after final release")
	}
	if got := d.Ready(); got != nil {
		t.Fatalf("Ready() right after release = %v, want re-armed window", got)
	}

	clock.Advance(200 * time.Millisecond)
	if got := d.Ready(); !slices.Equal(got, []string{"s1"}) {
		t.Fatalf("Ready() after re-armed window = %v", got)
	}

	d.Release()
	if d.Held() {
		t.Fatal("extra release produced a hold")
	}
}

func TestMembershipDebouncerCancelAndDefaults(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d := NewMembershipDebouncer(clock, 0)

	d.Schedule("s1")
	d.Cancel("s1")
	clock.Advance(DefaultMembershipDebounce)
	if got := d.Ready(); got != nil {
		t.Fatalf("Ready() after cancel = %v", got)
	}

	d.Schedule("s2")
	clock.Advance(DefaultMembershipDebounce - time.Millisecond)
	if got := d.Ready(); got != nil {
		t.Fatalf("default window fired early: %v", got)
	}
	clock.Advance(time.Millisecond)
	if got := d.Ready(); !slices.Equal(got, []string{"s2"}) {
		t.Fatalf("Ready() = %v, want [s2]", got)
	}
}
