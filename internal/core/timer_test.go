package core

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestRepeaterIntervalReplaysMissedTicks(t *testing.T) {
	r := NewRepeater()
	r.Arm(RepeatInterval, 250*time.Millisecond, epoch)

	if r.Due(epoch.Add(100 * time.Millisecond)) {
		t.Fatal("fired before one interval elapsed")
	}
	if !r.Due(epoch.Add(250 * time.Millisecond)) {
		t.Fatal("did not fire after one interval")
	}
	// The loop stalls for three intervals: banked time is replayed one tick
	// per poll.
	late := epoch.Add(1000 * time.Millisecond)
	fired := 0
	for r.Due(late) {
		fired++
	}
	if fired != 3 {
		t.Fatalf("replayed %d ticks, want 3", fired)
	}
}

func TestRepeaterFrameDropsResidual(t *testing.T) {
	r := NewRepeater()
	r.Arm(RepeatFrame, 10*time.Millisecond, epoch)

	if r.Due(epoch.Add(10 * time.Millisecond)) {
		t.Fatal("frame mode fires only when strictly more than one interval elapsed")
	}
	late := epoch.Add(35 * time.Millisecond)
	if !r.Due(late) {
		t.Fatal("expected a frame after 35ms")
	}
	if r.Due(late) {
		t.Fatal("frame mode must not replay missed frames")
	}
	// 5ms of the 35ms remained banked.
	if !r.Due(late.Add(6 * time.Millisecond)) {
		t.Fatal("expected residual to carry into the next frame")
	}
}

func TestRepeaterArmReplacesAndCancelStops(t *testing.T) {
	r := NewRepeater()
	r.Arm(RepeatInterval, time.Second, epoch)
	gen := r.Generation()
	r.Arm(RepeatInterval, 10*time.Millisecond, epoch)
	if r.Generation() == gen {
		t.Fatal("re-arming must start a new schedule")
	}
	if r.Interval() != 10*time.Millisecond {
		t.Fatalf("interval = %v", r.Interval())
	}
	if !r.Due(epoch.Add(20 * time.Millisecond)) {
		t.Fatal("replacement schedule did not fire")
	}
	r.Cancel()
	if r.Armed() || r.Due(epoch.Add(time.Hour)) {
		t.Fatal("cancelled repeater fired")
	}
	r.Cancel()
}

func TestRepeaterNext(t *testing.T) {
	r := NewRepeater()
	r.Arm(RepeatInterval, 100*time.Millisecond, epoch)
	if got := r.Next(); !got.Equal(epoch.Add(100 * time.Millisecond)) {
		t.Fatalf("Next = %v", got)
	}
	r.Due(epoch.Add(40 * time.Millisecond))
	if got := r.Next(); !got.Equal(epoch.Add(100 * time.Millisecond)) {
		t.Fatalf("Next after partial = %v", got)
	}
}

func TestIntervalForTPS(t *testing.T) {
	if IntervalForTPS(0) != time.Second/60 || IntervalForTPS(4) != 250*time.Millisecond {
		t.Fatal("unexpected interval conversion")
	}
}
