package main

import (
	"testing"
	"time"
)

var trackerBase = time.Date(2024, 5, 1, 12, 3, 0, 0, time.UTC)

func TestTrackerIgnoresNonDigitKeys(t *testing.T) {
	tracker := newKeyHoldTracker(testHotkeyConfig(t))

	for _, key := range []string{"a", "Z", " ", "", "10", "-1"} {
		tracker.keyDown(key, trackerBase)
		if _, ok := tracker.keyUp(key, trackerBase.Add(5*time.Second)); ok {
			t.Errorf("keyUp(%q) tracked a non-digit key", key)
		}
	}
}

func TestTrackerHoldDuration(t *testing.T) {
	tracker := newKeyHoldTracker(testHotkeyConfig(t))

	tracker.keyDown("3", trackerBase)
	held, ok := tracker.keyUp("3", trackerBase.Add(2100*time.Millisecond))
	if !ok {
		t.Fatal("keyUp did not find a tracked press")
	}
	if held != 2100*time.Millisecond {
		t.Errorf("held = %v, want 2.1s", held)
	}
}

func TestTrackerZeroDuration(t *testing.T) {
	tracker := newKeyHoldTracker(testHotkeyConfig(t))

	tracker.keyDown("3", trackerBase)
	held, ok := tracker.keyUp("3", trackerBase)
	if !ok {
		t.Fatal("keyUp did not find a tracked press")
	}
	if held != 0 {
		t.Errorf("held = %v, want 0", held)
	}
}

func TestTrackerDuplicateDownKeepsFirstTimestamp(t *testing.T) {
	tracker := newKeyHoldTracker(testHotkeyConfig(t))

	tracker.keyDown("5", trackerBase)
	tracker.keyDown("5", trackerBase.Add(time.Second))
	held, ok := tracker.keyUp("5", trackerBase.Add(2*time.Second))
	if !ok {
		t.Fatal("keyUp did not find a tracked press")
	}
	if held != 2*time.Second {
		t.Errorf("held = %v, want 2s measured from the first press", held)
	}
}

func TestTrackerUpWithoutDown(t *testing.T) {
	tracker := newKeyHoldTracker(testHotkeyConfig(t))

	if _, ok := tracker.keyUp("7", trackerBase); ok {
		t.Error("keyUp reported a press that never happened")
	}
}

func TestTrackerReleaseClearsRecord(t *testing.T) {
	tracker := newKeyHoldTracker(testHotkeyConfig(t))

	tracker.keyDown("3", trackerBase)
	if _, ok := tracker.keyUp("3", trackerBase.Add(time.Second)); !ok {
		t.Fatal("first keyUp did not find a tracked press")
	}
	if _, ok := tracker.keyUp("3", trackerBase.Add(2*time.Second)); ok {
		t.Error("second keyUp found a record that should have been cleared")
	}
}

func TestTrackerDisabled(t *testing.T) {
	cfg := testHotkeyConfig(t)
	tracker := newKeyHoldTracker(cfg)

	if err := cfg.setEnabled(false); err != nil {
		t.Fatal(err)
	}
	tracker.keyDown("3", trackerBase)
	if _, ok := tracker.keyUp("3", trackerBase.Add(5*time.Second)); ok {
		t.Error("tracker recorded events while disabled")
	}
}

func TestTrackerDisabledMidHold(t *testing.T) {
	cfg := testHotkeyConfig(t)
	tracker := newKeyHoldTracker(cfg)

	tracker.keyDown("3", trackerBase)
	if err := cfg.setEnabled(false); err != nil {
		t.Fatal(err)
	}
	if _, ok := tracker.keyUp("3", trackerBase.Add(5*time.Second)); ok {
		t.Error("keyUp reported a hold after the listener was disabled")
	}
}
