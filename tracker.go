package main

import "time"

// keyHoldTracker records press timestamps for the ten digit keys and
// computes hold durations on release. It is only ever touched from the
// listener dispatch goroutine, so it does no locking of its own.
type keyHoldTracker struct {
	cfg        *hotkeyConfig
	pressTimes map[string]time.Time
}

func newKeyHoldTracker(cfg *hotkeyConfig) *keyHoldTracker {
	return &keyHoldTracker{
		cfg:        cfg,
		pressTimes: make(map[string]time.Time),
	}
}

func isDigitKey(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}

// keyDown records when a digit key was first pressed. Repeat events
// for a key that is already held keep the original timestamp.
func (t *keyHoldTracker) keyDown(key string, now time.Time) {
	if !t.cfg.isEnabled() {
		return
	}
	if !isDigitKey(key) {
		return
	}
	if _, held := t.pressTimes[key]; !held {
		t.pressTimes[key] = now
	}
}

// keyUp clears the press record for key and reports how long it was
// held. ok is false for keys that were never tracked.
func (t *keyHoldTracker) keyUp(key string, now time.Time) (held time.Duration, ok bool) {
	if !t.cfg.isEnabled() {
		return 0, false
	}
	pressed, ok := t.pressTimes[key]
	if !ok {
		return 0, false
	}
	delete(t.pressTimes, key)
	return now.Sub(pressed), true
}
