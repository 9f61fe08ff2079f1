package main

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"golang.design/x/hotkey"
)

var digitKeys = [10]hotkey.Key{
	hotkey.Key0,
	hotkey.Key1,
	hotkey.Key2,
	hotkey.Key3,
	hotkey.Key4,
	hotkey.Key5,
	hotkey.Key6,
	hotkey.Key7,
	hotkey.Key8,
	hotkey.Key9,
}

type keyEvent struct {
	key  string
	down bool
	at   time.Time
}

// hotkeyListener registers a global hotkey for each digit and funnels
// press/release events through one dispatch goroutine into the hold
// tracker. Modifier and non-digit keys never reach the tracker; they
// are simply not registered.
type hotkeyListener struct {
	cfg       *hotkeyConfig
	tracker   *keyHoldTracker
	sequencer *sequencer

	mu      sync.Mutex
	hotkeys []*hotkey.Hotkey
	stopCh  chan struct{}
}

func newHotkeyListener(cfg *hotkeyConfig, seq *sequencer) *hotkeyListener {
	return &hotkeyListener{
		cfg:       cfg,
		tracker:   newKeyHoldTracker(cfg),
		sequencer: seq,
	}
}

// start registers the digit hotkeys and begins dispatching events.
// Calling it while already running is a no-op.
func (l *hotkeyListener) start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopCh != nil {
		return nil
	}

	stop := make(chan struct{})
	events := make(chan keyEvent, 32)

	// register every digit before starting any forwarding goroutine,
	// so a failure partway through leaves nothing running
	var registered []*hotkey.Hotkey
	for i, key := range digitKeys {
		hk := hotkey.New(nil, key)
		if err := hk.Register(); err != nil {
			for _, r := range registered {
				r.Unregister()
			}
			return fmt.Errorf("Error registering hotkey for digit %d: %v", i, err)
		}
		registered = append(registered, hk)
	}

	for i, hk := range registered {
		digit := strconv.Itoa(i)
		go func(hk *hotkey.Hotkey, digit string) {
			for {
				select {
				case <-hk.Keydown():
					select {
					case events <- keyEvent{key: digit, down: true, at: time.Now()}:
					case <-stop:
						return
					}
				case <-hk.Keyup():
					select {
					case events <- keyEvent{key: digit, down: false, at: time.Now()}:
					case <-stop:
						return
					}
				case <-stop:
					return
				}
			}
		}(hk, digit)
	}

	go l.dispatch(events, stop)

	l.hotkeys = registered
	l.stopCh = stop
	log.Println("Hotkey listener started")
	return nil
}

// stop unregisters the hotkeys and halts dispatch. Safe to call
// multiple times.
func (l *hotkeyListener) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopCh == nil {
		return
	}
	close(l.stopCh)
	for _, hk := range l.hotkeys {
		hk.Unregister()
	}
	l.hotkeys = nil
	l.stopCh = nil
	log.Println("Hotkey listener stopped")
}

// dispatch serializes key events from all digit hotkeys into the
// tracker and fires the sequencer on a qualifying release. Only this
// goroutine touches the tracker.
func (l *hotkeyListener) dispatch(events <-chan keyEvent, stop <-chan struct{}) {
	for {
		select {
		case ev := <-events:
			if ev.down {
				l.tracker.keyDown(ev.key, ev.at)
				continue
			}
			held, ok := l.tracker.keyUp(ev.key, ev.at)
			if !ok {
				continue
			}
			if qualifiesActivation(l.cfg, ev.key, held, ev.at) {
				log.Printf("Activation hold on %q (%.2fs), triggering sequence", ev.key, held.Seconds())
				l.sequencer.Trigger()
			}
		case <-stop:
			return
		}
	}
}

// qualifiesActivation reports whether releasing key after holding it
// for held should trigger the sequence. The activation key is derived
// from the release time, not the press time, so a hold that spans a
// minute boundary is judged against the new minute's digit.
func qualifiesActivation(cfg *hotkeyConfig, key string, held time.Duration, releasedAt time.Time) bool {
	if key != currentActivationKey(releasedAt) {
		return false
	}
	return held >= cfg.requiredHold()
}
