package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gopkg.in/ini.v1"
)

const (
	hotkeySection = "Hotkeys"

	defaultHoldDuration = 2.0
	minHoldDuration     = 0.5
	maxHoldDuration     = 10.0
)

// hotkeyConfig holds the persisted hotkey settings: whether the
// listener is active and how long the activation key must be held.
// Read on every key event from the listener goroutine, written from
// the tray and HTTP handlers.
type hotkeyConfig struct {
	mu   sync.RWMutex
	path string
	file *ini.File
}

func hotkeyConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("Error finding user config directory: %v", err)
	}
	return filepath.Join(configDir, "quizsnap-hotkeys.ini"), nil
}

// loadHotkeyConfig reads the hotkey settings file, writing a fresh one
// with defaults when it is missing or unreadable.
func loadHotkeyConfig(path string) *hotkeyConfig {
	cfg := &hotkeyConfig{path: path}

	file, err := ini.Load(path)
	if err != nil {
		log.Printf("Hotkey config not loaded, falling back to defaults: %v", err)
		cfg.file = ini.Empty()
		cfg.setDefaults()
		if err := cfg.save(); err != nil {
			log.Printf("%v", err)
		}
		return cfg
	}

	cfg.file = file
	if _, err := file.GetSection(hotkeySection); err != nil {
		cfg.setDefaults()
		if err := cfg.save(); err != nil {
			log.Printf("%v", err)
		}
	}
	return cfg
}

func (c *hotkeyConfig) setDefaults() {
	sec := c.file.Section(hotkeySection)
	sec.Key("enabled").SetValue("true")
	sec.Key("hold_duration").SetValue(strconv.FormatFloat(defaultHoldDuration, 'f', 1, 64))
}

func (c *hotkeyConfig) save() error {
	if err := c.file.SaveTo(c.path); err != nil {
		return fmt.Errorf("Error saving hotkey config: %v", err)
	}
	return nil
}

func (c *hotkeyConfig) isEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	enabled, err := c.file.Section(hotkeySection).Key("enabled").Bool()
	if err != nil {
		return true
	}
	return enabled
}

func (c *hotkeyConfig) setEnabled(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.file.Section(hotkeySection).Key("enabled").SetValue(strconv.FormatBool(enabled))
	return c.save()
}

// holdDuration returns the configured minimum hold time in seconds,
// falling back to the default when the stored value is missing or
// malformed.
func (c *hotkeyConfig) holdDuration() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seconds, err := c.file.Section(hotkeySection).Key("hold_duration").Float64()
	if err != nil || seconds <= 0 {
		return defaultHoldDuration
	}
	return seconds
}

func (c *hotkeyConfig) setHoldDuration(seconds float64) error {
	if seconds < minHoldDuration || seconds > maxHoldDuration {
		return fmt.Errorf("hold duration %.2f is outside %.1f-%.1f seconds", seconds, minHoldDuration, maxHoldDuration)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.file.Section(hotkeySection).Key("hold_duration").SetValue(strconv.FormatFloat(seconds, 'f', -1, 64))
	return c.save()
}

func (c *hotkeyConfig) requiredHold() time.Duration {
	return time.Duration(c.holdDuration() * float64(time.Second))
}

// currentActivationKey derives the digit that must be held right now:
// the ones digit of the wall-clock minute. It is re-derived on every
// check, so the valid key can change while a key is still held down.
func currentActivationKey(now time.Time) string {
	return strconv.Itoa(now.Minute() % 10)
}
