// Package config holds the input layer's tunable settings, loaded from a
// TOML file, with change notification so live components can react to
// edits without polling.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Setting names used with NotifyOnChange.
const (
	SettingChainTimeout = "KeyChainTimeout"
	SettingKeyDebug     = "KeyDebug"
	SettingKeysFile     = "KeysFile"
)

// Settings are the input-layer tunables.
type Settings struct {
	// KeyChainTimeout is the multi-press chain timeout in milliseconds.
	KeyChainTimeout int `toml:"key_chain_timeout"`

	// KeyDebug enables binding resolution tracing.
	KeyDebug bool `toml:"key_debug"`

	// KeysFile is the user bind file loaded at startup.
	KeysFile string `toml:"keys_file"`
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() Settings {
	return Settings{
		KeyChainTimeout: 750,
		KeyDebug:        false,
		KeysFile:        "uikeys.txt",
	}
}

// Observer is called with the setting name and its new value.
type Observer func(name string, value any)

// Manager owns the settings and their observers. Loads may be triggered
// from a watcher goroutine, so access is guarded.
type Manager struct {
	mu        sync.RWMutex
	settings  Settings
	observers map[string][]Observer
}

// NewManager creates a manager holding the default settings.
func NewManager() *Manager {
	return &Manager{
		settings:  DefaultSettings(),
		observers: make(map[string][]Observer),
	}
}

// Settings returns a copy of the current settings.
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// NotifyOnChange registers an observer for one setting name.
func (m *Manager) NotifyOnChange(name string, fn Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers[name] = append(m.observers[name], fn)
}

// Load reads a TOML settings file over the current values and fires
// observers for every setting that changed. A missing file leaves the
// current settings untouched and is not an error.
func (m *Manager) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	m.mu.Lock()
	old := m.settings
	next := m.settings
	if err := toml.Unmarshal(data, &next); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	m.settings = next
	m.mu.Unlock()

	m.fireChanged(old, next)
	return nil
}

// SetChainTimeout updates the chain timeout directly (console override).
func (m *Manager) SetChainTimeout(ms int) {
	m.mu.Lock()
	old := m.settings
	m.settings.KeyChainTimeout = ms
	next := m.settings
	m.mu.Unlock()

	m.fireChanged(old, next)
}

func (m *Manager) fireChanged(old, next Settings) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if old.KeyChainTimeout != next.KeyChainTimeout {
		for _, fn := range m.observers[SettingChainTimeout] {
			fn(SettingChainTimeout, next.KeyChainTimeout)
		}
	}
	if old.KeyDebug != next.KeyDebug {
		for _, fn := range m.observers[SettingKeyDebug] {
			fn(SettingKeyDebug, next.KeyDebug)
		}
	}
	if old.KeysFile != next.KeysFile {
		for _, fn := range m.observers[SettingKeysFile] {
			fn(SettingKeysFile, next.KeysFile)
		}
	}
}
