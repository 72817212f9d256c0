package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.KeyChainTimeout != 750 {
		t.Errorf("KeyChainTimeout = %d, want 750", s.KeyChainTimeout)
	}
	if s.KeyDebug {
		t.Error("KeyDebug on by default")
	}
	if s.KeysFile != "uikeys.txt" {
		t.Errorf("KeysFile = %q", s.KeysFile)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybind.toml")
	content := "key_chain_timeout = 500\nkey_debug = true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.Load(path); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	s := m.Settings()
	if s.KeyChainTimeout != 500 {
		t.Errorf("KeyChainTimeout = %d, want 500", s.KeyChainTimeout)
	}
	if !s.KeyDebug {
		t.Error("KeyDebug not loaded")
	}
	// unmentioned settings keep their previous values
	if s.KeysFile != "uikeys.txt" {
		t.Errorf("KeysFile = %q, want default", s.KeysFile)
	}
}

func TestLoadMissingFile(t *testing.T) {
	m := NewManager()
	if err := m.Load(filepath.Join(t.TempDir(), "nope.toml")); err != nil {
		t.Fatalf("missing file treated as error: %v", err)
	}
	if m.Settings() != DefaultSettings() {
		t.Error("settings changed by missing file")
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("key_chain_timeout = ["), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.Load(path); err == nil {
		t.Fatal("bad TOML accepted")
	}
	if m.Settings() != DefaultSettings() {
		t.Error("settings changed by failed load")
	}
}

func TestObserversFireOnChange(t *testing.T) {
	m := NewManager()

	var gotTimeout []int
	m.NotifyOnChange(SettingChainTimeout, func(name string, value any) {
		gotTimeout = append(gotTimeout, value.(int))
	})
	debugFired := 0
	m.NotifyOnChange(SettingKeyDebug, func(name string, value any) {
		debugFired++
	})

	m.SetChainTimeout(300)
	if len(gotTimeout) != 1 || gotTimeout[0] != 300 {
		t.Fatalf("timeout observer calls = %v", gotTimeout)
	}

	// same value again is not a change
	m.SetChainTimeout(300)
	if len(gotTimeout) != 1 {
		t.Errorf("observer fired on unchanged value: %v", gotTimeout)
	}
	if debugFired != 0 {
		t.Errorf("debug observer fired %d times", debugFired)
	}

	path := filepath.Join(t.TempDir(), "keybind.toml")
	if err := os.WriteFile(path, []byte("key_debug = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := m.Load(path); err != nil {
		t.Fatal(err)
	}
	if debugFired != 1 {
		t.Errorf("debug observer calls = %d, want 1", debugFired)
	}
	if len(gotTimeout) != 1 {
		t.Errorf("timeout observer fired on debug change: %v", gotTimeout)
	}
}
