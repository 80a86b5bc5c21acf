// Package prefs implements small atomically-updated host preference
// values, persisted to a JSON file on disk. None of these values affect
// the cycle-exact behavior of the emulated hardware - they only steer the
// reference hosts in cmd/ (sample rate, palette variant, whether to
// auto-load a .sav file on start, the statsview toggle, the last ROM path).
package prefs

import (
	"encoding/json"
	"os"
	"sync/atomic"
)

// Value is the underlying preference value.
type Value interface{}

// Bool is a boolean preference.
type Bool struct {
	value atomic.Value
}

// NewBool creates a Bool preference with the given default.
func NewBool(v bool) *Bool {
	b := &Bool{}
	b.value.Store(v)
	return b
}

// Get returns the current value.
func (p *Bool) Get() bool {
	v := p.value.Load()
	if v == nil {
		return false
	}
	return v.(bool)
}

// Set updates the value.
func (p *Bool) Set(v bool) { p.value.Store(v) }

// Int is an integer preference.
type Int struct {
	value atomic.Value
}

// NewInt creates an Int preference with the given default.
func NewInt(v int) *Int {
	p := &Int{}
	p.value.Store(v)
	return p
}

// Get returns the current value.
func (p *Int) Get() int {
	v := p.value.Load()
	if v == nil {
		return 0
	}
	return v.(int)
}

// Set updates the value.
func (p *Int) Set(v int) { p.value.Store(v) }

// String is a string preference.
type String struct {
	value atomic.Value
}

// NewString creates a String preference with the given default.
func NewString(v string) *String {
	p := &String{}
	p.value.Store(v)
	return p
}

// Get returns the current value.
func (p *String) Get() string {
	v := p.value.Load()
	if v == nil {
		return ""
	}
	return v.(string)
}

// Set updates the value.
func (p *String) Set(v string) { p.value.Store(v) }

// Host groups the preferences a reference host cares about.
type Host struct {
	SampleRate     *Int    `json:"-"`
	AutoLoadSave   *Bool   `json:"-"`
	Palette        *String `json:"-"`
	ShowStatsview  *Bool   `json:"-"`
	LastROMPath    *String `json:"-"`
}

// diskHost is the plain-data shape Host is marshalled to/from.
type diskHost struct {
	SampleRate    int    `json:"sample_rate"`
	AutoLoadSave  bool   `json:"auto_load_save"`
	Palette       string `json:"palette"`
	ShowStatsview bool   `json:"show_statsview"`
	LastROMPath   string `json:"last_rom_path"`
}

// NewHost returns a Host populated with the reference host's defaults.
func NewHost() *Host {
	return &Host{
		SampleRate:    NewInt(48000),
		AutoLoadSave:  NewBool(true),
		Palette:       NewString("2C02"),
		ShowStatsview: NewBool(false),
		LastROMPath:   NewString(""),
	}
}

// Load reads preferences from path, overwriting the current values. A
// missing file is not an error - the existing defaults are kept.
func (h *Host) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var d diskHost
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}

	h.SampleRate.Set(d.SampleRate)
	h.AutoLoadSave.Set(d.AutoLoadSave)
	h.Palette.Set(d.Palette)
	h.ShowStatsview.Set(d.ShowStatsview)
	h.LastROMPath.Set(d.LastROMPath)

	return nil
}

// Save writes the current preferences to path.
func (h *Host) Save(path string) error {
	d := diskHost{
		SampleRate:    h.SampleRate.Get(),
		AutoLoadSave:  h.AutoLoadSave.Get(),
		Palette:       h.Palette.Get(),
		ShowStatsview: h.ShowStatsview.Get(),
		LastROMPath:   h.LastROMPath.Get(),
	}

	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o644)
}
