// Package ram implements the NES's 2 KiB of internal system RAM, mapped
// into the CPU address space at $0000-$1fff and mirrored every $0800
// bytes.
package ram

import "github.com/tone-malone/nes-emu/hardware/memory/cpubus"

// RAM is the console's internal work RAM.
type RAM struct {
	mem [cpubus.RAMSize]uint8
}

// NewRAM creates a zeroed RAM bank. Power-on RAM contents on real hardware
// are not reliably zero, but a deterministic core requires a deterministic
// starting state, so this emulator always starts from zero.
func NewRAM() *RAM {
	return &RAM{}
}

// Read returns the byte at address, after folding it into the 2 KiB
// window.
func (r *RAM) Read(address uint16) uint8 {
	return r.mem[address%cpubus.RAMMirror]
}

// Write stores data at address, after folding it into the 2 KiB window.
func (r *RAM) Write(address uint16, data uint8) {
	r.mem[address%cpubus.RAMMirror] = data
}
