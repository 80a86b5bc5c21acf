// Package console wires a CPU, PPU, APU, memory bus, cartridge and
// controller pair into a runnable NES, with each chip living in its own
// package and the console as the sole owner of cross-package references.
package console

import (
	"github.com/tone-malone/nes-emu/cartridgeloader"
	"github.com/tone-malone/nes-emu/hardware/apu"
	"github.com/tone-malone/nes-emu/hardware/cpu"
	"github.com/tone-malone/nes-emu/hardware/input"
	"github.com/tone-malone/nes-emu/hardware/memory/bus"
	"github.com/tone-malone/nes-emu/hardware/memory/cartridge"
	"github.com/tone-malone/nes-emu/hardware/ppu"
	"github.com/tone-malone/nes-emu/logger"
)

// Console is the top-level container for every emulated component. It is
// the one place allowed to hold references in every direction - CPU to
// bus, bus to PPU/APU/cartridge, PPU to cartridge - everything else
// follows a strict back-reference-cycle ownership discipline to avoid
// import cycles between packages.
type Console struct {
	CPU *cpu.CPU
	PPU *ppu.PPU
	APU *apu.APU
	Bus *bus.Bus
	Cart *cartridge.Cartridge

	Controller1 *input.Controller
	Controller2 *input.Controller
}

// New builds a Console around an already-loaded cartridge.
func New(cart *cartridge.Cartridge) *Console {
	c := &Console{
		Cart:        cart,
		Controller1: &input.Controller{},
		Controller2: &input.Controller{},
	}

	c.PPU = ppu.New(cart)

	var cpuRef *cpu.CPU
	stall := func(n int) { cpuRef.Stall(n) }
	c.APU = apu.New(nil, stall)

	c.Bus = bus.New(c.PPU, c.APU, cart, c.Controller1, c.Controller2, stall, func() uint64 { return cpuRef.Cycles() })
	c.APU.SetMemory(c.Bus)

	c.CPU = cpu.New(c.Bus)
	cpuRef = c.CPU

	c.PPU.NMI = func(asserted bool) { c.CPU.SetNMI(asserted) }
	c.CPU.IRQAck = func() { c.Cart.IRQAck() }

	return c
}

// Load reads a ROM via a cartridgeloader.Loader and returns a ready
// Console, powered on and reset.
func Load(l *cartridgeloader.Loader) (*Console, error) {
	c := &Console{}
	if err := c.LoadROM(l); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadROM parses and attaches a cartridge, rebuilding every device around
// it and powering on. It can be called again on an existing Console to
// swap the loaded ROM for another one.
func (c *Console) LoadROM(l *cartridgeloader.Loader) error {
	if err := l.Load(); err != nil {
		return err
	}

	cart, err := cartridge.Load(l.Filename, l.Data, l.SavePath())
	if err != nil {
		return err
	}
	logger.Logf(logger.Allow, "console", "loaded %s", cart.Summary())

	*c = *New(cart)
	c.PowerOn()
	return nil
}

// PowerOn resets every component to its documented power-on state.
func (c *Console) PowerOn() {
	c.CPU.PowerOn()
	c.PPU.PowerOn()
	c.APU.PowerOn()
}

// Reset emulates the console's reset switch: unlike PowerOn this leaves
// RAM and PPU/APU register contents alone, matching how a real NES reset
// line behaves.
func (c *Console) Reset() {
	c.CPU.Reset()
}

// SetController sets the live button state for player 1 or 2.
func (c *Console) SetController(player int, buttons uint8) {
	if player == 1 {
		c.Controller1.SetState(buttons)
	} else {
		c.Controller2.SetState(buttons)
	}
}

// Step advances the console by one CPU instruction, stepping the PPU
// three times and the APU once per CPU cycle actually spent (including
// any OAM DMA or DMC stall cycles), and returns the number of CPU cycles
// that instruction consumed.
func (c *Console) Step() int {
	cycles := c.CPU.Step()

	for i := 0; i < cycles; i++ {
		c.APU.Step()
		c.PPU.Step()
		c.PPU.Step()
		c.PPU.Step()

		if c.Cart.IRQPending() || c.APU.IRQ() {
			c.CPU.SetIRQ(true)
		} else {
			c.CPU.SetIRQ(false)
		}
	}

	return cycles
}

// RunFrame steps the console until the PPU completes one full frame, and
// returns the finished frame's pixel buffer.
func (c *Console) RunFrame() *[256 * 240]ppu.RGB {
	for !c.PPU.FrameComplete {
		c.Step()
	}
	c.PPU.FrameComplete = false
	return c.Framebuffer()
}

// Framebuffer returns the most recently completed frame's pixel buffer.
func (c *Console) Framebuffer() *[256 * 240]ppu.RGB {
	return &c.PPU.Framebuffer
}

// AudioSamples drains and returns every audio sample produced since the
// last call.
func (c *Console) AudioSamples() []float32 {
	return c.APU.Samples()
}

// Flush persists the cartridge's battery-backed PRG-RAM, if any.
func (c *Console) Flush() {
	c.Cart.Flush()
}
