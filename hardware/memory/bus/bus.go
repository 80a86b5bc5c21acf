// Package bus implements the NES CPU's memory map: internal RAM, the PPU
// register window, the APU/IO register window, OAM DMA, and the
// cartridge, composed behind the single cpubus.Memory interface the CPU
// is built against.
package bus

import (
	"github.com/tone-malone/nes-emu/hardware/input"
	"github.com/tone-malone/nes-emu/hardware/memory/cartridge"
	"github.com/tone-malone/nes-emu/hardware/memory/cpubus"
	"github.com/tone-malone/nes-emu/hardware/memory/ram"
)

// PPUPorts is the set of PPU operations the bus needs to service
// $2000-$3fff and the $4014 OAM DMA port.
type PPUPorts interface {
	ReadRegister(reg uint16) uint8
	WriteRegister(reg uint16, data uint8)
	WriteOAMByte(data uint8)
}

// APUPorts is the set of APU operations the bus needs to service
// $4000-$4013, $4015 and $4017.
type APUPorts interface {
	WriteRegister(addr uint16, v uint8)
	ReadStatus() uint8
}

// Bus is the CPU's view of the entire NES address space. It owns no
// device itself - RAM aside - and exists purely to route an address to
// whichever of CPU, PPU, APU, controllers or cartridge actually answers
// for it, matching the back-reference-cycle ownership the rest of the
// core uses: Bus holds references to its devices, and the APU holds the
// Bus back for its DMC sample fetches.
type Bus struct {
	ram  *ram.RAM
	ppu  PPUPorts
	apu  APUPorts
	cart *cartridge.Cartridge

	controller1 *input.Controller
	controller2 *input.Controller

	// stall is called by the $4014 OAM DMA handler, 513 or 514 cycles
	// depending on whether the DMA began on an odd or even CPU cycle.
	stall func(cycles int)

	// cpuCycles lets OAM DMA determine its own odd/even start parity
	// without the CPU having to know about DMA at all.
	cpuCycles func() uint64

	// openBus is the last byte placed on the data bus, returned for
	// reads of addresses nothing responds to ($4018-$401f and similar
	// unmapped holes).
	openBus uint8
}

// New returns a Bus wired to every device it routes to. stall accounts
// for the CPU cycles an OAM DMA transfer steals; cpuCycles reports the
// CPU's current cycle count, used only to decide the DMA's 513/514 cycle
// parity.
func New(ppu PPUPorts, apu APUPorts, cart *cartridge.Cartridge, c1, c2 *input.Controller, stall func(int), cpuCycles func() uint64) *Bus {
	return &Bus{
		ram:         ram.NewRAM(),
		ppu:         ppu,
		apu:         apu,
		cart:        cart,
		controller1: c1,
		controller2: c2,
		stall:       stall,
		cpuCycles:   cpuCycles,
	}
}

// Read services a CPU read of address, decoding it into the correct
// device.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address < 0x2000:
		b.openBus = b.ram.Read(address)
	case address < 0x4000:
		b.openBus = b.ppu.ReadRegister(address % cpubus.PPUMirror)
	case address == cpubus.Controller1:
		b.openBus = b.controller1.Read()
	case address == cpubus.Controller2:
		b.openBus = b.controller2.Read()
	case address == cpubus.APUStatus:
		b.openBus = b.apu.ReadStatus()
	case address < cpubus.CartridgeOrigin:
		// unmapped APU/IO space: $4018-$401f and the handful of other
		// holes in $4000-$401f. Real hardware returns the last value
		// that was on the bus.
	default:
		b.openBus = b.cart.CPURead(address)
	}
	return b.openBus
}

// Write services a CPU write of data to address, decoding it into the
// correct device.
func (b *Bus) Write(address uint16, data uint8) {
	b.openBus = data

	switch {
	case address < 0x2000:
		b.ram.Write(address, data)
	case address < 0x4000:
		b.ppu.WriteRegister(address%cpubus.PPUMirror, data)
	case address == cpubus.OAMDMA:
		b.runOAMDMA(data)
	case address == cpubus.Controller1:
		b.controller1.Write(data)
		b.controller2.Write(data)
	case address == cpubus.FrameCounter:
		b.apu.WriteRegister(address, data)
	case address < cpubus.CartridgeOrigin:
		b.apu.WriteRegister(address, data)
	default:
		b.cart.CPUWrite(address, data)
	}
}

// runOAMDMA copies the 256-byte page starting at data<<8 into OAM all at
// once, and stalls the CPU for the transfer's duration: 513 cycles if
// it starts on an even CPU cycle, 514 if odd, matching real hardware's
// extra alignment cycle.
func (b *Bus) runOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.ppu.WriteOAMByte(b.Read(base + uint16(i)))
	}

	cycles := 513
	if b.cpuCycles != nil && b.cpuCycles()%2 != 0 {
		cycles = 514
	}
	if b.stall != nil {
		b.stall(cycles)
	}
}
