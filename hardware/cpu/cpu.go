// Package cpu implements the 6502-derived 2A03 core: registers, the full
// official and commonly-relied-on unofficial opcode set, and interrupt
// sequencing (NMI edge, IRQ level, BRK). It knows nothing about frames or
// ticks beyond single instruction steps; the console package drives it one
// Step at a time, interleaved with the PPU and APU.
package cpu

import (
	"github.com/tone-malone/nes-emu/hardware/cpu/instructions"
	"github.com/tone-malone/nes-emu/hardware/memory/cpubus"
)

const stackBase = uint16(0x0100)

// CPU is a single 2A03 core bound to a cpubus.Memory implementation.
type CPU struct {
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16
	P  Status

	mem cpubus.Memory

	cycles uint64

	// prevNMILine is the last level seen from SetNMI, used to detect the
	// falling-edge-to-rising-edge transition that actually requests an
	// NMI; the signal coming from the PPU is a level, not a pulse.
	prevNMILine bool
	nmiPending  bool

	// irqLine is the level-OR of every IRQ source (mappers, DMC, frame
	// counter); it is re-sampled every Step rather than edge-latched.
	irqLine bool

	// irqDelay suppresses the IRQ check for exactly one instruction after
	// CLI, SEI, PLP or RTI, matching real hardware's one-instruction
	// recognition delay on those four flag-mutating opcodes.
	irqDelay bool

	stallCycles int
	halted      bool

	// IRQAck, if set, is called once as part of servicing a hardware IRQ
	// (not NMI, not a software BRK), letting the cartridge's mapper clear
	// whatever line it asserted.
	IRQAck func()
}

// New returns a CPU bound to the given bus. Call Reset before the first
// Step to load the reset vector.
func New(mem cpubus.Memory) *CPU {
	return &CPU{mem: mem}
}

// Reset puts the CPU in its documented reset state: interrupts disabled,
// stack pointer decremented by 3, PC loaded from the reset vector. It does
// not touch A/X/Y, matching real hardware reset behavior (only power-on
// zeroes them, and the console clears them before the first Reset call).
func (c *CPU) Reset() {
	c.SP -= 3
	c.P.InterruptDisable = true
	c.PC = c.read16(cpubus.ResetVector)
	c.stallCycles = 0
	c.halted = false
}

// PowerOn sets the documented 2A03 power-on register state and then
// performs a Reset.
func (c *CPU) PowerOn() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xfd
	c.P = Status{InterruptDisable: true}
	c.Reset()
	c.SP = 0xfd
}

// Stall adds n cycles of CPU stall, used by the bus to account for OAM DMA
// (513 or 514 cycles depending on whether the transfer started on an odd
// CPU cycle).
func (c *CPU) Stall(n int) { c.stallCycles += n }

// SetNMI reports the PPU's current NMI output level. A low-to-high
// transition latches a pending NMI that is serviced at the next
// instruction boundary, regardless of the I flag.
func (c *CPU) SetNMI(line bool) {
	if line && !c.prevNMILine {
		c.nmiPending = true
	}
	c.prevNMILine = line
}

// SetIRQ reports the combined IRQ line level from every maskable source.
// Callers OR their own pending state together before calling this; the
// CPU only sees the final level.
func (c *CPU) SetIRQ(line bool) { c.irqLine = line }

// Cycles returns the total number of CPU cycles elapsed since PowerOn.
func (c *CPU) Cycles() uint64 { return c.cycles }

// Halted reports whether a KIL opcode has stopped the CPU. The CPU stays
// halted until the next Reset (or PowerOn), and execution never returns an
// error - only ROM loading does.
func (c *CPU) Halted() bool { return c.halted }

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.mem.Read(addr))
	hi := uint16(c.mem.Read(addr + 1))
	return lo | hi<<8
}

func (c *CPU) push(v uint8) {
	c.mem.Write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.mem.Read(stackBase + uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return lo | hi<<8
}

// Step executes exactly one instruction (or one cycle of DMA stall, or one
// interrupt sequence) and returns the number of CPU cycles it consumed.
func (c *CPU) Step() int {
	if c.stallCycles > 0 {
		c.stallCycles--
		c.cycles++
		return 1
	}

	if c.halted {
		c.cycles++
		return 1
	}

	if c.nmiPending {
		c.nmiPending = false
		c.serviceInterrupt(cpubus.NMIVector, false)
		c.cycles += 7
		return 7
	}

	if c.irqDelay {
		c.irqDelay = false
	} else if c.irqLine && !c.P.InterruptDisable {
		c.serviceInterrupt(cpubus.IRQVector, false)
		if c.IRQAck != nil {
			c.IRQAck()
		}
		c.cycles += 7
		return 7
	}

	opcode := c.mem.Read(c.PC)
	def := instructions.Table[opcode]
	cycles := c.execute(opcode, def)
	c.cycles += uint64(cycles)
	return cycles
}

// serviceInterrupt pushes PC and status and vectors through addr. brk is
// true only for the BRK instruction itself, which sets the pushed B flag;
// hardware-driven NMI/IRQ push a status byte with B clear.
func (c *CPU) serviceInterrupt(addr uint16, brk bool) {
	c.push16(c.PC)
	c.push(c.P.ToByte(brk))
	c.P.InterruptDisable = true
	c.PC = c.read16(addr)
}

// operand describes a resolved instruction operand. For Accumulator mode
// addr is unused and acc is true; for Immediate mode addr is unused and
// value holds the literal operand byte.
type operand struct {
	addr        uint16
	value       uint8
	acc         bool
	pageCrossed bool
}

// resolve advances PC past the operand bytes and computes the effective
// address or literal value for mode, starting from the byte immediately
// following the opcode (c.PC at entry points at the opcode itself).
func (c *CPU) resolve(mode instructions.Mode) operand {
	base := c.PC + 1

	switch mode {
	case instructions.Implied:
		return operand{}
	case instructions.Accumulator:
		return operand{acc: true, value: c.A}
	case instructions.Immediate:
		return operand{addr: base, value: c.mem.Read(base)}
	case instructions.ZeroPage:
		addr := uint16(c.mem.Read(base))
		return operand{addr: addr, value: c.mem.Read(addr)}
	case instructions.ZeroPageX:
		addr := uint16(c.mem.Read(base) + c.X)
		return operand{addr: addr, value: c.mem.Read(addr)}
	case instructions.ZeroPageY:
		addr := uint16(c.mem.Read(base) + c.Y)
		return operand{addr: addr, value: c.mem.Read(addr)}
	case instructions.Absolute:
		addr := c.read16(base)
		return operand{addr: addr, value: c.mem.Read(addr)}
	case instructions.AbsoluteX:
		abs := c.read16(base)
		addr := abs + uint16(c.X)
		return operand{addr: addr, value: c.mem.Read(addr), pageCrossed: abs&0xff00 != addr&0xff00}
	case instructions.AbsoluteY:
		abs := c.read16(base)
		addr := abs + uint16(c.Y)
		return operand{addr: addr, value: c.mem.Read(addr), pageCrossed: abs&0xff00 != addr&0xff00}
	case instructions.Indirect:
		ptr := c.read16(base)
		addr := c.readIndirectWrapped(ptr)
		return operand{addr: addr}
	case instructions.IndirectX:
		zp := c.mem.Read(base) + c.X
		lo := uint16(c.mem.Read(uint16(zp)))
		hi := uint16(c.mem.Read(uint16(zp + 1)))
		addr := lo | hi<<8
		return operand{addr: addr, value: c.mem.Read(addr)}
	case instructions.IndirectY:
		zp := c.mem.Read(base)
		lo := uint16(c.mem.Read(uint16(zp)))
		hi := uint16(c.mem.Read(uint16(zp + 1)))
		base16 := lo | hi<<8
		addr := base16 + uint16(c.Y)
		return operand{addr: addr, value: c.mem.Read(addr), pageCrossed: base16&0xff00 != addr&0xff00}
	case instructions.Relative:
		offset := int8(c.mem.Read(base))
		target := uint16(int32(base) + 1 + int32(offset))
		return operand{addr: target}
	default:
		return operand{}
	}
}

// readIndirectWrapped reproduces the JMP ($xxFF) page-wrap bug: when the
// pointer's low byte is $ff, the high byte is fetched from the start of
// the same page instead of the next one.
func (c *CPU) readIndirectWrapped(ptr uint16) uint16 {
	lo := uint16(c.mem.Read(ptr))
	var hiAddr uint16
	if ptr&0x00ff == 0x00ff {
		hiAddr = ptr & 0xff00
	} else {
		hiAddr = ptr + 1
	}
	hi := uint16(c.mem.Read(hiAddr))
	return lo | hi<<8
}
