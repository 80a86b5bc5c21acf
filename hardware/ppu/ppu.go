// Package ppu implements the NES 2C02 picture processing unit: background
// and sprite pipelines, scroll/address loopy registers, and the
// dot-by-dot timing (341 dots x 262 scanlines) the console package drives
// three dots per CPU cycle.
package ppu

import "github.com/tone-malone/nes-emu/hardware/memory/cartridge"

// CartridgeBus is the subset of cartridge behavior the PPU needs: pattern
// table access, the current mirroring mode, and the two A12-edge hooks
// mappers like MMC3 use to clock a scanline IRQ counter.
type CartridgeBus interface {
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, data uint8)
	Mirroring() cartridge.Mirroring
	PPUA12Clock(level bool)
	PPUOnScanlineDot260(renderingEnabled bool)
}

type sprite struct {
	y, tile, attrib, x uint8
}

// PPU is one 2C02 core. Framebuffer holds the most recently completed
// frame as packed RGB; FrameComplete is set for one Step call per frame
// and must be cleared by the caller (the console orchestrator) after
// consuming it.
type PPU struct {
	cart CartridgeBus

	ctrl, mask, status uint8
	oamAddr             uint8

	v, t  loopy
	fineX uint8

	writeToggle bool
	readBuffer  uint8

	oam     [256]uint8
	palette [32]uint8
	vram    []uint8
	nameTableBanks int

	scanline int
	dot      int
	frame    uint64
	oddFrame bool

	nextTileID     uint8
	nextAttrib     uint8
	nextLow        uint8
	nextHigh       uint8
	bgShiftLow     uint16
	bgShiftHigh    uint16
	attribShiftLow uint16
	attribShiftHigh uint16

	secondary        [8]sprite
	secondaryCount   int
	spritePatternLow [8]uint8
	spritePatternHigh[8]uint8
	spriteX          [8]uint8
	spriteAttrib     [8]uint8
	spriteIsZero     [8]bool
	spriteZeroVisible bool

	sawA12RiseThisLine bool

	NMI   func(level bool)
	Framebuffer   [256 * 240]RGB
	FrameComplete bool
}

// New returns a PPU bound to cart, which must already report a valid
// mirroring mode.
func New(cart CartridgeBus) *PPU {
	p := &PPU{cart: cart}
	p.setMirroring()
	return p
}

// setMirroring (re)sizes the internal nametable RAM according to the
// cartridge's mirroring mode; four-screen cartridges carry their own
// extra nametable RAM, modeled here as 4 independent 1 KiB banks.
func (p *PPU) setMirroring() {
	if p.cart.Mirroring() == cartridge.MirrorFourScreen {
		p.nameTableBanks = 4
	} else {
		p.nameTableBanks = 2
	}
	p.vram = make([]uint8, p.nameTableBanks*0x400)
}

// PowerOn resets all PPU state to its documented power-on values.
func (p *PPU) PowerOn() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.v, p.t, p.fineX = 0, 0, 0
	p.writeToggle = false
	p.readBuffer = 0
	p.scanline, p.dot, p.frame = -1, 0, 0
	p.oddFrame = false
	for i := range p.palette {
		p.palette[i] = 0
	}
	for i := range p.oam {
		p.oam[i] = 0
	}
}

func (p *PPU) showBackground() bool { return p.mask&maskShowBG != 0 }
func (p *PPU) showSprites() bool    { return p.mask&maskShowSprites != 0 }
func (p *PPU) rendering() bool      { return p.showBackground() || p.showSprites() }
func (p *PPU) spriteHeight() int {
	if p.ctrl&ctrlSpriteSize != 0 {
		return 16
	}
	return 8
}

func (p *PPU) nmiEnabled() bool { return p.ctrl&ctrlNMIEnable != 0 }

// nametableAddr maps a $2000-$2fff CPU/PPU-bus address into an offset into
// p.vram according to the cartridge's mirroring mode.
func (p *PPU) nametableAddr(addr uint16) int {
	addr &= 0x0fff
	table := int(addr / 0x400)
	offset := int(addr % 0x400)

	var physical int
	switch p.cart.Mirroring() {
	case cartridge.MirrorVertical:
		physical = table % 2
	case cartridge.MirrorHorizontal:
		physical = table / 2
	case cartridge.MirrorSingleA:
		physical = 0
	case cartridge.MirrorSingleB:
		physical = 1
	default: // four-screen
		physical = table
	}
	return physical*0x400 + offset
}

// busRead reads the PPU's own $0000-$3fff address space: pattern tables
// from the cartridge, nametables through the mirroring map, and palette
// RAM (mirrored every 32 bytes, with sprite-backdrop color mirroring).
func (p *PPU) busRead(addr uint16) uint8 {
	addr &= 0x3fff
	switch {
	case addr < 0x2000:
		return p.cart.PPURead(addr)
	case addr < 0x3f00:
		return p.vram[p.nametableAddr(addr)%len(p.vram)]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) busWrite(addr uint16, data uint8) {
	addr &= 0x3fff
	switch {
	case addr < 0x2000:
		p.cart.PPUWrite(addr, data)
	case addr < 0x3f00:
		p.vram[p.nametableAddr(addr)%len(p.vram)] = data
	default:
		p.writePalette(addr, data)
	}
}

func (p *PPU) paletteIndex(addr uint16) int {
	idx := int(addr & 0x1f)
	if idx&0x13 == 0x10 {
		idx &= ^0x10 & 0x1f
	}
	return idx
}

func (p *PPU) readPalette(addr uint16) uint8  { return p.palette[p.paletteIndex(addr)] }
func (p *PPU) writePalette(addr uint16, v uint8) { p.palette[p.paletteIndex(addr)] = v & 0x3f }

// ReadRegister handles a CPU read of $2000-$2007 (reg is already masked to
// 0-7 by the bus).
func (p *PPU) ReadRegister(reg uint16) uint8 {
	switch reg {
	case 2: // PPUSTATUS
		v := p.status
		p.status &^= statusVBlank
		p.writeToggle = false
		return v
	case 4: // OAMDATA
		return p.oam[p.oamAddr]
	case 7: // PPUDATA
		var v uint8
		addr := uint16(p.v) & 0x3fff
		if addr < 0x3f00 {
			v = p.readBuffer
			p.readBuffer = p.busRead(addr)
		} else {
			v = p.busRead(addr)
			p.readBuffer = p.busRead(addr - 0x1000)
		}
		p.incrementV()
		return v
	default:
		return 0
	}
}

// WriteRegister handles a CPU write to $2000-$2007.
func (p *PPU) WriteRegister(reg uint16, data uint8) {
	switch reg {
	case 0: // PPUCTRL
		p.ctrl = data
		p.t.setNametable(uint16(data))
	case 1: // PPUMASK
		p.mask = data
	case 3: // OAMADDR
		p.oamAddr = data
	case 4: // OAMDATA
		p.oam[p.oamAddr] = data
		p.oamAddr++
	case 5: // PPUSCROLL
		if !p.writeToggle {
			p.t.setCoarseX(uint16(data) >> 3)
			p.fineX = data & 0x07
		} else {
			p.t.setFineY(uint16(data))
			p.t.setCoarseY(uint16(data) >> 3)
		}
		p.writeToggle = !p.writeToggle
	case 6: // PPUADDR
		if !p.writeToggle {
			p.t.setHi(data)
		} else {
			p.t.setLo(data)
			p.v = p.t
		}
		p.writeToggle = !p.writeToggle
	case 7: // PPUDATA
		p.busWrite(uint16(p.v)&0x3fff, data)
		p.incrementV()
	}
}

func (p *PPU) incrementV() {
	if p.ctrl&ctrlVRAMIncrement != 0 {
		p.v += 32
	} else {
		p.v++
	}
}

// WriteOAMByte is used by OAM DMA ($4014): 256 consecutive bytes starting
// at the current OAMADDR, wrapping.
func (p *PPU) WriteOAMByte(data uint8) {
	p.oam[p.oamAddr] = data
	p.oamAddr++
}
