package cartridge

// nrom implements mapper 0: fixed PRG mapping (16 KiB mirrored into both
// halves of $8000-$ffff, or 32 KiB mapped directly), fixed 8 KiB CHR ROM
// or, if no CHR ROM is present, 8 KiB of writable CHR RAM.
type nrom struct {
	prgROM []uint8
	chrROM []uint8
	chrRAM bool
	ram    []uint8

	mirror Mirroring
}

func newNROM(h header, prgROM, chrROM []uint8) *nrom {
	m := &nrom{
		prgROM: prgROM,
		mirror: h.mirroring,
	}

	if len(chrROM) > 0 {
		m.chrROM = chrROM
	} else {
		m.chrROM = make([]uint8, chrBankSize)
		m.chrRAM = true
	}

	ramSize := h.prgRAMSize + h.prgNVRAMSize
	if ramSize == 0 {
		ramSize = 8 * 1024
	}
	m.ram = make([]uint8, ramSize)

	return m
}

func (m *nrom) id() int { return 0 }

func (m *nrom) cpuRead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if len(m.ram) == 0 {
			return 0
		}
		return m.ram[int(addr-0x6000)%len(m.ram)]
	case addr >= 0x8000:
		off := int(addr-0x8000) % len(m.prgROM)
		return m.prgROM[off]
	default:
		return 0
	}
}

func (m *nrom) cpuWrite(addr uint16, data uint8) {
	if addr >= 0x6000 && addr < 0x8000 && len(m.ram) > 0 {
		m.ram[int(addr-0x6000)%len(m.ram)] = data
	}
	// writes into ROM space are no-ops
}

func (m *nrom) ppuRead(addr uint16) uint8 {
	if int(addr) < len(m.chrROM) {
		return m.chrROM[addr]
	}
	return 0
}

func (m *nrom) ppuWrite(addr uint16, data uint8) {
	if m.chrRAM && int(addr) < len(m.chrROM) {
		m.chrROM[addr] = data
	}
}

func (m *nrom) mirroring() Mirroring { return m.mirror }

func (m *nrom) irqPending() bool                            { return false }
func (m *nrom) irqAck()                                     {}
func (m *nrom) ppuA12Clock(level bool)                       {}
func (m *nrom) ppuOnScanlineDot260(renderingEnabled bool)    {}
func (m *nrom) prgRAM() []uint8                              { return m.ram }
func (m *nrom) battery() bool                                { return false }
