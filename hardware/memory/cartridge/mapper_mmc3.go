package cartridge

// mmc3 implements mapper 4. Bank switching is driven by a bank-select byte
// written to even $8000-$9fff addresses (selecting one of 8 internal bank
// registers plus the PRG-A14/CHR-A12 mode bits) followed by the bank value
// itself on the next odd address. A scanline counter is clocked by PPU
// address bit 12 (A12) rising edges; to tolerate sprite/background pattern
// fetches that toggle A12 rapidly, a rise is only accepted once A12 has
// been observed low for at least 8 consecutive PPU dots. If no real edge
// is seen during a visible scanline, dot 260 synthesizes one as a
// fallback - some games depend on the real edge, others on the fallback,
// so both must be modeled.
type mmc3 struct {
	prgROM []uint8
	chrROM []uint8
	chrRAM bool
	ram    []uint8

	bankSelect uint8 // target register (bits 0-2), PRG mode (bit 6), CHR mode (bit 7)
	regs       [8]uint8

	mirror     Mirroring
	fourScreen bool

	ramEnabled  bool
	ramWriteOK  bool

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool
	irqAsserted bool

	prevA12        bool
	a12LowDots     int
	sawRiseThisLine bool

	prgBanks8k int
	chrBanks1k int
}

func newMMC3(h header, prgROM, chrROM []uint8) *mmc3 {
	m := &mmc3{
		prgROM:     prgROM,
		mirror:     h.mirroring,
		fourScreen: h.mirroring == MirrorFourScreen,
		ramEnabled: true,
		ramWriteOK: true,
		prgBanks8k: len(prgROM) / 0x2000,
	}

	if len(chrROM) > 0 {
		m.chrROM = chrROM
		m.chrBanks1k = len(chrROM) / 0x0400
	} else {
		m.chrROM = make([]uint8, 8*1024)
		m.chrRAM = true
		m.chrBanks1k = 8
	}

	ramSize := h.prgRAMSize + h.prgNVRAMSize
	if ramSize == 0 {
		ramSize = 8 * 1024
	}
	m.ram = make([]uint8, ramSize)

	if m.prgBanks8k == 0 {
		m.prgBanks8k = 2
	}

	return m
}

func (m *mmc3) id() int { return 4 }

// prgBankFor returns the 8 KiB bank index mapped at the given CPU address
// window (0: $8000, 1: $a000, 2: $c000, 3: $e000).
func (m *mmc3) prgBankFor(window int) int {
	secondLast := m.prgBanks8k - 2
	last := m.prgBanks8k - 1
	prgMode := m.bankSelect&0x40 != 0

	switch window {
	case 0:
		if prgMode {
			return secondLast % m.prgBanks8k
		}
		return int(m.regs[6]) % m.prgBanks8k
	case 1:
		return int(m.regs[7]) % m.prgBanks8k
	case 2:
		if prgMode {
			return int(m.regs[6]) % m.prgBanks8k
		}
		return secondLast % m.prgBanks8k
	default:
		return last % m.prgBanks8k
	}
}

func (m *mmc3) cpuRead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0
		}
		return m.ram[int(addr-0x6000)%len(m.ram)]
	case addr >= 0x8000:
		window := int((addr - 0x8000) / 0x2000)
		bank := m.prgBankFor(window)
		return m.prgROM[bank*0x2000+int(addr&0x1fff)]
	default:
		return 0
	}
}

func (m *mmc3) cpuWrite(addr uint16, data uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		if m.ramEnabled && m.ramWriteOK && len(m.ram) > 0 {
			m.ram[int(addr-0x6000)%len(m.ram)] = data
		}
		return
	}

	if addr < 0x8000 {
		return
	}

	even := addr%2 == 0

	switch {
	case addr < 0xa000:
		if even {
			m.bankSelect = data
		} else {
			m.regs[m.bankSelect&0x07] = data
		}
	case addr < 0xc000:
		if even {
			if data&0x01 != 0 {
				m.mirror = MirrorHorizontal
			} else {
				m.mirror = MirrorVertical
			}
		} else {
			m.ramEnabled = data&0x80 != 0
			m.ramWriteOK = data&0x40 == 0
		}
	case addr < 0xe000:
		if even {
			m.irqLatch = data
		} else {
			m.irqReload = true
		}
	default:
		if even {
			m.irqEnabled = false
			m.irqAsserted = false
		} else {
			m.irqEnabled = true
		}
	}
}

// chrBankFor returns the 1 KiB bank index covering the given PPU pattern
// address.
func (m *mmc3) chrBankFor(addr uint16) int {
	chrInverted := m.bankSelect&0x80 != 0
	region := addr / 0x0400 // 0..7, each 1 KiB
	if chrInverted {
		region ^= 0x04
	}

	var bank int
	switch region {
	case 0:
		bank = int(m.regs[0] &^ 1)
	case 1:
		bank = int(m.regs[0]|1)
	case 2:
		bank = int(m.regs[1] &^ 1)
	case 3:
		bank = int(m.regs[1] | 1)
	case 4:
		bank = int(m.regs[2])
	case 5:
		bank = int(m.regs[3])
	case 6:
		bank = int(m.regs[4])
	default:
		bank = int(m.regs[5])
	}

	if m.chrBanks1k == 0 {
		return 0
	}
	return bank % m.chrBanks1k
}

func (m *mmc3) ppuRead(addr uint16) uint8 {
	bank := m.chrBankFor(addr)
	return m.chrROM[bank*0x0400+int(addr&0x03ff)]
}

func (m *mmc3) ppuWrite(addr uint16, data uint8) {
	if !m.chrRAM {
		return
	}
	bank := m.chrBankFor(addr)
	m.chrROM[bank*0x0400+int(addr&0x03ff)] = data
}

func (m *mmc3) mirroring() Mirroring {
	if m.fourScreen {
		return MirrorFourScreen
	}
	return m.mirror
}

func (m *mmc3) irqPending() bool { return m.irqAsserted }
func (m *mmc3) irqAck()          { m.irqAsserted = false }

// clockIRQ implements the MMC3 scanline counter's reload/decrement/fire
// logic, shared by real A12 edges and the dot-260 fallback.
func (m *mmc3) clockIRQ() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}

	if m.irqCounter == 0 && m.irqEnabled {
		m.irqAsserted = true
	}
}

// ppuA12Clock is called once per PPU pattern fetch with that fetch's A12
// level. A rising edge only clocks the IRQ counter if at least 8
// consecutive low calls preceded it (a12LowDots counts calls, not PPU
// dots), filtering out the rapid toggling that occurs during ordinary
// pattern fetches.
func (m *mmc3) ppuA12Clock(level bool) {
	if level {
		if !m.prevA12 && m.a12LowDots >= 8 {
			m.clockIRQ()
			m.sawRiseThisLine = true
		}
		m.a12LowDots = 0
	} else {
		m.a12LowDots++
	}
	m.prevA12 = level
}

// ppuOnScanlineDot260 synthesizes an IRQ clock if no real A12 rising edge
// was accepted during this visible scanline, then resets the per-line
// tracking flag.
func (m *mmc3) ppuOnScanlineDot260(renderingEnabled bool) {
	if renderingEnabled && !m.sawRiseThisLine {
		m.clockIRQ()
	}
	m.sawRiseThisLine = false
}

func (m *mmc3) prgRAM() []uint8 { return m.ram }
func (m *mmc3) battery() bool   { return true }
