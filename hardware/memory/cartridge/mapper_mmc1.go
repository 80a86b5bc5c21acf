package cartridge

// mmc1 implements mapper 1. CPU writes to $8000-$ffff feed a 5-bit serial
// shift register, LSB first; the fifth accepted bit commits the
// accumulated value into one of four internal registers selected by which
// $8000-$ffff range the write landed in. A write with bit 7 set resets the
// shift register immediately and forces the control register's PRG mode
// bits so that the last bank is fixed at $c000, matching real hardware's
// power-on/reset behavior.
type mmc1 struct {
	prgROM []uint8
	chrROM []uint8
	chrRAM bool
	ram    []uint8

	shift uint8
	count uint8

	control uint8
	chr0    uint8
	chr1    uint8
	prg     uint8

	ramDisabled bool

	prgBanks int
	chrBanks int

	fourScreen bool
}

func newMMC1(h header, prgROM, chrROM []uint8) *mmc1 {
	m := &mmc1{
		prgROM:     prgROM,
		control:    0x0c,
		prgBanks:   len(prgROM) / (16 * 1024),
		fourScreen: h.mirroring == MirrorFourScreen,
	}

	if len(chrROM) > 0 {
		m.chrROM = chrROM
		m.chrBanks = len(chrROM) / (4 * 1024)
	} else {
		m.chrROM = make([]uint8, 8*1024)
		m.chrRAM = true
		m.chrBanks = 2
	}

	ramSize := h.prgRAMSize + h.prgNVRAMSize
	if ramSize == 0 {
		ramSize = 8 * 1024
	}
	m.ram = make([]uint8, ramSize)

	if m.prgBanks == 0 {
		m.prgBanks = 1
	}

	return m
}

func (m *mmc1) id() int { return 1 }

func (m *mmc1) cpuRead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if len(m.ram) == 0 || m.ramDisabled {
			return 0
		}
		return m.ram[int(addr-0x6000)%len(m.ram)]
	case addr >= 0x8000 && addr < 0xc000:
		bank := m.prgBank(0)
		return m.prgROM[bank*0x4000+int(addr-0x8000)]
	case addr >= 0xc000:
		bank := m.prgBank(1)
		return m.prgROM[bank*0x4000+int(addr-0xc000)]
	default:
		return 0
	}
}

func (m *mmc1) cpuWrite(addr uint16, data uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		if len(m.ram) > 0 && !m.ramDisabled {
			m.ram[int(addr-0x6000)%len(m.ram)] = data
		}
		return
	}

	if addr < 0x8000 {
		return
	}

	if data&0x80 != 0 {
		m.shift = 0
		m.count = 0
		m.control |= 0x0c
		return
	}

	m.shift |= (data & 1) << m.count
	m.count++

	if m.count == 5 {
		m.commit(addr, m.shift)
		m.shift = 0
		m.count = 0
	}
}

// commit writes the accumulated 5-bit value into the register selected by
// which $8000-$ffff range the fifth write landed in.
func (m *mmc1) commit(addr uint16, value uint8) {
	switch (addr - 0x8000) >> 13 {
	case 0:
		m.control = value
	case 1:
		m.chr0 = value
	case 2:
		m.chr1 = value
	case 3:
		m.prg = value & 0x0f
		m.ramDisabled = value&0x10 != 0
	}
}

// prgBank returns the ROM bank index for half==0 ($8000-$bfff) or
// half==1 ($c000-$ffff), according to the current PRG mode.
func (m *mmc1) prgBank(half int) int {
	mode := (m.control >> 2) & 0x03
	bank := int(m.prg)

	switch mode {
	case 0, 1:
		// 32 KiB mode: low bit of the bank number is ignored.
		b := (bank &^ 1) / 2
		if half == 0 {
			return (b*2 + 0) % m.prgBanks
		}
		return (b*2 + 1) % m.prgBanks
	case 2:
		// fix first bank at $8000, switch 16 KiB at $c000
		if half == 0 {
			return 0
		}
		return bank % m.prgBanks
	default: // 3
		// fix last bank at $c000, switch 16 KiB at $8000
		if half == 0 {
			return bank % m.prgBanks
		}
		return m.prgBanks - 1
	}
}

func (m *mmc1) chrBank(half int) int {
	if m.chrBanks == 0 {
		return 0
	}

	if m.control&0x10 == 0 {
		// 8 KiB mode: low bit of chr0 is ignored.
		base := (int(m.chr0) &^ 1) / 2
		if half == 0 {
			return (base*2 + 0) % m.chrBanks
		}
		return (base*2 + 1) % m.chrBanks
	}

	// 4 KiB mode: chr0 selects $0000, chr1 selects $1000.
	if half == 0 {
		return int(m.chr0) % m.chrBanks
	}
	return int(m.chr1) % m.chrBanks
}

func (m *mmc1) ppuRead(addr uint16) uint8 {
	if addr < 0x1000 {
		bank := m.chrBank(0)
		return m.chrROM[bank*0x1000+int(addr)]
	}
	bank := m.chrBank(1)
	return m.chrROM[bank*0x1000+int(addr-0x1000)]
}

func (m *mmc1) ppuWrite(addr uint16, data uint8) {
	if !m.chrRAM {
		return
	}
	if addr < 0x1000 {
		bank := m.chrBank(0)
		m.chrROM[bank*0x1000+int(addr)] = data
		return
	}
	bank := m.chrBank(1)
	m.chrROM[bank*0x1000+int(addr-0x1000)] = data
}

func (m *mmc1) mirroring() Mirroring {
	if m.fourScreen {
		return MirrorFourScreen
	}
	switch m.control & 0x03 {
	case 0:
		return MirrorSingleA
	case 1:
		return MirrorSingleB
	case 2:
		return MirrorVertical
	default:
		return MirrorHorizontal
	}
}

func (m *mmc1) irqPending() bool                         { return false }
func (m *mmc1) irqAck()                                  {}
func (m *mmc1) ppuA12Clock(level bool)                    {}
func (m *mmc1) ppuOnScanlineDot260(renderingEnabled bool) {}
func (m *mmc1) prgRAM() []uint8                           { return m.ram }
func (m *mmc1) battery() bool                             { return true }
