package cartridge

import "testing"

func testHeader(mirroring Mirroring) header {
	return header{mirroring: mirroring}
}

func TestNROMMirrorsA16KiBBankIntoBothHalves(t *testing.T) {
	prg := make([]uint8, 16*1024)
	prg[0] = 0xaa
	prg[0x3fff] = 0xbb
	m := newNROM(testHeader(MirrorHorizontal), prg, nil)

	if got := m.cpuRead(0x8000); got != 0xaa {
		t.Fatalf("$8000 = %#02x, want 0xaa", got)
	}
	if got := m.cpuRead(0xc000); got != 0xaa {
		t.Fatalf("$c000 = %#02x, want 0xaa (16 KiB PRG mirrors into the upper half)", got)
	}
	if got := m.cpuRead(0xbfff); got != 0xbb {
		t.Fatalf("$bfff = %#02x, want 0xbb", got)
	}
}

func TestNROMCHRRAMIsWritable(t *testing.T) {
	m := newNROM(testHeader(MirrorVertical), make([]uint8, 16*1024), nil)
	if !m.chrRAM {
		t.Fatalf("no CHR ROM supplied, want CHR RAM fallback")
	}
	m.ppuWrite(0x0010, 0x42)
	if got := m.ppuRead(0x0010); got != 0x42 {
		t.Fatalf("CHR RAM readback = %#02x, want 0x42", got)
	}
}

func TestNROMCHRROMIgnoresWrites(t *testing.T) {
	chr := make([]uint8, 8*1024)
	chr[5] = 0x11
	m := newNROM(testHeader(MirrorVertical), make([]uint8, 16*1024), chr)
	m.ppuWrite(5, 0x99)
	if got := m.ppuRead(5); got != 0x11 {
		t.Fatalf("CHR ROM value changed by a write, got %#02x want 0x11", got)
	}
}

func TestMMC1ShiftRegisterCommitsOnFifthWrite(t *testing.T) {
	prg := make([]uint8, 4*16*1024)
	m := newMMC1(testHeader(MirrorHorizontal), prg, nil)

	// write control=0x02 (vertical mirroring, 32 KiB PRG mode... value itself
	// doesn't matter here beyond being distinguishable) one bit per write,
	// LSB first, to a $8000-range address.
	value := uint8(0x02)
	for i := 0; i < 5; i++ {
		bit := (value >> i) & 1
		m.cpuWrite(0x8000, bit)
	}
	if m.control != value {
		t.Fatalf("control register = %#02x after 5 shift writes, want %#02x", m.control, value)
	}
	if m.shift != 0 || m.count != 0 {
		t.Fatalf("shift/count not reset after commit: shift=%d count=%d", m.shift, m.count)
	}
}

func TestMMC1ResetBitForcesPRGMode3(t *testing.T) {
	prg := make([]uint8, 4*16*1024)
	m := newMMC1(testHeader(MirrorHorizontal), prg, nil)
	m.control = 0x00
	m.cpuWrite(0x8000, 0x80) // bit 7 set: reset
	if m.control&0x0c != 0x0c {
		t.Fatalf("control = %#02x after reset write, want PRG-mode bits (0x0c) set", m.control)
	}
	if m.shift != 0 || m.count != 0 {
		t.Fatalf("shift register not cleared by a reset write")
	}
}

func TestMMC1MirroringFollowsControlBits(t *testing.T) {
	m := newMMC1(testHeader(MirrorHorizontal), make([]uint8, 4*16*1024), nil)
	cases := []struct {
		bits uint8
		want Mirroring
	}{
		{0, MirrorSingleA},
		{1, MirrorSingleB},
		{2, MirrorVertical},
		{3, MirrorHorizontal},
	}
	for _, c := range cases {
		m.control = c.bits
		if got := m.mirroring(); got != c.want {
			t.Fatalf("control bits %#02x -> mirroring %v, want %v", c.bits, got, c.want)
		}
	}
}

func TestMMC1PRGMode3FixesLastBankAtC000(t *testing.T) {
	const bankCount = 4
	prg := make([]uint8, bankCount*16*1024)
	for i := 0; i < bankCount; i++ {
		prg[i*16*1024] = uint8(i)
	}
	m := newMMC1(testHeader(MirrorHorizontal), prg, nil)
	m.control = 0x0c // PRG mode 3: fix last bank at $c000
	m.prg = 0

	if got := m.cpuRead(0xc000); got != uint8(bankCount-1) {
		t.Fatalf("$c000 bank marker = %d, want %d (last bank fixed)", got, bankCount-1)
	}
	if got := m.cpuRead(0x8000); got != 0 {
		t.Fatalf("$8000 bank marker = %d, want 0 (selected by prg register)", got)
	}
}

func TestMMC3BankSelectThenValueWritesRegister(t *testing.T) {
	prg := make([]uint8, 4*0x2000)
	m := newMMC3(testHeader(MirrorHorizontal), prg, nil)

	m.cpuWrite(0x8000, 0x02) // select register 2 (CHR 1 KiB bank)
	m.cpuWrite(0x8001, 0x07)
	if m.regs[2] != 0x07 {
		t.Fatalf("regs[2] = %#02x, want 0x07", m.regs[2])
	}
}

func TestMMC3MirroringWriteOnlyAffectsEvenAddress(t *testing.T) {
	m := newMMC3(testHeader(MirrorHorizontal), make([]uint8, 4*0x2000), nil)
	m.cpuWrite(0xa000, 0x01) // even: select horizontal
	if m.mirroring() != MirrorHorizontal {
		t.Fatalf("mirroring = %v, want horizontal", m.mirroring())
	}
	m.cpuWrite(0xa000, 0x00) // even: select vertical
	if m.mirroring() != MirrorVertical {
		t.Fatalf("mirroring = %v, want vertical", m.mirroring())
	}
	m.cpuWrite(0xa001, 0x81) // odd: PRG-RAM protect, not mirroring
	if m.mirroring() != MirrorVertical {
		t.Fatalf("mirroring = %v after an odd-address write, want vertical (unchanged)", m.mirroring())
	}
}

func TestMMC3IRQCounterReloadsAndFires(t *testing.T) {
	m := newMMC3(testHeader(MirrorHorizontal), make([]uint8, 4*0x2000), nil)
	m.cpuWrite(0xc000, 4) // irqLatch = 4 (even address)
	m.cpuWrite(0xc001, 0) // irqReload = true (odd address)
	m.cpuWrite(0xe001, 0) // irqEnabled = true (odd address)

	// first clock reloads from 0 (counter starts at 0) rather than firing.
	m.clockIRQ()
	if m.irqCounter != 4 {
		t.Fatalf("irqCounter after reload = %d, want 4", m.irqCounter)
	}
	if m.irqPending() {
		t.Fatalf("IRQ asserted immediately after reload, want not yet")
	}

	for i := 0; i < 4; i++ {
		m.clockIRQ()
	}
	if !m.irqPending() {
		t.Fatalf("IRQ not asserted after the counter reached zero with irqEnabled")
	}

	m.irqAck()
	if m.irqPending() {
		t.Fatalf("IRQ still pending after irqAck")
	}
}

func TestMMC3A12RiseRequiresEightLowDotsFirst(t *testing.T) {
	m := newMMC3(testHeader(MirrorHorizontal), make([]uint8, 4*0x2000), nil)
	m.cpuWrite(0xc000, 1)
	m.cpuWrite(0xc001, 0)
	m.cpuWrite(0xe001, 0)

	m.ppuA12Clock(true) // starts high, no low dots observed yet
	for i := 0; i < 3; i++ {
		m.ppuA12Clock(false)
	}
	m.ppuA12Clock(true) // rises after only 3 low dots: must not clock
	if m.irqCounter != 0 {
		t.Fatalf("irqCounter = %d after a too-short low period, want 0 (no clock)", m.irqCounter)
	}

	for i := 0; i < 8; i++ {
		m.ppuA12Clock(false)
	}
	m.ppuA12Clock(true) // rises after 8 low dots: must clock
	if m.irqCounter != 1 {
		t.Fatalf("irqCounter = %d after a qualifying rise, want 1 (reloaded from latch)", m.irqCounter)
	}
}
