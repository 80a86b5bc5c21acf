package ppu

import (
	"testing"

	"github.com/tone-malone/nes-emu/hardware/memory/cartridge"
)

// fakeCart is a minimal CartridgeBus for PPU-only tests: 8 KiB of CHR RAM,
// fixed mirroring, and no mapper IRQ behavior.
type fakeCart struct {
	chr       [0x2000]uint8
	mirroring cartridge.Mirroring
}

func (c *fakeCart) PPURead(addr uint16) uint8        { return c.chr[addr&0x1fff] }
func (c *fakeCart) PPUWrite(addr uint16, data uint8) { c.chr[addr&0x1fff] = data }
func (c *fakeCart) Mirroring() cartridge.Mirroring   { return c.mirroring }
func (c *fakeCart) PPUA12Clock(level bool)           {}
func (c *fakeCart) PPUOnScanlineDot260(bool)         {}

func newTestPPU(mirroring cartridge.Mirroring) *PPU {
	p := New(&fakeCart{mirroring: mirroring})
	p.PowerOn()
	return p
}

func TestLoopyCoarseXWrapFlipsNametable(t *testing.T) {
	var l loopy
	l.setCoarseX(31)
	l.incCoarseX()
	if l.coarseX() != 0 {
		t.Fatalf("coarseX after wrap = %d, want 0", l.coarseX())
	}
	if l.nametable()&0x01 != 1 {
		t.Fatalf("horizontal nametable bit did not flip on coarse X wrap")
	}
}

func TestLoopyFineYWrapAtRow29FlipsVerticalNametable(t *testing.T) {
	var l loopy
	l.setFineY(7)
	l.setCoarseY(29)
	l.incFineY()
	if l.coarseY() != 0 {
		t.Fatalf("coarseY after row-29 wrap = %d, want 0", l.coarseY())
	}
	if l.nametable()&0x02 != 2 {
		t.Fatalf("vertical nametable bit did not flip at the row-29 wrap")
	}
}

func TestLoopyFineYWrapAtRow31DoesNotFlipNametable(t *testing.T) {
	// row 31 is outside the visible nametable (attribute data territory
	// when misused by a ROM); coarse Y still wraps but the nametable bit
	// must not flip here, only at row 29.
	var l loopy
	l.setFineY(7)
	l.setCoarseY(31)
	l.incFineY()
	if l.coarseY() != 0 {
		t.Fatalf("coarseY after row-31 wrap = %d, want 0", l.coarseY())
	}
	if l.nametable() != 0 {
		t.Fatalf("nametable bits changed on a row-31 wrap, want unchanged")
	}
}

func TestPaletteMirroring(t *testing.T) {
	p := newTestPPU(cartridge.MirrorVertical)

	p.writePalette(0x3f00, 0x10)
	if got := p.readPalette(0x3f10); got != 0x10 {
		t.Fatalf("$3f10 = %#02x, want $3f00's value 0x10 (sprite-backdrop mirror)", got)
	}

	p.writePalette(0x3f04, 0x22)
	if got := p.readPalette(0x3f14); got != 0x22 {
		t.Fatalf("$3f14 = %#02x, want $3f04's value 0x22", got)
	}

	p.writePalette(0x3f01, 0x3f)
	if got := p.readPalette(0x3f21); got != 0x3f {
		t.Fatalf("$3f21 (mirrors every 32 bytes) = %#02x, want 0x3f", got)
	}
}

func TestNametableVerticalMirroring(t *testing.T) {
	p := newTestPPU(cartridge.MirrorVertical)
	// vertical mirroring: $2000 and $2800 are the same physical bank.
	p.busWrite(0x2000, 0xab)
	if got := p.busRead(0x2800); got != 0xab {
		t.Fatalf("$2800 under vertical mirroring = %#02x, want 0xab (mirrors $2000)", got)
	}
	if got := p.busRead(0x2400); got == 0xab {
		t.Fatalf("$2400 under vertical mirroring unexpectedly mirrors $2000")
	}
}

func TestNametableHorizontalMirroring(t *testing.T) {
	p := newTestPPU(cartridge.MirrorHorizontal)
	p.busWrite(0x2000, 0xcd)
	if got := p.busRead(0x2400); got != 0xcd {
		t.Fatalf("$2400 under horizontal mirroring = %#02x, want 0xcd (mirrors $2000)", got)
	}
	if got := p.busRead(0x2800); got == 0xcd {
		t.Fatalf("$2800 under horizontal mirroring unexpectedly mirrors $2000")
	}
}

func TestStatusReadClearsVBlankAndWriteToggle(t *testing.T) {
	p := newTestPPU(cartridge.MirrorHorizontal)
	p.status |= statusVBlank
	p.writeToggle = true

	got := p.ReadRegister(2)
	if got&statusVBlank == 0 {
		t.Fatalf("PPUSTATUS read did not report vblank bit before clearing it")
	}
	if p.status&statusVBlank != 0 {
		t.Fatalf("reading PPUSTATUS did not clear the vblank flag")
	}
	if p.writeToggle {
		t.Fatalf("reading PPUSTATUS did not reset the write toggle")
	}
}

func TestOddFrameSkipsDot339OnPreRenderWhenRendering(t *testing.T) {
	p := newTestPPU(cartridge.MirrorHorizontal)
	p.mask = maskShowBG // enable rendering so the skip applies

	p.scanline, p.dot = -1, 339
	p.oddFrame = true
	p.advance(true)

	if p.scanline != 0 || p.dot != 0 {
		t.Fatalf("odd-frame skip: scanline=%d dot=%d, want scanline=0 dot=0 (dot 339 skipped straight to the next frame)", p.scanline, p.dot)
	}
}

func TestEvenFrameDoesNotSkipDot339(t *testing.T) {
	p := newTestPPU(cartridge.MirrorHorizontal)
	p.mask = maskShowBG

	p.scanline, p.dot = -1, 339
	p.oddFrame = false
	p.advance(true)

	if p.scanline != -1 || p.dot != 340 {
		t.Fatalf("even frame: scanline=%d dot=%d, want scanline=-1 dot=340 (no skip)", p.scanline, p.dot)
	}
}
