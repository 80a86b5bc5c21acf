package ppu

// loopy is the PPU's internal scroll/address register layout (so named on
// nesdev after Loopy, who documented it): 15 bits packed as
// 0yyy NNYY YYYX XXXX - fine Y, nametable select, coarse Y, coarse X.
type loopy uint16

func (l loopy) coarseX() uint16    { return uint16(l) & 0x001f }
func (l loopy) coarseY() uint16    { return (uint16(l) >> 5) & 0x001f }
func (l loopy) nametable() uint16  { return (uint16(l) >> 10) & 0x0003 }
func (l loopy) fineY() uint16      { return (uint16(l) >> 12) & 0x0007 }
func (l loopy) nametableAddr() uint16 {
	return 0x2000 | uint16(l)&0x0fff
}

func (l *loopy) setCoarseX(v uint16)   { *l = loopy(uint16(*l)&0xffe0 | v&0x001f) }
func (l *loopy) setCoarseY(v uint16)   { *l = loopy(uint16(*l)&0xfc1f | (v&0x001f)<<5) }
func (l *loopy) setNametable(v uint16) { *l = loopy(uint16(*l)&0xf3ff | (v&0x0003)<<10) }
func (l *loopy) setFineY(v uint16)     { *l = loopy(uint16(*l)&0x8fff | (v&0x0007)<<12) }
func (l *loopy) setLo(v uint8)         { *l = loopy(uint16(*l)&0xff00 | uint16(v)) }
func (l *loopy) setHi(v uint8)         { *l = loopy(uint16(*l)&0x00ff | (uint16(v)&0x3f)<<8) }

// incCoarseX implements the "increment hori(v)" nesdev routine: wraps
// coarse X at 31 and flips the horizontal nametable bit.
func (l *loopy) incCoarseX() {
	if l.coarseX() == 31 {
		l.setCoarseX(0)
		*l ^= 0x0400
	} else {
		l.setCoarseX(l.coarseX() + 1)
	}
}

// incFineY implements "increment vert(v)": advances fine Y, rolling into
// coarse Y (and flipping the vertical nametable bit at the row-29 wrap,
// which is where the visible nametable actually ends) when fine Y wraps.
func (l *loopy) incFineY() {
	if l.fineY() < 7 {
		l.setFineY(l.fineY() + 1)
		return
	}
	l.setFineY(0)
	switch l.coarseY() {
	case 29:
		l.setCoarseY(0)
		*l ^= 0x0800
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(l.coarseY() + 1)
	}
}

// copyHorizontal and copyVertical implement the "hori(v)=hori(t)" and
// "vert(v)=vert(t)" transfers, done at cycle 257 and during cycles
// 280-304 of the pre-render line respectively.
func (l *loopy) copyHorizontal(t loopy) {
	*l = loopy(uint16(*l)&0xfbe0 | uint16(t)&0x041f)
}
func (l *loopy) copyVertical(t loopy) {
	*l = loopy(uint16(*l)&0x841f | uint16(t)&0x7be0)
}

// PPUCTRL bits ($2000, write-only).
const (
	ctrlNametableMask  = 0x03
	ctrlVRAMIncrement  = 1 << 2
	ctrlSpritePattern  = 1 << 3
	ctrlBGPattern      = 1 << 4
	ctrlSpriteSize     = 1 << 5
	ctrlMasterSlave    = 1 << 6
	ctrlNMIEnable      = 1 << 7
)

// PPUMASK bits ($2001, write-only).
const (
	maskGreyscale     = 1 << 0
	maskShowBGLeft    = 1 << 1
	maskShowSpriteLeft = 1 << 2
	maskShowBG        = 1 << 3
	maskShowSprites   = 1 << 4
	maskEmphasizeRed  = 1 << 5
	maskEmphasizeGreen = 1 << 6
	maskEmphasizeBlue = 1 << 7
)

// PPUSTATUS bits ($2002, read-only).
const (
	statusSpriteOverflow = 1 << 5
	statusSprite0Hit     = 1 << 6
	statusVBlank         = 1 << 7
)
