package cartridge

// Mirroring describes how the PPU's 2 KiB of nametable RAM is mirrored
// into its 4 KiB nametable window.
type Mirroring int

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorSingleA
	MirrorSingleB
	MirrorFourScreen
)

func (m Mirroring) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorSingleA:
		return "single-screen A"
	case MirrorSingleB:
		return "single-screen B"
	case MirrorFourScreen:
		return "four-screen"
	default:
		return "unknown"
	}
}

// mapper is the interface every cartridge mapper variant implements. The
// cartridge dispatches to exactly one of these for the lifetime of a ROM.
type mapper interface {
	// id is the iNES mapper number this mapper implements.
	id() int

	// cpuRead and cpuWrite handle the cartridge-delegated CPU address
	// space, $4020-$ffff. addr is NOT normalised - callers pass the full
	// CPU address.
	cpuRead(addr uint16) uint8
	cpuWrite(addr uint16, data uint8)

	// ppuRead and ppuWrite handle the pattern table window, $0000-$1fff,
	// as seen by the PPU.
	ppuRead(addr uint16) uint8
	ppuWrite(addr uint16, data uint8)

	// mirroring reports the current nametable mirroring mode. Some
	// mappers (MMC1) can change this at runtime.
	mirroring() Mirroring

	// irqPending reports whether the mapper's own IRQ line is asserted.
	irqPending() bool

	// irqAck is called by the CPU immediately after it services a mapper
	// IRQ.
	irqAck()

	// ppuA12Clock is called once per CHR pattern fetch the PPU makes while
	// rendering (two per background tile, one per loaded sprite), with
	// whether that fetch's address is >= $1000 (A12 high). Dots without a
	// pattern fetch produce no call.
	ppuA12Clock(level bool)

	// ppuOnScanlineDot260 is the dot-260 synthesized fallback clock used
	// by MMC3 when no real A12 edge occurred during a visible scanline.
	ppuOnScanlineDot260(renderingEnabled bool)

	// prgRAM exposes the mapper's whole PRG-RAM region (volatile and
	// battery-backed bytes together) for save/restore.
	prgRAM() []uint8

	// battery reports the mapper's own battery setting. The cartridge does
	// not consult it: whether prgRAM() is persisted follows the header's
	// battery flag (Cartridge.Battery).
	battery() bool
}
