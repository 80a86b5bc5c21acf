package cartridge_test

import (
	"testing"

	"github.com/tone-malone/nes-emu/hardware/memory/cartridge"
)

func buildINES(prgBanks, chrBanks int, flags6, flags7 uint8) []byte {
	prgSize := prgBanks * 16 * 1024
	chrSize := chrBanks * 8 * 1024
	data := make([]byte, 16+prgSize+chrSize)
	copy(data, []byte{'N', 'E', 'S', 0x1a})
	data[4] = uint8(prgBanks)
	data[5] = uint8(chrBanks)
	data[6] = flags6
	data[7] = flags7
	return data
}

func TestLoadRejectsMissingMagicNumber(t *testing.T) {
	data := buildINES(1, 1, 0, 0)
	data[0] = 'X'
	if _, err := cartridge.Load("bad.nes", data, ""); err == nil {
		t.Fatalf("expected an error for a missing iNES magic number")
	}
}

func TestLoadRejectsTruncatedPRGROM(t *testing.T) {
	data := buildINES(2, 1, 0, 0)
	data = data[:16+20000] // short of the declared 32 KiB of PRG ROM
	if _, err := cartridge.Load("truncated.nes", data, ""); err == nil {
		t.Fatalf("expected an error for truncated PRG ROM")
	}
}

func TestLoadNROMMirroringFromFlags6(t *testing.T) {
	data := buildINES(1, 1, 0x01, 0) // bit 0 set: vertical mirroring
	cart, err := cartridge.Load("v.nes", data, "")
	if err != nil {
		t.Fatalf("cartridge.Load: %v", err)
	}
	if cart.Mirroring() != cartridge.MirrorVertical {
		t.Fatalf("mirroring = %v, want vertical", cart.Mirroring())
	}
}

func TestLoadPicksMMC1ForMapperOne(t *testing.T) {
	flags6 := uint8(1 << 4) // low nibble of mapper number = 1
	data := buildINES(4, 1, flags6, 0)
	cart, err := cartridge.Load("mmc1.nes", data, "")
	if err != nil {
		t.Fatalf("cartridge.Load: %v", err)
	}
	if cart.Mapper != 1 {
		t.Fatalf("Mapper = %d, want 1", cart.Mapper)
	}
}

func TestLoadFallsBackToNROMForUnsupportedMapper(t *testing.T) {
	flags6 := uint8(0x0c << 4) // mapper low nibble = 12
	flags7 := uint8(0xc0)      // mapper high nibble = 12, giving mapper 204
	data := buildINES(1, 1, flags6, flags7)
	cart, err := cartridge.Load("weird.nes", data, "")
	if err != nil {
		t.Fatalf("cartridge.Load for an unsupported mapper should fall back, not error: %v", err)
	}
	// a substituted NROM mapper must still answer reads without panicking.
	_ = cart.CPURead(0x8000)
}

func TestLoadZeroCHRBanksGivesWritableCHRRAM(t *testing.T) {
	data := buildINES(1, 0, 0, 0)
	cart, err := cartridge.Load("chrram.nes", data, "")
	if err != nil {
		t.Fatalf("cartridge.Load: %v", err)
	}
	cart.PPUWrite(0x0000, 0x5a)
	if got := cart.PPURead(0x0000); got != 0x5a {
		t.Fatalf("CHR RAM readback = %#02x, want 0x5a", got)
	}
}

func TestSummaryIncludesMapperAndMirroring(t *testing.T) {
	data := buildINES(1, 1, 0, 0)
	cart, err := cartridge.Load("summary.nes", data, "")
	if err != nil {
		t.Fatalf("cartridge.Load: %v", err)
	}
	if cart.Summary() == "" {
		t.Fatalf("Summary() returned an empty string")
	}
}
