// Package cartridge parses iNES/NES 2.0 ROM images and implements the
// NROM, MMC1 and MMC3 mappers behind a common interface.
package cartridge

import (
	"fmt"
	"os"

	"github.com/tone-malone/nes-emu/curated"
	"github.com/tone-malone/nes-emu/logger"
)

// Cartridge wraps exactly one mapper instance and exposes the CPU- and
// PPU-facing operations the bus and PPU need. The cartridge is the sole
// owner of its mapper.
type Cartridge struct {
	Filename string
	Mapper   int
	Battery  bool

	savePath string
	mapper   mapper
}

// Load parses romData as an iNES/NES 2.0 image and builds the appropriate
// mapper. filename is kept only for Summary()/logging; savePath, if
// non-empty and the header's battery flag is set, is read immediately after
// the mapper is constructed to restore battery-backed PRG-RAM.
func Load(filename string, romData []byte, savePath string) (*Cartridge, error) {
	h, err := parseHeader(romData)
	if err != nil {
		return nil, curated.Errorf("cartridge: %v", err)
	}

	offset := headerSize
	var trainer []byte
	if h.trainer {
		if len(romData) < offset+trainerSize {
			return nil, curated.Errorf("cartridge: %v", "truncated trainer")
		}
		trainer = romData[offset : offset+trainerSize]
		offset += trainerSize
	}

	if len(romData) < offset+h.prgROMSize {
		return nil, curated.Errorf("cartridge: %v", "truncated PRG ROM")
	}
	prgROM := romData[offset : offset+h.prgROMSize]
	offset += h.prgROMSize

	var chrROM []byte
	if h.chrROMSize > 0 {
		if len(romData) < offset+h.chrROMSize {
			return nil, curated.Errorf("cartridge: %v", "truncated CHR ROM")
		}
		chrROM = romData[offset : offset+h.chrROMSize]
		offset += h.chrROMSize
	}

	cart := &Cartridge{
		Filename: filename,
		Mapper:   h.mapper,
		Battery:  h.battery,
		savePath: savePath,
	}

	mapperID := h.mapper
	switch mapperID {
	case 0:
		cart.mapper = newNROM(h, prgROM, chrROM)
	case 1:
		cart.mapper = newMMC1(h, prgROM, chrROM)
	case 4:
		cart.mapper = newMMC3(h, prgROM, chrROM)
	default:
		logger.Logf(logger.Allow, "cartridge", "mapper %d unsupported, substituting NROM", mapperID)
		cart.mapper = newNROM(h, prgROM, chrROM)
	}

	if len(trainer) > 0 {
		ram := cart.mapper.prgRAM()
		if ram != nil && len(ram) >= 0x1000+trainerSize {
			copy(ram[0x1000:0x1000+trainerSize], trainer)
		}
	}

	if cart.Battery && savePath != "" {
		if err := cart.loadSave(); err != nil {
			logger.Logf(logger.Allow, "cartridge", "save load failed for %s: %v", savePath, err)
		}
	}

	return cart, nil
}

// loadSave reads the sidecar .sav file into the mapper's combined PRG-RAM
// region (volatile and battery-backed bytes together - no mapper here
// tracks where one ends and the other begins), if sizes match. A missing
// file is not an error - the PRG-RAM simply stays zeroed.
func (cart *Cartridge) loadSave() error {
	ram := cart.mapper.prgRAM()
	if ram == nil {
		return nil
	}

	data, err := os.ReadFile(cart.savePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return curated.Errorf("cartridge: %v", err)
	}

	if len(data) != len(ram) {
		return curated.Errorf("cartridge: %v", fmt.Sprintf("save size mismatch: file has %d bytes, PRG-RAM is %d", len(data), len(ram)))
	}

	copy(ram, data)
	return nil
}

// Flush writes the mapper's entire PRG-RAM region to the sidecar .sav
// file, if the cartridge is battery-backed. This writes volatile bytes
// alongside battery-backed ones rather than only the NVRAM portion - the
// header parses the two sizes separately, but nothing downstream keeps
// them in separate regions, so a full round-trip through loadSave is the
// only thing guaranteed. Failures are logged, never returned to the
// caller: a failed save must never prevent shutdown.
func (cart *Cartridge) Flush() {
	if !cart.Battery || cart.savePath == "" {
		return
	}

	ram := cart.mapper.prgRAM()
	if ram == nil {
		return
	}

	if err := os.WriteFile(cart.savePath, ram, 0o644); err != nil {
		logger.Logf(logger.Allow, "cartridge", "save write failed for %s: %v", cart.savePath, err)
	}
}

// CPURead delegates a CPU read in $4020-$ffff to the mapper.
func (cart *Cartridge) CPURead(addr uint16) uint8 { return cart.mapper.cpuRead(addr) }

// CPUWrite delegates a CPU write in $4020-$ffff to the mapper.
func (cart *Cartridge) CPUWrite(addr uint16, data uint8) { cart.mapper.cpuWrite(addr, data) }

// PPURead delegates a PPU pattern-table read, $0000-$1fff, to the mapper.
func (cart *Cartridge) PPURead(addr uint16) uint8 { return cart.mapper.ppuRead(addr) }

// PPUWrite delegates a PPU pattern-table write, $0000-$1fff, to the mapper.
func (cart *Cartridge) PPUWrite(addr uint16, data uint8) { cart.mapper.ppuWrite(addr, data) }

// Mirroring reports the cartridge's current nametable mirroring mode.
func (cart *Cartridge) Mirroring() Mirroring { return cart.mapper.mirroring() }

// IRQPending reports whether the mapper is asserting its IRQ line.
func (cart *Cartridge) IRQPending() bool { return cart.mapper.irqPending() }

// IRQAck acknowledges (clears) the mapper's IRQ line.
func (cart *Cartridge) IRQAck() { cart.mapper.irqAck() }

// PPUA12Clock forwards one PPU dot's A12 sample to the mapper.
func (cart *Cartridge) PPUA12Clock(level bool) { cart.mapper.ppuA12Clock(level) }

// PPUOnScanlineDot260 forwards the dot-260 synthesized fallback clock.
func (cart *Cartridge) PPUOnScanlineDot260(renderingEnabled bool) {
	cart.mapper.ppuOnScanlineDot260(renderingEnabled)
}

// Summary returns a short human-readable description of the cartridge.
func (cart *Cartridge) Summary() string {
	return fmt.Sprintf("%s [mapper %d, %s]", cart.Filename, cart.Mapper, cart.Mirroring())
}
