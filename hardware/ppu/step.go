package ppu

// Step advances the PPU by exactly one dot (1/3 of a CPU cycle). The
// console orchestrator calls this three times per CPU Step.
func (p *PPU) Step() {
	visible := p.scanline >= 0 && p.scanline < 240
	preRender := p.scanline == -1
	renderLine := visible || preRender

	if p.rendering() && renderLine {
		p.runBackgroundPipeline(visible, preRender)
	}

	// Sprite evaluation/load always targets scanline+1, so the pre-render
	// line's dot 257/321 must run this too - it's what builds the set for
	// the first visible scanline, 0.
	if p.rendering() && renderLine {
		switch p.dot {
		case 257:
			p.evaluateSprites()
		case 321:
			p.loadSprites()
		}
	}

	if p.rendering() && renderLine && p.dot == 260 {
		p.cart.PPUOnScanlineDot260(true)
	}

	if visible && p.dot >= 1 && p.dot <= 256 {
		p.renderPixel()
	}

	if p.scanline == 241 && p.dot == 1 {
		p.status |= statusVBlank
		p.signalNMI()
	}
	if preRender && p.dot == 1 {
		p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
		p.signalNMI()
	}

	p.advance(preRender)
}

func (p *PPU) signalNMI() {
	if p.NMI != nil {
		p.NMI(p.status&statusVBlank != 0 && p.nmiEnabled())
	}
}

func (p *PPU) bgPatternBase() uint16 {
	if p.ctrl&ctrlBGPattern != 0 {
		return 0x1000
	}
	return 0
}

func (p *PPU) runBackgroundPipeline(visible, preRender bool) {
	fetchWindow := (p.dot >= 1 && p.dot <= 256) || (p.dot >= 321 && p.dot <= 336)

	if fetchWindow {
		p.updateShifters()

		switch p.dot % 8 {
		case 1:
			p.loadBackgroundShifters()
			p.nextTileID = p.busRead(p.v.nametableAddr())
		case 3:
			attrAddr := uint16(0x23c0) | uint16(p.v)&0x0c00 | (p.v.coarseY()>>2)<<3 | p.v.coarseX()>>2
			attr := p.busRead(attrAddr)
			if p.v.coarseY()&0x02 != 0 {
				attr >>= 4
			}
			if p.v.coarseX()&0x02 != 0 {
				attr >>= 2
			}
			p.nextAttrib = attr & 0x03
		case 5:
			addr := p.bgPatternBase() + uint16(p.nextTileID)*16 + p.v.fineY()
			p.nextLow = p.busRead(addr)
			p.cart.PPUA12Clock(addr&0x1000 != 0)
		case 7:
			addr := p.bgPatternBase() + uint16(p.nextTileID)*16 + p.v.fineY() + 8
			p.nextHigh = p.busRead(addr)
			p.cart.PPUA12Clock(addr&0x1000 != 0)
		case 0:
			p.v.incCoarseX()
		}
	}

	if p.dot == 256 {
		p.v.incFineY()
	}
	if p.dot == 257 {
		p.loadBackgroundShifters()
		p.v.copyHorizontal(p.t)
	}
	if preRender && p.dot >= 280 && p.dot <= 304 {
		p.v.copyVertical(p.t)
	}
	if p.dot == 339 {
		p.nextTileID = p.busRead(p.v.nametableAddr())
	}
}

func (p *PPU) loadBackgroundShifters() {
	p.bgShiftLow = p.bgShiftLow&0xff00 | uint16(p.nextLow)
	p.bgShiftHigh = p.bgShiftHigh&0xff00 | uint16(p.nextHigh)

	var lo, hi uint16
	if p.nextAttrib&0x01 != 0 {
		lo = 0x00ff
	}
	if p.nextAttrib&0x02 != 0 {
		hi = 0x00ff
	}
	p.attribShiftLow = p.attribShiftLow&0xff00 | lo
	p.attribShiftHigh = p.attribShiftHigh&0xff00 | hi
}

func (p *PPU) updateShifters() {
	if !p.showBackground() {
		return
	}
	p.bgShiftLow <<= 1
	p.bgShiftHigh <<= 1
	p.attribShiftLow <<= 1
	p.attribShiftHigh <<= 1
}

// evaluateSprites performs the linear 64-sprite scan for the NEXT
// scanline's renderable set, like real hardware's sprite evaluation phase
// run during the current line's rendering. As a simplification, this
// happens in one shot at dot 257 rather than being spread one OAM entry
// per dot as on hardware.
func (p *PPU) evaluateSprites() {
	height := p.spriteHeight()
	targetLine := p.scanline + 1

	p.secondaryCount = 0
	p.spriteZeroVisible = false
	p.status &^= statusSpriteOverflow

	for i := 0; i < 64; i++ {
		y := p.oam[i*4]
		if targetLine < int(y)+1 || targetLine >= int(y)+1+height {
			continue
		}
		if p.secondaryCount >= 8 {
			p.status |= statusSpriteOverflow
			break
		}
		p.secondary[p.secondaryCount] = sprite{
			y:      y,
			tile:   p.oam[i*4+1],
			attrib: p.oam[i*4+2],
			x:      p.oam[i*4+3],
		}
		if i == 0 {
			p.spriteZeroVisible = true
			p.spriteIsZero[p.secondaryCount] = true
		} else {
			p.spriteIsZero[p.secondaryCount] = false
		}
		p.secondaryCount++
	}
}

// loadSprites fetches pattern bytes for every sprite evaluateSprites found,
// for rendering starting on the next scanline.
func (p *PPU) loadSprites() {
	height := p.spriteHeight()
	targetLine := p.scanline + 1

	for i := 0; i < p.secondaryCount; i++ {
		s := p.secondary[i]
		row := targetLine - int(s.y) - 1
		if s.attrib&0x80 != 0 {
			row = height - 1 - row
		}

		var addr uint16
		if height == 16 {
			tile := uint16(s.tile &^ 1)
			base := uint16(s.tile&1) * 0x1000
			if row >= 8 {
				tile++
				row -= 8
			}
			addr = base + tile*16 + uint16(row)
		} else {
			addr = p.spritePatternBase() + uint16(s.tile)*16 + uint16(row)
		}

		lo := p.busRead(addr)
		hi := p.busRead(addr + 8)
		p.cart.PPUA12Clock(addr&0x1000 != 0)

		if s.attrib&0x40 != 0 {
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}

		p.spritePatternLow[i] = lo
		p.spritePatternHigh[i] = hi
		p.spriteX[i] = s.x
		p.spriteAttrib[i] = s.attrib
	}
	for i := p.secondaryCount; i < 8; i++ {
		p.spritePatternLow[i], p.spritePatternHigh[i] = 0, 0
	}
}

func (p *PPU) spritePatternBase() uint16 {
	if p.ctrl&ctrlSpritePattern != 0 {
		return 0x1000
	}
	return 0
}

func reverseBits(b uint8) uint8 {
	b = b<<4&0xf0 | b>>4&0x0f
	b = b<<2&0xcc | b>>2&0x33
	b = b<<1&0xaa | b>>1&0x55
	return b
}

// renderPixel composites the background shifters and sprite output units
// for the current dot into the framebuffer.
func (p *PPU) renderPixel() {
	x := p.dot - 1
	y := p.scanline

	var bgPixel, bgPalette uint8
	if p.showBackground() && (p.mask&maskShowBGLeft != 0 || x >= 8) {
		bit := uint16(0x8000) >> p.fineX
		b0 := uint8(0)
		if p.bgShiftLow&bit != 0 {
			b0 = 1
		}
		b1 := uint8(0)
		if p.bgShiftHigh&bit != 0 {
			b1 = 1
		}
		bgPixel = b1<<1 | b0

		a0 := uint8(0)
		if p.attribShiftLow&bit != 0 {
			a0 = 1
		}
		a1 := uint8(0)
		if p.attribShiftHigh&bit != 0 {
			a1 = 1
		}
		bgPalette = a1<<1 | a0
	}

	var fgPixel, fgPalette uint8
	fgPriority := false
	fgIsZero := false
	if p.showSprites() && (p.mask&maskShowSpriteLeft != 0 || x >= 8) {
		for i := 0; i < p.secondaryCount; i++ {
			offset := x - int(p.spriteX[i])
			if offset < 0 || offset > 7 {
				continue
			}
			bit := uint(7 - offset)
			b0 := (p.spritePatternLow[i] >> bit) & 1
			b1 := (p.spritePatternHigh[i] >> bit) & 1
			px := b1<<1 | b0
			if px == 0 {
				continue
			}
			fgPixel = px
			fgPalette = p.spriteAttrib[i] & 0x03
			fgPriority = p.spriteAttrib[i]&0x20 == 0
			fgIsZero = p.spriteIsZero[i]
			break
		}
	}

	if fgIsZero && bgPixel != 0 && fgPixel != 0 && x != 255 {
		p.status |= statusSprite0Hit
	}

	var paletteAddr uint16
	switch {
	case bgPixel == 0 && fgPixel == 0:
		paletteAddr = 0x3f00
	case bgPixel == 0:
		paletteAddr = 0x3f10 + uint16(fgPalette)*4 + uint16(fgPixel)
	case fgPixel == 0:
		paletteAddr = 0x3f00 + uint16(bgPalette)*4 + uint16(bgPixel)
	case fgPriority:
		paletteAddr = 0x3f10 + uint16(fgPalette)*4 + uint16(fgPixel)
	default:
		paletteAddr = 0x3f00 + uint16(bgPalette)*4 + uint16(bgPixel)
	}

	p.Framebuffer[y*256+x] = nesPalette[p.readPalette(paletteAddr)&0x3f]
}

// advance moves to the next dot, rolling over scanlines and frames. On a
// rendering-enabled odd frame the pre-render line's idle dot 339 is
// skipped, shortening that frame by one PPU dot.
func (p *PPU) advance(preRender bool) {
	p.dot++

	if preRender && p.dot == 340 && p.oddFrame && p.rendering() {
		p.dot = 0
		p.scanline = 0
		p.endFrame()
		return
	}

	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.endFrame()
		}
	}
}

func (p *PPU) endFrame() {
	p.frame++
	p.oddFrame = !p.oddFrame
	p.FrameComplete = true
}
