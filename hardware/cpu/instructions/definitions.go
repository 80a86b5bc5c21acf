package instructions

// bytesFor returns the instruction length in bytes implied by an
// addressing mode alone.
func bytesFor(m Mode) int {
	switch m {
	case Implied, Accumulator:
		return 1
	case Immediate, ZeroPage, ZeroPageX, ZeroPageY, IndirectX, IndirectY, Relative:
		return 2
	default:
		return 3
	}
}

func def(mn Mnemonic, m Mode, cycles int, pageCross, official bool) Definition {
	return Definition{
		Mnemonic:  mn,
		Mode:      m,
		Bytes:     bytesFor(m),
		Cycles:    cycles,
		PageCross: pageCross,
		Official:  official,
	}
}

// Table maps every opcode byte to its Definition. Unofficial opcodes
// (Official: false) are the ones real cartridges and test suites are
// known to rely on; KIL halts the CPU entirely, which CPU.Halted reports,
// rather than returning an error.
var Table = [256]Definition{
	0x00: def(BRK, Implied, 7, false, true),
	0x01: def(ORA, IndirectX, 6, false, true),
	0x02: def(KIL, Implied, 2, false, false),
	0x03: def(SLO, IndirectX, 8, false, false),
	0x04: def(NOP, ZeroPage, 3, false, false),
	0x05: def(ORA, ZeroPage, 3, false, true),
	0x06: def(ASL, ZeroPage, 5, false, true),
	0x07: def(SLO, ZeroPage, 5, false, false),
	0x08: def(PHP, Implied, 3, false, true),
	0x09: def(ORA, Immediate, 2, false, true),
	0x0a: def(ASL, Accumulator, 2, false, true),
	0x0b: def(ANC, Immediate, 2, false, false),
	0x0c: def(NOP, Absolute, 4, false, false),
	0x0d: def(ORA, Absolute, 4, false, true),
	0x0e: def(ASL, Absolute, 6, false, true),
	0x0f: def(SLO, Absolute, 6, false, false),

	0x10: def(BPL, Relative, 2, true, true),
	0x11: def(ORA, IndirectY, 5, true, true),
	0x12: def(KIL, Implied, 2, false, false),
	0x13: def(SLO, IndirectY, 8, false, false),
	0x14: def(NOP, ZeroPageX, 4, false, false),
	0x15: def(ORA, ZeroPageX, 4, false, true),
	0x16: def(ASL, ZeroPageX, 6, false, true),
	0x17: def(SLO, ZeroPageX, 6, false, false),
	0x18: def(CLC, Implied, 2, false, true),
	0x19: def(ORA, AbsoluteY, 4, true, true),
	0x1a: def(NOP, Implied, 2, false, false),
	0x1b: def(SLO, AbsoluteY, 7, false, false),
	0x1c: def(NOP, AbsoluteX, 4, true, false),
	0x1d: def(ORA, AbsoluteX, 4, true, true),
	0x1e: def(ASL, AbsoluteX, 7, false, true),
	0x1f: def(SLO, AbsoluteX, 7, false, false),

	0x20: def(JSR, Absolute, 6, false, true),
	0x21: def(AND, IndirectX, 6, false, true),
	0x22: def(KIL, Implied, 2, false, false),
	0x23: def(RLA, IndirectX, 8, false, false),
	0x24: def(BIT, ZeroPage, 3, false, true),
	0x25: def(AND, ZeroPage, 3, false, true),
	0x26: def(ROL, ZeroPage, 5, false, true),
	0x27: def(RLA, ZeroPage, 5, false, false),
	0x28: def(PLP, Implied, 4, false, true),
	0x29: def(AND, Immediate, 2, false, true),
	0x2a: def(ROL, Accumulator, 2, false, true),
	0x2b: def(ANC, Immediate, 2, false, false),
	0x2c: def(BIT, Absolute, 4, false, true),
	0x2d: def(AND, Absolute, 4, false, true),
	0x2e: def(ROL, Absolute, 6, false, true),
	0x2f: def(RLA, Absolute, 6, false, false),

	0x30: def(BMI, Relative, 2, true, true),
	0x31: def(AND, IndirectY, 5, true, true),
	0x32: def(KIL, Implied, 2, false, false),
	0x33: def(RLA, IndirectY, 8, false, false),
	0x34: def(NOP, ZeroPageX, 4, false, false),
	0x35: def(AND, ZeroPageX, 4, false, true),
	0x36: def(ROL, ZeroPageX, 6, false, true),
	0x37: def(RLA, ZeroPageX, 6, false, false),
	0x38: def(SEC, Implied, 2, false, true),
	0x39: def(AND, AbsoluteY, 4, true, true),
	0x3a: def(NOP, Implied, 2, false, false),
	0x3b: def(RLA, AbsoluteY, 7, false, false),
	0x3c: def(NOP, AbsoluteX, 4, true, false),
	0x3d: def(AND, AbsoluteX, 4, true, true),
	0x3e: def(ROL, AbsoluteX, 7, false, true),
	0x3f: def(RLA, AbsoluteX, 7, false, false),

	0x40: def(RTI, Implied, 6, false, true),
	0x41: def(EOR, IndirectX, 6, false, true),
	0x42: def(KIL, Implied, 2, false, false),
	0x43: def(SRE, IndirectX, 8, false, false),
	0x44: def(NOP, ZeroPage, 3, false, false),
	0x45: def(EOR, ZeroPage, 3, false, true),
	0x46: def(LSR, ZeroPage, 5, false, true),
	0x47: def(SRE, ZeroPage, 5, false, false),
	0x48: def(PHA, Implied, 3, false, true),
	0x49: def(EOR, Immediate, 2, false, true),
	0x4a: def(LSR, Accumulator, 2, false, true),
	0x4b: def(ALR, Immediate, 2, false, false),
	0x4c: def(JMP, Absolute, 3, false, true),
	0x4d: def(EOR, Absolute, 4, false, true),
	0x4e: def(LSR, Absolute, 6, false, true),
	0x4f: def(SRE, Absolute, 6, false, false),

	0x50: def(BVC, Relative, 2, true, true),
	0x51: def(EOR, IndirectY, 5, true, true),
	0x52: def(KIL, Implied, 2, false, false),
	0x53: def(SRE, IndirectY, 8, false, false),
	0x54: def(NOP, ZeroPageX, 4, false, false),
	0x55: def(EOR, ZeroPageX, 4, false, true),
	0x56: def(LSR, ZeroPageX, 6, false, true),
	0x57: def(SRE, ZeroPageX, 6, false, false),
	0x58: def(CLI, Implied, 2, false, true),
	0x59: def(EOR, AbsoluteY, 4, true, true),
	0x5a: def(NOP, Implied, 2, false, false),
	0x5b: def(SRE, AbsoluteY, 7, false, false),
	0x5c: def(NOP, AbsoluteX, 4, true, false),
	0x5d: def(EOR, AbsoluteX, 4, true, true),
	0x5e: def(LSR, AbsoluteX, 7, false, true),
	0x5f: def(SRE, AbsoluteX, 7, false, false),

	0x60: def(RTS, Implied, 6, false, true),
	0x61: def(ADC, IndirectX, 6, false, true),
	0x62: def(KIL, Implied, 2, false, false),
	0x63: def(RRA, IndirectX, 8, false, false),
	0x64: def(NOP, ZeroPage, 3, false, false),
	0x65: def(ADC, ZeroPage, 3, false, true),
	0x66: def(ROR, ZeroPage, 5, false, true),
	0x67: def(RRA, ZeroPage, 5, false, false),
	0x68: def(PLA, Implied, 4, false, true),
	0x69: def(ADC, Immediate, 2, false, true),
	0x6a: def(ROR, Accumulator, 2, false, true),
	0x6b: def(ARR, Immediate, 2, false, false),
	0x6c: def(JMP, Indirect, 5, false, true),
	0x6d: def(ADC, Absolute, 4, false, true),
	0x6e: def(ROR, Absolute, 6, false, true),
	0x6f: def(RRA, Absolute, 6, false, false),

	0x70: def(BVS, Relative, 2, true, true),
	0x71: def(ADC, IndirectY, 5, true, true),
	0x72: def(KIL, Implied, 2, false, false),
	0x73: def(RRA, IndirectY, 8, false, false),
	0x74: def(NOP, ZeroPageX, 4, false, false),
	0x75: def(ADC, ZeroPageX, 4, false, true),
	0x76: def(ROR, ZeroPageX, 6, false, true),
	0x77: def(RRA, ZeroPageX, 6, false, false),
	0x78: def(SEI, Implied, 2, false, true),
	0x79: def(ADC, AbsoluteY, 4, true, true),
	0x7a: def(NOP, Implied, 2, false, false),
	0x7b: def(RRA, AbsoluteY, 7, false, false),
	0x7c: def(NOP, AbsoluteX, 4, true, false),
	0x7d: def(ADC, AbsoluteX, 4, true, true),
	0x7e: def(ROR, AbsoluteX, 7, false, true),
	0x7f: def(RRA, AbsoluteX, 7, false, false),

	0x80: def(NOP, Immediate, 2, false, false),
	0x81: def(STA, IndirectX, 6, false, true),
	0x82: def(NOP, Immediate, 2, false, false),
	0x83: def(SAX, IndirectX, 6, false, false),
	0x84: def(STY, ZeroPage, 3, false, true),
	0x85: def(STA, ZeroPage, 3, false, true),
	0x86: def(STX, ZeroPage, 3, false, true),
	0x87: def(SAX, ZeroPage, 3, false, false),
	0x88: def(DEY, Implied, 2, false, true),
	0x89: def(NOP, Immediate, 2, false, false),
	0x8a: def(TXA, Implied, 2, false, true),
	0x8b: def(XAA, Immediate, 2, false, false),
	0x8c: def(STY, Absolute, 4, false, true),
	0x8d: def(STA, Absolute, 4, false, true),
	0x8e: def(STX, Absolute, 4, false, true),
	0x8f: def(SAX, Absolute, 4, false, false),

	0x90: def(BCC, Relative, 2, true, true),
	0x91: def(STA, IndirectY, 6, false, true),
	0x92: def(KIL, Implied, 2, false, false),
	0x93: def(AHX, IndirectY, 6, false, false),
	0x94: def(STY, ZeroPageX, 4, false, true),
	0x95: def(STA, ZeroPageX, 4, false, true),
	0x96: def(STX, ZeroPageY, 4, false, true),
	0x97: def(SAX, ZeroPageY, 4, false, false),
	0x98: def(TYA, Implied, 2, false, true),
	0x99: def(STA, AbsoluteY, 5, false, true),
	0x9a: def(TXS, Implied, 2, false, true),
	0x9b: def(TAS, AbsoluteY, 5, false, false),
	0x9c: def(SHY, AbsoluteX, 5, false, false),
	0x9d: def(STA, AbsoluteX, 5, false, true),
	0x9e: def(SHX, AbsoluteY, 5, false, false),
	0x9f: def(AHX, AbsoluteY, 5, false, false),

	0xa0: def(LDY, Immediate, 2, false, true),
	0xa1: def(LDA, IndirectX, 6, false, true),
	0xa2: def(LDX, Immediate, 2, false, true),
	0xa3: def(LAX, IndirectX, 6, false, false),
	0xa4: def(LDY, ZeroPage, 3, false, true),
	0xa5: def(LDA, ZeroPage, 3, false, true),
	0xa6: def(LDX, ZeroPage, 3, false, true),
	0xa7: def(LAX, ZeroPage, 3, false, false),
	0xa8: def(TAY, Implied, 2, false, true),
	0xa9: def(LDA, Immediate, 2, false, true),
	0xaa: def(TAX, Implied, 2, false, true),
	0xab: def(LAX, Immediate, 2, false, false),
	0xac: def(LDY, Absolute, 4, false, true),
	0xad: def(LDA, Absolute, 4, false, true),
	0xae: def(LDX, Absolute, 4, false, true),
	0xaf: def(LAX, Absolute, 4, false, false),

	0xb0: def(BCS, Relative, 2, true, true),
	0xb1: def(LDA, IndirectY, 5, true, true),
	0xb2: def(KIL, Implied, 2, false, false),
	0xb3: def(LAX, IndirectY, 5, true, false),
	0xb4: def(LDY, ZeroPageX, 4, false, true),
	0xb5: def(LDA, ZeroPageX, 4, false, true),
	0xb6: def(LDX, ZeroPageY, 4, false, true),
	0xb7: def(LAX, ZeroPageY, 4, false, false),
	0xb8: def(CLV, Implied, 2, false, true),
	0xb9: def(LDA, AbsoluteY, 4, true, true),
	0xba: def(TSX, Implied, 2, false, true),
	0xbb: def(LAS, AbsoluteY, 4, true, false),
	0xbc: def(LDY, AbsoluteX, 4, true, true),
	0xbd: def(LDA, AbsoluteX, 4, true, true),
	0xbe: def(LDX, AbsoluteY, 4, true, true),
	0xbf: def(LAX, AbsoluteY, 4, true, false),

	0xc0: def(CPY, Immediate, 2, false, true),
	0xc1: def(CMP, IndirectX, 6, false, true),
	0xc2: def(NOP, Immediate, 2, false, false),
	0xc3: def(DCP, IndirectX, 8, false, false),
	0xc4: def(CPY, ZeroPage, 3, false, true),
	0xc5: def(CMP, ZeroPage, 3, false, true),
	0xc6: def(DEC, ZeroPage, 5, false, true),
	0xc7: def(DCP, ZeroPage, 5, false, false),
	0xc8: def(INY, Implied, 2, false, true),
	0xc9: def(CMP, Immediate, 2, false, true),
	0xca: def(DEX, Implied, 2, false, true),
	0xcb: def(AXS, Immediate, 2, false, false),
	0xcc: def(CPY, Absolute, 4, false, true),
	0xcd: def(CMP, Absolute, 4, false, true),
	0xce: def(DEC, Absolute, 6, false, true),
	0xcf: def(DCP, Absolute, 6, false, false),

	0xd0: def(BNE, Relative, 2, true, true),
	0xd1: def(CMP, IndirectY, 5, true, true),
	0xd2: def(KIL, Implied, 2, false, false),
	0xd3: def(DCP, IndirectY, 8, false, false),
	0xd4: def(NOP, ZeroPageX, 4, false, false),
	0xd5: def(CMP, ZeroPageX, 4, false, true),
	0xd6: def(DEC, ZeroPageX, 6, false, true),
	0xd7: def(DCP, ZeroPageX, 6, false, false),
	0xd8: def(CLD, Implied, 2, false, true),
	0xd9: def(CMP, AbsoluteY, 4, true, true),
	0xda: def(NOP, Implied, 2, false, false),
	0xdb: def(DCP, AbsoluteY, 7, false, false),
	0xdc: def(NOP, AbsoluteX, 4, true, false),
	0xdd: def(CMP, AbsoluteX, 4, true, true),
	0xde: def(DEC, AbsoluteX, 7, false, true),
	0xdf: def(DCP, AbsoluteX, 7, false, false),

	0xe0: def(CPX, Immediate, 2, false, true),
	0xe1: def(SBC, IndirectX, 6, false, true),
	0xe2: def(NOP, Immediate, 2, false, false),
	0xe3: def(ISC, IndirectX, 8, false, false),
	0xe4: def(CPX, ZeroPage, 3, false, true),
	0xe5: def(SBC, ZeroPage, 3, false, true),
	0xe6: def(INC, ZeroPage, 5, false, true),
	0xe7: def(ISC, ZeroPage, 5, false, false),
	0xe8: def(INX, Implied, 2, false, true),
	0xe9: def(SBC, Immediate, 2, false, true),
	0xea: def(NOP, Implied, 2, false, true),
	0xeb: def(SBC, Immediate, 2, false, false),
	0xec: def(CPX, Absolute, 4, false, true),
	0xed: def(SBC, Absolute, 4, false, true),
	0xee: def(INC, Absolute, 6, false, true),
	0xef: def(ISC, Absolute, 6, false, false),

	0xf0: def(BEQ, Relative, 2, true, true),
	0xf1: def(SBC, IndirectY, 5, true, true),
	0xf2: def(KIL, Implied, 2, false, false),
	0xf3: def(ISC, IndirectY, 8, false, false),
	0xf4: def(NOP, ZeroPageX, 4, false, false),
	0xf5: def(SBC, ZeroPageX, 4, false, true),
	0xf6: def(INC, ZeroPageX, 6, false, true),
	0xf7: def(ISC, ZeroPageX, 6, false, false),
	0xf8: def(SED, Implied, 2, false, true),
	0xf9: def(SBC, AbsoluteY, 4, true, true),
	0xfa: def(NOP, Implied, 2, false, false),
	0xfb: def(ISC, AbsoluteY, 7, false, false),
	0xfc: def(NOP, AbsoluteX, 4, true, false),
	0xfd: def(SBC, AbsoluteX, 4, true, true),
	0xfe: def(INC, AbsoluteX, 7, false, true),
	0xff: def(ISC, AbsoluteX, 7, false, false),
}
