package cpu

// Status holds the 6502 processor status flags individually. The B (break)
// flag is deliberately not stored here - it never exists in the live
// register, only in the byte pushed to the stack by PHP/BRK (1) versus an
// interrupt (0). The U (unused) flag always reads back as 1.
type Status struct {
	Carry            bool
	Zero             bool
	InterruptDisable bool
	Decimal          bool
	Overflow         bool
	Negative         bool
}

const (
	flagCarry    = 1 << 0
	flagZero     = 1 << 1
	flagIRQDis   = 1 << 2
	flagDecimal  = 1 << 3
	flagBreak    = 1 << 4
	flagUnused   = 1 << 5
	flagOverflow = 1 << 6
	flagNegative = 1 << 7
)

// ToByte packs the flags into a status byte. brk selects the value of the
// B flag in the packed byte: true for PHP/BRK, false for a hardware
// interrupt push. The unused bit always reads as 1.
func (s Status) ToByte(brk bool) uint8 {
	var b uint8
	if s.Carry {
		b |= flagCarry
	}
	if s.Zero {
		b |= flagZero
	}
	if s.InterruptDisable {
		b |= flagIRQDis
	}
	if s.Decimal {
		b |= flagDecimal
	}
	if brk {
		b |= flagBreak
	}
	b |= flagUnused
	if s.Overflow {
		b |= flagOverflow
	}
	if s.Negative {
		b |= flagNegative
	}
	return b
}

// FromByte unpacks a status byte into the flags. The B flag is discarded;
// it is never part of the live register.
func (s *Status) FromByte(b uint8) {
	s.Carry = b&flagCarry != 0
	s.Zero = b&flagZero != 0
	s.InterruptDisable = b&flagIRQDis != 0
	s.Decimal = b&flagDecimal != 0
	s.Overflow = b&flagOverflow != 0
	s.Negative = b&flagNegative != 0
}

// setNZ sets Zero and Negative from the given result byte, as almost every
// load/transfer/arithmetic instruction does.
func (s *Status) setNZ(v uint8) {
	s.Zero = v == 0
	s.Negative = v&0x80 != 0
}
