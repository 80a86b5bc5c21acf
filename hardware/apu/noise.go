package apu

var noisePeriodTable = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160,
	202, 254, 380, 508, 762, 1016, 2034, 4068,
}

type noiseChannel struct {
	halt           bool
	constantVolume bool
	volume         uint8
	envelope       envelope

	modeShort   bool
	periodIndex uint8
	timerValue  uint16

	length uint8
	shift  uint16
}

func (a *APU) writeNoiseControl(v uint8) {
	a.noise.halt = v&0x20 != 0
	a.noise.constantVolume = v&0x10 != 0
	a.noise.volume = v & 0x0f
	a.noise.envelope.start = true
}

func (a *APU) writeNoisePeriod(v uint8) {
	a.noise.modeShort = v&0x80 != 0
	a.noise.periodIndex = v & 0x0f
}

func (a *APU) writeNoiseLength(v uint8) {
	a.noise.length = lengthTable[v>>3&0x1f]
	a.noise.envelope.start = true
}

func (a *APU) stepNoiseTimer() {
	n := &a.noise
	if n.timerValue == 0 {
		n.timerValue = noisePeriodTable[n.periodIndex]

		var tap uint16 = 1
		if n.modeShort {
			tap = 6
		}
		feedback := (n.shift ^ (n.shift >> tap)) & 0x0001
		n.shift = n.shift>>1 | feedback<<14
	} else {
		n.timerValue--
	}
}

func (a *APU) noiseOutput() uint8 {
	n := &a.noise
	if n.length == 0 || n.shift&0x0001 != 0 {
		return 0
	}
	return n.envelope.output(n.volume, n.constantVolume)
}
