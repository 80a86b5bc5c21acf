// Package apu implements the NES 2A03's five-channel audio unit: two pulse
// channels, a triangle channel, a noise channel and a delta-modulation
// (DMC) sample channel, driven by a shared frame sequencer and mixed
// through the NES's non-linear mixer formula.
package apu

import "github.com/tone-malone/nes-emu/hardware/memory/cpubus"

// APU is one 2A03 audio core. Step must be called once per CPU cycle;
// pulse, noise and DMC timers internally run at half that rate (one "APU
// cycle" every two CPU cycles), while the triangle timer runs at the full
// CPU rate, matching real hardware.
type APU struct {
	mem cpubus.Memory

	pulse1   pulseChannel
	pulse2   pulseChannel
	triangle triangleChannel
	noise    noiseChannel
	dmc      dmcChannel

	frameCycle     uint16
	fiveStepMode   bool
	frameIRQEnable bool
	frameIRQFlag   bool

	enabled [5]bool

	halfCycle bool

	cpuFrequency     float64
	sampleRate       float64
	cycleAccumulator float64
	samples          []float32

	// stall is called when a DMC sample fetch steals CPU cycles.
	stall func(cycles int)
}

// New returns an APU bound to mem, the CPU bus it fetches DMC samples
// from. stall is called to account for the CPU cycles a DMC fetch steals;
// it may be nil in contexts that don't model CPU stalling (e.g. tests).
func New(mem cpubus.Memory, stall func(cycles int)) *APU {
	a := &APU{
		mem:            mem,
		stall:          stall,
		cpuFrequency:   1789773.0,
		sampleRate:     44100.0,
		frameIRQEnable: true,
		samples:        make([]float32, 0, 4096),
	}
	a.noise.shift = 1
	return a
}

// PowerOn resets every channel and the frame sequencer to their documented
// power-on state.
func (a *APU) PowerOn() {
	a.pulse1 = pulseChannel{}
	a.pulse2 = pulseChannel{}
	a.triangle = triangleChannel{}
	a.noise = noiseChannel{shift: 1}
	a.dmc = dmcChannel{}
	a.frameCycle = 0
	a.fiveStepMode = false
	a.frameIRQEnable = true
	a.frameIRQFlag = false
	a.halfCycle = false
	a.cycleAccumulator = 0
	a.samples = a.samples[:0]
	for i := range a.enabled {
		a.enabled[i] = false
	}
}

// SetMemory binds the CPU bus the DMC channel fetches samples from. It
// exists because the bus and the APU are constructed with a reference
// cycle between them: the bus needs the APU built first, so the APU is
// built with mem unset and wired up immediately after.
func (a *APU) SetMemory(mem cpubus.Memory) { a.mem = mem }

// SetSampleRate changes the output sample rate (e.g. to match a host audio
// device); it resets the resampler's fractional accumulator.
func (a *APU) SetSampleRate(rate int) {
	a.sampleRate = float64(rate)
	a.cycleAccumulator = 0
}

// IRQ reports the combined frame-sequencer and DMC IRQ line level.
func (a *APU) IRQ() bool { return a.frameIRQFlag || a.dmc.irqFlag }

// Step advances the APU by one CPU cycle, clocking the frame sequencer,
// every channel timer due to fire, and the CPU-rate-to-audio-rate
// resampler.
func (a *APU) Step() {
	a.stepFrameSequencer()

	a.stepTriangleTimer()
	if a.halfCycle {
		a.stepPulseTimer(&a.pulse1)
		a.stepPulseTimer(&a.pulse2)
		a.stepNoiseTimer()
		a.stepDMCTimer()
	}
	a.halfCycle = !a.halfCycle

	a.resample()
}

// resample accumulates fractional CPU cycles until a full output sample
// period has elapsed, then mixes and appends one sample.
func (a *APU) resample() {
	a.cycleAccumulator += a.sampleRate / a.cpuFrequency
	if a.cycleAccumulator < 1.0 {
		return
	}
	a.cycleAccumulator -= 1.0

	sample := mix(
		a.pulseOutput(&a.pulse1),
		a.pulseOutput(&a.pulse2),
		a.triangleOutput(),
		a.noiseOutput(),
		a.dmc.output,
	)
	a.samples = append(a.samples, sample)
}

// Samples drains and returns every sample produced since the last call.
func (a *APU) Samples() []float32 {
	out := make([]float32, len(a.samples))
	copy(out, a.samples)
	a.samples = a.samples[:0]
	return out
}

// stepFrameSequencer clocks the envelope/linear-counter units on every
// quarter frame and the length-counter/sweep units on every half frame,
// following the NTSC 4-step or 5-step cadence selected by $4017.
func (a *APU) stepFrameSequencer() {
	a.frameCycle++

	if a.fiveStepMode {
		switch a.frameCycle {
		case 7457, 22371:
			a.clockQuarterFrame()
		case 14913, 37281:
			a.clockQuarterFrame()
			a.clockHalfFrame()
		case 37282:
			a.frameCycle = 0
		}
		return
	}

	switch a.frameCycle {
	case 7457, 22371:
		a.clockQuarterFrame()
	case 14913:
		a.clockQuarterFrame()
		a.clockHalfFrame()
	case 29829:
		a.clockQuarterFrame()
		a.clockHalfFrame()
	case 29830:
		if a.frameIRQEnable {
			a.frameIRQFlag = true
		}
		a.frameCycle = 0
	}
}

func (a *APU) clockQuarterFrame() {
	a.clockEnvelope(&a.pulse1.envelope, a.pulse1.volume, a.pulse1.halt)
	a.clockEnvelope(&a.pulse2.envelope, a.pulse2.volume, a.pulse2.halt)
	a.clockEnvelope(&a.noise.envelope, a.noise.volume, a.noise.halt)
	a.clockTriangleLinear()
}

func (a *APU) clockHalfFrame() {
	a.clockLength(&a.pulse1.length, a.pulse1.halt)
	a.clockLength(&a.pulse2.length, a.pulse2.halt)
	a.clockLength(&a.triangle.length, a.triangle.haltLength)
	a.clockLength(&a.noise.length, a.noise.halt)
	a.clockSweep(&a.pulse1, true)
	a.clockSweep(&a.pulse2, false)
}

// WriteRegister dispatches a CPU write to $4000-$4013, $4015 or $4017.
func (a *APU) WriteRegister(addr uint16, v uint8) {
	switch addr {
	case 0x4000:
		a.writePulseControl(&a.pulse1, v)
	case 0x4001:
		a.writePulseSweep(&a.pulse1, v)
	case 0x4002:
		a.writePulseTimerLow(&a.pulse1, v)
	case 0x4003:
		a.writePulseTimerHigh(&a.pulse1, v)
	case 0x4004:
		a.writePulseControl(&a.pulse2, v)
	case 0x4005:
		a.writePulseSweep(&a.pulse2, v)
	case 0x4006:
		a.writePulseTimerLow(&a.pulse2, v)
	case 0x4007:
		a.writePulseTimerHigh(&a.pulse2, v)
	case 0x4008:
		a.writeTriangleControl(v)
	case 0x400a:
		a.writeTriangleTimerLow(v)
	case 0x400b:
		a.writeTriangleTimerHigh(v)
	case 0x400c:
		a.writeNoiseControl(v)
	case 0x400e:
		a.writeNoisePeriod(v)
	case 0x400f:
		a.writeNoiseLength(v)
	case 0x4010:
		a.writeDMCControl(v)
	case 0x4011:
		a.dmc.directLoad(v)
	case 0x4012:
		a.writeDMCSampleAddress(v)
	case 0x4013:
		a.writeDMCSampleLength(v)
	case cpubus.APUStatus:
		a.writeChannelEnable(v)
	case cpubus.FrameCounter:
		a.writeFrameCounter(v)
	}
}

// ReadStatus services a CPU read of $4015: each channel's nonzero-length
// bit, plus the frame and DMC IRQ flags. Reading clears both the frame
// IRQ and DMC IRQ flags, matching real hardware.
func (a *APU) ReadStatus() uint8 {
	var v uint8
	if a.pulse1.length > 0 {
		v |= 0x01
	}
	if a.pulse2.length > 0 {
		v |= 0x02
	}
	if a.triangle.length > 0 {
		v |= 0x04
	}
	if a.noise.length > 0 {
		v |= 0x08
	}
	if a.dmc.bytesRemaining > 0 {
		v |= 0x10
	}
	if a.frameIRQFlag {
		v |= 0x40
	}
	if a.dmc.irqFlag {
		v |= 0x80
	}
	a.frameIRQFlag = false
	a.dmc.irqFlag = false
	return v
}

func (a *APU) writeChannelEnable(v uint8) {
	a.enabled[0] = v&0x01 != 0
	a.enabled[1] = v&0x02 != 0
	a.enabled[2] = v&0x04 != 0
	a.enabled[3] = v&0x08 != 0
	a.enabled[4] = v&0x10 != 0

	if !a.enabled[0] {
		a.pulse1.length = 0
	}
	if !a.enabled[1] {
		a.pulse2.length = 0
	}
	if !a.enabled[2] {
		a.triangle.length = 0
	}
	if !a.enabled[3] {
		a.noise.length = 0
	}
	if !a.enabled[4] {
		a.dmc.bytesRemaining = 0
	} else if a.dmc.bytesRemaining == 0 {
		a.dmc.restart()
	}
	a.dmc.irqFlag = false
}

func (a *APU) writeFrameCounter(v uint8) {
	a.fiveStepMode = v&0x80 != 0
	a.frameIRQEnable = v&0x40 == 0
	if !a.frameIRQEnable {
		a.frameIRQFlag = false
	}
	a.frameCycle = 0
	if a.fiveStepMode {
		a.clockQuarterFrame()
		a.clockHalfFrame()
	}
}

var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6,
	160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 8, 48, 6, 96, 4,
	192, 2, 72, 16, 28, 32, 52, 2,
}

type envelope struct {
	start   bool
	divider uint8
	decay   uint8
}

func (a *APU) clockEnvelope(e *envelope, period uint8, loop bool) {
	if e.start {
		e.start = false
		e.decay = 15
		e.divider = period
		return
	}
	if e.divider == 0 {
		e.divider = period
		if e.decay > 0 {
			e.decay--
		} else if loop {
			e.decay = 15
		}
	} else {
		e.divider--
	}
}

func (e *envelope) output(period uint8, constant bool) uint8 {
	if constant {
		return period
	}
	return e.decay
}

func (a *APU) clockLength(length *uint8, halt bool) {
	if !halt && *length > 0 {
		*length--
	}
}
