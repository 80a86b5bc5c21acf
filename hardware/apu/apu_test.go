package apu

import (
	"math"
	"testing"
)

type fakeMemory struct {
	mem [0x10000]uint8
}

func (m *fakeMemory) Read(addr uint16) uint8        { return m.mem[addr] }
func (m *fakeMemory) Write(addr uint16, data uint8) { m.mem[addr] = data }

func newTestAPU() (*APU, *fakeMemory) {
	mem := &fakeMemory{}
	a := New(mem, nil)
	a.PowerOn()
	return a, mem
}

func TestFourStepFrameSequencerFiresIRQAtCycle29830(t *testing.T) {
	a, _ := newTestAPU()
	a.writeFrameCounter(0x00) // 4-step mode, IRQ enabled

	for i := 0; i < 29829; i++ {
		a.stepFrameSequencer()
		if a.frameIRQFlag {
			t.Fatalf("frame IRQ set early, at frameCycle=%d", a.frameCycle)
		}
	}
	a.stepFrameSequencer()
	if !a.frameIRQFlag {
		t.Fatalf("frame IRQ not set at cycle 29830 in 4-step mode")
	}
}

func TestFiveStepFrameSequencerNeverSetsIRQ(t *testing.T) {
	a, _ := newTestAPU()
	a.writeFrameCounter(0x80) // 5-step mode

	for i := 0; i < 40000; i++ {
		a.stepFrameSequencer()
	}
	if a.frameIRQFlag {
		t.Fatalf("5-step mode set the frame IRQ flag, want never")
	}
}

func TestWriteFrameCounterFiveStepClocksImmediately(t *testing.T) {
	a, _ := newTestAPU()
	a.pulse1.length = 5
	a.pulse1.halt = false

	a.writeFrameCounter(0x80)
	if a.pulse1.length != 4 {
		t.Fatalf("pulse1 length = %d, want 4 (5-step write clocks length immediately)", a.pulse1.length)
	}
}

func TestReadStatusClearsFrameIRQFlag(t *testing.T) {
	a, _ := newTestAPU()
	a.frameIRQFlag = true
	v := a.ReadStatus()
	if v&0x40 == 0 {
		t.Fatalf("ReadStatus did not report the frame IRQ bit before clearing it")
	}
	if a.frameIRQFlag {
		t.Fatalf("ReadStatus did not clear the frame IRQ flag")
	}
}

func TestPulseMutedBelowTimerPeriodEight(t *testing.T) {
	a, _ := newTestAPU()
	a.writePulseControl(&a.pulse1, 0x1f) // constant volume 15, no halt
	a.pulse1.length = 10
	a.pulse1.timerPeriod = 4
	a.pulse1.sequencerPos = 1 // duty 0 index 1 is "on" in the table

	if out := a.pulseOutput(&a.pulse1); out != 0 {
		t.Fatalf("pulse output = %d, want 0 (timer period below 8 mutes the channel)", out)
	}
}

func TestPulseZeroLengthIsSilent(t *testing.T) {
	a, _ := newTestAPU()
	a.writePulseControl(&a.pulse1, 0x1f)
	a.pulse1.length = 0
	a.pulse1.timerPeriod = 100
	a.pulse1.sequencerPos = 1

	if out := a.pulseOutput(&a.pulse1); out != 0 {
		t.Fatalf("pulse output = %d, want 0 (zero length counter silences the channel)", out)
	}
}

func TestPulseSweepNegateSubtractsExtraOneOnPulse1Only(t *testing.T) {
	a1, _ := newTestAPU()
	a1.pulse1.timerPeriod = 100
	a1.pulse1.sweepEnable = true
	a1.pulse1.sweepShift = 1
	a1.pulse1.sweepNegate = true
	a1.pulse1.sweepCounter = 0
	a1.clockSweep(&a1.pulse1, true)
	if a1.pulse1.timerPeriod != 100-50-1 {
		t.Fatalf("pulse1 negated sweep result = %d, want %d (one's-complement -1 quirk)", a1.pulse1.timerPeriod, 100-50-1)
	}

	a2, _ := newTestAPU()
	a2.pulse2.timerPeriod = 100
	a2.pulse2.sweepEnable = true
	a2.pulse2.sweepShift = 1
	a2.pulse2.sweepNegate = true
	a2.pulse2.sweepCounter = 0
	a2.clockSweep(&a2.pulse2, false)
	if a2.pulse2.timerPeriod != 100-50 {
		t.Fatalf("pulse2 negated sweep result = %d, want %d (plain two's-complement, no -1 quirk)", a2.pulse2.timerPeriod, 100-50)
	}
}

func TestTriangleSilencedByUltrasonicPeriod(t *testing.T) {
	a, _ := newTestAPU()
	a.triangle.length = 5
	a.triangle.linearValue = 5
	a.triangle.timerPeriod = 1
	a.triangle.sequencerPos = 3

	if out := a.triangleOutput(); out != 0 {
		t.Fatalf("triangle output = %d, want 0 (ultrasonic period below 2 is silenced)", out)
	}
}

func TestTriangleLinearCounterReloadAndDecay(t *testing.T) {
	a, _ := newTestAPU()
	a.writeTriangleControl(0x20) // haltLength=false, linearLoad=0x20
	a.triangle.linearReload = true

	a.clockTriangleLinear()
	if a.triangle.linearValue != 0x20 {
		t.Fatalf("linearValue after reload = %d, want 0x20", a.triangle.linearValue)
	}
	if a.triangle.linearReload {
		t.Fatalf("linearReload still set after a non-halting clock, want cleared")
	}

	a.clockTriangleLinear()
	if a.triangle.linearValue != 0x1f {
		t.Fatalf("linearValue after decay = %d, want 0x1f", a.triangle.linearValue)
	}
}

func TestNoiseModeShortUsesBitSixTap(t *testing.T) {
	a, _ := newTestAPU()
	a.noise.shift = 1
	a.noise.modeShort = true
	a.noise.periodIndex = 0
	a.noise.timerValue = 0

	a.stepNoiseTimer()
	// shift=1 (0b...0001): bit0=1, bit6=0, feedback = 1^0 = 1, new shift = (1>>1) | (1<<14)
	want := uint16(1)>>1 | 1<<14
	if a.noise.shift != want {
		t.Fatalf("noise shift = %#x, want %#x", a.noise.shift, want)
	}
}

func TestDMCSampleAddressWrapsAt0xffff(t *testing.T) {
	a, mem := newTestAPU()
	mem.mem[0xffff] = 0x55
	a.dmc.currentAddress = 0xffff
	a.dmc.bytesRemaining = 2
	a.dmc.loop = false

	a.fetchDMCByte()
	if a.dmc.currentAddress != 0x8000 {
		t.Fatalf("DMC address after wraparound = %#04x, want 0x8000", a.dmc.currentAddress)
	}
}

func TestDMCRestartsOnLoopWhenSampleExhausted(t *testing.T) {
	a, mem := newTestAPU()
	mem.mem[0xc000] = 0x00
	a.dmc.sampleAddress = 0xc000
	a.dmc.sampleLength = 1
	a.dmc.currentAddress = 0xc000
	a.dmc.bytesRemaining = 1
	a.dmc.loop = true

	a.fetchDMCByte()
	if a.dmc.bytesRemaining != a.dmc.sampleLength {
		t.Fatalf("looping DMC sample did not restart: bytesRemaining=%d, want %d", a.dmc.bytesRemaining, a.dmc.sampleLength)
	}
}

func TestDMCSetsIRQOnExhaustionWithoutLoop(t *testing.T) {
	a, mem := newTestAPU()
	mem.mem[0xc000] = 0x00
	a.dmc.currentAddress = 0xc000
	a.dmc.bytesRemaining = 1
	a.dmc.loop = false
	a.dmc.irqEnable = true

	a.fetchDMCByte()
	if !a.dmc.irqFlag {
		t.Fatalf("DMC did not raise its IRQ flag after exhausting a non-looping sample")
	}
}

func TestMixerZeroInputIsZeroOutput(t *testing.T) {
	if out := mix(0, 0, 0, 0, 0); out != 0 {
		t.Fatalf("mix(0,0,0,0,0) = %v, want 0", out)
	}
}

func TestMixerMaxInputsStayBelowUnity(t *testing.T) {
	out := mix(15, 15, 15, 15, 127)
	if out <= 0 || out > 1.01 {
		t.Fatalf("mix at near-maximum channel levels = %v, want roughly full scale", out)
	}
}

func TestClockEnvelopeStartReloadsDecay(t *testing.T) {
	e := &envelope{start: true}
	var a APU
	a.clockEnvelope(e, 5, false)
	if e.start {
		t.Fatalf("envelope start flag still set after clocking")
	}
	if e.decay != 15 || e.divider != 5 {
		t.Fatalf("envelope after start clock: decay=%d divider=%d, want decay=15 divider=5", e.decay, e.divider)
	}
}

func TestClockEnvelopeLoopsAtZero(t *testing.T) {
	e := &envelope{decay: 0, divider: 0}
	var a APU
	a.clockEnvelope(e, 0, true)
	if e.decay != 15 {
		t.Fatalf("envelope decay after looping clock = %d, want 15", e.decay)
	}
}

func TestSamplesDrainsAndResetsBuffer(t *testing.T) {
	a, _ := newTestAPU()
	a.samples = append(a.samples, 0.1, 0.2, 0.3)
	out := a.Samples()
	if len(out) != 3 {
		t.Fatalf("Samples() returned %d samples, want 3", len(out))
	}
	if len(a.samples) != 0 {
		t.Fatalf("internal sample buffer not drained after Samples()")
	}
}

func TestResampleProducesExpectedSampleCountForOneFrame(t *testing.T) {
	a, _ := newTestAPU()
	a.SetSampleRate(44100)
	const cpuCyclesPerFrame = 29780 // ~one NTSC frame at 1.789773 MHz / 60 Hz
	for i := 0; i < cpuCyclesPerFrame; i++ {
		a.Step()
	}
	n := len(a.samples)
	want := int(math.Round(44100.0 / 60.0))
	if n < want-5 || n > want+5 {
		t.Fatalf("produced %d samples for one frame's worth of cycles, want close to %d", n, want)
	}
}
