package input_test

import (
	"testing"

	"github.com/tone-malone/nes-emu/hardware/input"
)

func TestStrobeHighAlwaysReadsButtonA(t *testing.T) {
	c := &input.Controller{}
	c.SetState(input.ButtonA | input.ButtonB)
	c.Write(0x01) // strobe high

	for i := 0; i < 3; i++ {
		if got := c.Read() & 0x01; got != 1 {
			t.Fatalf("read %d while strobed = %d, want 1 (button A held)", i, got)
		}
	}
}

func TestStrobeFallingEdgeLatchesForSerialShiftOut(t *testing.T) {
	c := &input.Controller{}
	c.SetState(input.ButtonA | input.ButtonSelect)
	c.Write(0x01)
	c.Write(0x00) // falling edge: latch for serial read-out

	want := []uint8{1, 0, 1, 0, 0, 0, 0, 0}
	for i, w := range want {
		if got := c.Read() & 0x01; got != w {
			t.Fatalf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestReadPastEighthBitShiftsInOnes(t *testing.T) {
	c := &input.Controller{}
	c.SetState(0)
	c.Write(0x01)
	c.Write(0x00)

	for i := 0; i < 8; i++ {
		c.Read()
	}
	if got := c.Read() & 0x01; got != 1 {
		t.Fatalf("9th read = %d, want 1 (real hardware shifts in open-bus 1s)", got)
	}
}

func TestReadSetsBitSixUnconditionally(t *testing.T) {
	c := &input.Controller{}
	c.SetState(0)
	if got := c.Read() & 0x40; got == 0 {
		t.Fatalf("bit 6 clear, want always set")
	}
}
