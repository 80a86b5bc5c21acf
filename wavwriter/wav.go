// Package wavwriter writes a console's audio output to disk as a WAV
// file. Samples are buffered in memory in their entirety and written out
// on EndMixing, so it is suitable for short capture sessions, not
// continuous recording.
package wavwriter

import (
	"os"

	"github.com/tone-malone/nes-emu/curated"
	"github.com/tone-malone/nes-emu/logger"
	"github.com/youpy/go-wav"
)

// WavWriter accumulates mono audio samples and flushes them to a .wav
// file on EndMixing.
type WavWriter struct {
	filename   string
	sampleRate uint32
	buffer     []wav.Sample
}

// New returns a WavWriter that will write to filename at sampleRate once
// EndMixing is called.
func New(filename string, sampleRate uint32) *WavWriter {
	return &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
		buffer:     make([]wav.Sample, 0),
	}
}

// WriteSamples appends audio samples produced by an APU (mixed, in the
// 0.0-~1.0 range) to the in-memory buffer as 16-bit mono PCM.
func (w *WavWriter) WriteSamples(samples []float32) {
	for _, s := range samples {
		v := int16(s * 32767)
		sample := wav.Sample{}
		sample.Values[0] = int(v)
		sample.Values[1] = int(v)
		w.buffer = append(w.buffer, sample)
	}
}

// EndMixing writes the buffered samples to disk as a WAV file.
func (w *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(w.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(w.buffer)), 1, w.sampleRate, 16)
	if enc == nil {
		return curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	logger.Logf(logger.Allow, "wavwriter", "writing %d samples to %s", len(w.buffer), w.filename)
	return enc.WriteSamples(w.buffer)
}
