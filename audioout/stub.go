//go:build !portaudio
// +build !portaudio

package audioout

// Output is a no-op audio sink when built without the portaudio tag.
type Output struct{}

// Open is a no-op.
func (o *Output) Open() error { return nil }

// SampleRate returns 0 when no audio device is available.
func (o *Output) SampleRate() int { return 0 }

// Push discards samples.
func (o *Output) Push(samples []float32) {}

// Close is a no-op.
func (o *Output) Close() {}

// Available reports false when built without the portaudio tag.
func Available() bool { return false }
