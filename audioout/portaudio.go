//go:build portaudio
// +build portaudio

// Package audioout plays a console's APU samples through the host audio
// device via PortAudio.
package audioout

import (
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Output streams float32 samples fed via Push to the default output
// device, buffering whatever hasn't been played yet and filling with
// silence when the buffer underruns.
type Output struct {
	sampleRate int

	mu     sync.Mutex
	buffer []float32

	doOnce sync.Once
	stream *portaudio.Stream
}

// Open initializes PortAudio and starts streaming. Samples must be
// pushed with Push as the console produces them.
func (o *Output) Open() error {
	var openErr error
	o.doOnce.Do(func() {
		if err := portaudio.Initialize(); err != nil {
			openErr = err
			return
		}
		h, err := portaudio.DefaultHostApi()
		if err != nil {
			openErr = err
			return
		}
		p := portaudio.HighLatencyParameters(nil, h.DefaultOutputDevice)
		p.Output.Channels = 1
		o.stream, err = portaudio.OpenStream(p, o.process)
		if err != nil {
			openErr = err
			return
		}
		o.sampleRate = int(p.SampleRate)
		openErr = o.stream.Start()
	})
	return openErr
}

// SampleRate reports the device's negotiated output sample rate.
func (o *Output) SampleRate() int { return o.sampleRate }

// Push appends freshly produced samples to the playback buffer.
func (o *Output) Push(samples []float32) {
	o.mu.Lock()
	o.buffer = append(o.buffer, samples...)
	o.mu.Unlock()
}

func (o *Output) process(out []float32) {
	o.mu.Lock()
	defer o.mu.Unlock()

	n := len(out)
	if n > len(o.buffer) {
		n = len(o.buffer)
	}
	copy(out, o.buffer[:n])
	o.buffer = o.buffer[n:]
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

// Close stops the stream and terminates PortAudio.
func (o *Output) Close() {
	if o.stream != nil {
		o.stream.Close()
	}
	portaudio.Terminate()
}

// Available reports true when built with the portaudio tag.
func Available() bool { return true }
