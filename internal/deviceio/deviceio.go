// Package deviceio opens the real-time audio output device and drives
// the engine's block callback from PortAudio's stream thread.
package deviceio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// BlockFunc renders one block of interleaved output. It must never
// block or allocate: it runs on PortAudio's real-time thread.
type BlockFunc func(data []float32, numFrames, channels int)

// Stream owns an open PortAudio output stream.
type Stream struct {
	stream   *portaudio.Stream
	channels int
	render   BlockFunc
}

// Open initializes PortAudio and opens the default output device at the
// given sample rate and channel count, framesPerBuffer frames per
// callback (0 lets PortAudio choose). render is invoked once per block.
func Open(sampleRate float64, channels, framesPerBuffer int, render BlockFunc) (*Stream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("deviceio: initialize portaudio: %w", err)
	}

	s := &Stream{channels: channels, render: render}

	stream, err := portaudio.OpenDefaultStream(0, channels, sampleRate, framesPerBuffer, s.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("deviceio: open output stream: %w", err)
	}
	s.stream = stream
	return s, nil
}

func (s *Stream) callback(out []float32) {
	numFrames := len(out) / s.channels
	s.render(out, numFrames, s.channels)
}

// Start begins playback.
func (s *Stream) Start() error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("deviceio: start stream: %w", err)
	}
	return nil
}

// Stop halts playback without closing the device.
func (s *Stream) Stop() error {
	if err := s.stream.Stop(); err != nil {
		return fmt.Errorf("deviceio: stop stream: %w", err)
	}
	return nil
}

// Close stops and releases the stream and terminates PortAudio.
func (s *Stream) Close() error {
	err := s.stream.Close()
	portaudio.Terminate()
	if err != nil {
		return fmt.Errorf("deviceio: close stream: %w", err)
	}
	return nil
}

// SampleRate reports the stream's actual negotiated sample rate.
func (s *Stream) SampleRate() float64 {
	return s.stream.Info().SampleRate
}
