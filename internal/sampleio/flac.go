package sampleio

import (
	"fmt"
	"io"
	"os"

	"github.com/termdaw/engine/internal/engine"
	"github.com/tphakala/flac"
)

// loadFLAC decodes a FLAC file frame by frame, interleaving each frame's
// per-channel subframes and normalizing by the stream's bit depth.
func loadFLAC(path string) (*engine.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sampleio: open %q: %w", path, err)
	}
	defer file.Close()

	stream, err := flac.New(file)
	if err != nil {
		return nil, fmt.Errorf("sampleio: flac decode %q: %w", path, err)
	}

	channels := int(stream.Info.NChannels)
	divisor := float32(int64(1) << (stream.Info.BitsPerSample - 1))

	var frames []float32
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sampleio: flac decode %q: %w", path, err)
		}
		if len(frame.Subframes) == 0 {
			continue
		}
		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			for ch := 0; ch < channels; ch++ {
				frames = append(frames, float32(frame.Subframes[ch].Samples[i])/divisor)
			}
		}
	}

	return &engine.Sample{
		Frames:     frames,
		SourceRate: float64(stream.Info.SampleRate),
		Channels:   channels,
	}, nil
}
