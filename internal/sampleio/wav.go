package sampleio

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/termdaw/engine/internal/engine"
)

// loadWAV decodes a PCM WAV file into interleaved f32 samples, using the
// bit-depth-appropriate divisor to normalize into [-1, 1].
func loadWAV(path string) (*engine.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sampleio: open %q: %w", path, err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("sampleio: %q is not a valid WAV file", path)
	}

	var divisor float32
	switch decoder.BitDepth {
	case 8:
		divisor = 128.0
	case 16:
		divisor = 32768.0
	case 24:
		divisor = 8388608.0
	case 32:
		divisor = 2147483648.0
	default:
		return nil, fmt.Errorf("sampleio: %q has unsupported bit depth %d", path, decoder.BitDepth)
	}

	channels := int(decoder.NumChans)
	if channels < 1 {
		channels = 1
	}

	buf := &audio.IntBuffer{
		Data:   make([]int, 4096*channels),
		Format: &audio.Format{SampleRate: int(decoder.SampleRate), NumChannels: channels},
	}

	var frames []float32
	for {
		n, err := decoder.PCMBuffer(buf)
		if err != nil {
			return nil, fmt.Errorf("sampleio: decode %q: %w", path, err)
		}
		if n == 0 {
			break
		}
		for _, sample := range buf.Data[:n] {
			frames = append(frames, float32(sample)/divisor)
		}
	}

	return &engine.Sample{
		Frames:     frames,
		SourceRate: float64(decoder.SampleRate),
		Channels:   channels,
	}, nil
}
