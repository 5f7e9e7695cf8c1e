package render

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes interleaved stereo f32 samples (already clamped to
// [-1, 1] by the engine's device-write stage) to a 16-bit PCM WAV file.
func WriteWAV(path string, samples []float32, sampleRate int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %q: %w", path, err)
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, sampleRate, 16, 2, 1)

	ints := make([]int, len(samples))
	for i, s := range samples {
		ints[i] = int(s * 32767.0)
	}

	buf := &audio.IntBuffer{
		Data:   ints,
		Format: &audio.Format{SampleRate: sampleRate, NumChannels: 2},
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("render: write %q: %w", path, err)
	}
	return encoder.Close()
}
