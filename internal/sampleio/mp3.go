package sampleio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
	"github.com/termdaw/engine/internal/engine"
)

// loadMP3 decodes an MP3 file via go-mp3, which always produces 16-bit
// little-endian stereo PCM regardless of the source file's channel count.
func loadMP3(path string) (*engine.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sampleio: open %q: %w", path, err)
	}
	defer file.Close()

	decoder, err := mp3.NewDecoder(file)
	if err != nil {
		return nil, fmt.Errorf("sampleio: mp3 decode %q: %w", path, err)
	}

	const channels = 2
	buf := make([]byte, 4096)
	var pending []byte
	var frames []float32
	for {
		n, err := decoder.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			usable := len(pending) - len(pending)%2
			for i := 0; i+1 < usable; i += 2 {
				sample := int16(binary.LittleEndian.Uint16(pending[i : i+2]))
				frames = append(frames, float32(sample)/32768.0)
			}
			pending = pending[usable:]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sampleio: mp3 decode %q: %w", path, err)
		}
	}

	return &engine.Sample{
		Frames:     frames,
		SourceRate: float64(decoder.SampleRate()),
		Channels:   channels,
	}, nil
}
