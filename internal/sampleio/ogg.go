package sampleio

import (
	"fmt"
	"io"
	"os"

	"github.com/jfreymuth/oggvorbis"
	"github.com/termdaw/engine/internal/engine"
)

// loadOggVorbis decodes an OGG/Vorbis file, which the decoder already
// produces as interleaved float32 PCM in [-1, 1].
func loadOggVorbis(path string) (*engine.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sampleio: open %q: %w", path, err)
	}
	defer file.Close()

	reader, err := oggvorbis.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("sampleio: ogg decode %q: %w", path, err)
	}

	buf := make([]float32, 4096)
	var frames []float32
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			frames = append(frames, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sampleio: ogg decode %q: %w", path, err)
		}
	}

	return &engine.Sample{
		Frames:     frames,
		SourceRate: float64(reader.SampleRate()),
		Channels:   reader.Channels(),
	}, nil
}
