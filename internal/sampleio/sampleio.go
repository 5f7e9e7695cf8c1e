// Package sampleio decodes sample files from disk into the interleaved
// f32 PCM payload the engine plays back, dispatching on file extension
// across the project's four supported container formats.
package sampleio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/termdaw/engine/internal/engine"
)

// Load decodes path into a Sample, dispatching on its extension. It is
// the engine.SampleLoader the control thread wires into engine.New.
func Load(path string) (*engine.Sample, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return loadWAV(path)
	case ".mp3":
		return loadMP3(path)
	case ".flac":
		return loadFLAC(path)
	case ".ogg":
		return loadOggVorbis(path)
	default:
		return nil, fmt.Errorf("sampleio: unsupported sample format %q", path)
	}
}
