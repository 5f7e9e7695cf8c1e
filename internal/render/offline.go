package render

import (
	"github.com/termdaw/engine/internal/engine"
)

// Config fixes the timing grid an offline render steps through.
type Config struct {
	SampleRate  float64
	BPM         float64
	StepsPerBar int
}

// DefaultConfig matches the project's default tempo and grid resolution.
func DefaultConfig() Config {
	return Config{SampleRate: 44100, BPM: 140.0, StepsPerBar: 16}
}

// blockSize is the chunk size the offline renderer advances the engine
// by within a step; it has no bearing on correctness, only on how often
// output is appended, and matches the real-time block size so the two
// paths exercise identical code.
const blockSize = 512

// Render drives state through the full arrangement, triggering pattern
// steps on sampler and plugin channels as their grid dictates, and
// returns the rendered interleaved stereo output. state must already
// have its mixer snapshot, generator routing, and effects installed
// (via its Handle) before Render is called; Render only ever sends
// PlaySample/PluginNoteOn/PluginNoteOff.
//
// Render is deterministic: the same channels/patterns/arrangement/config
// produce byte-identical output on every call, since it drives the
// engine's mutex-protected pipeline synchronously with no real-time
// contention and no other goroutine ever touches state concurrently.
func Render(state *engine.AudioState, channels []Channel, patterns []Pattern, arrangement Arrangement, cfg Config) []float32 {
	if len(arrangement.Placements) == 0 {
		return nil
	}

	handle := engine.NewHandle(state)

	totalBars := arrangement.LastBar()
	totalSteps := totalBars * cfg.StepsPerBar

	samplesPerBeat := int((60.0 / cfg.BPM) * cfg.SampleRate)
	beatsPerStep := 4.0 / float64(cfg.StepsPerBar)
	samplesPerStep := int(float64(samplesPerBeat) * beatsPerStep)

	var output []float32
	for step := 0; step < totalSteps; step++ {
		bar := step / cfg.StepsPerBar
		stepInBar := step % cfg.StepsPerBar

		triggerStep(handle, channels, patterns, arrangement, bar, stepInBar)

		remaining := samplesPerStep
		for remaining > 0 {
			frames := blockSize
			if remaining < frames {
				frames = remaining
			}
			chunk := make([]float32, frames*2)
			state.ProcessBlock(chunk, frames, 2)
			output = append(output, chunk...)
			remaining -= frames
		}
	}

	return output
}

func triggerStep(handle *engine.Handle, channels []Channel, patterns []Pattern, arrangement Arrangement, bar, step int) {
	for _, placement := range arrangement.ActiveAtBar(bar) {
		pattern, ok := findPattern(patterns, placement.PatternID)
		if !ok {
			continue
		}
		triggerPatternStep(handle, channels, pattern, step)
	}
}

func triggerPatternStep(handle *engine.Handle, channels []Channel, pattern Pattern, step int) {
	for idx, ch := range channels {
		slice := ch.Patterns[pattern.ID]
		if slice == nil {
			continue
		}
		switch ch.Source.Kind {
		case SourceSampler:
			if step < len(slice.Steps) && slice.Steps[step] && ch.Source.SamplePath != "" {
				handle.PlaySample(ch.Source.SamplePath, 1.0, idx)
			}
		case SourcePlugin:
			for _, note := range slice.Notes {
				if note.StartStep == step {
					handle.PluginNoteOn(idx, note.Pitch, note.Velocity)
				}
				if note.StartStep+note.Duration == step {
					handle.PluginNoteOff(idx, note.Pitch)
				}
			}
		}
	}
}
