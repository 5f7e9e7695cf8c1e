package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termdaw/engine/internal/effects"
	"github.com/termdaw/engine/internal/engine"
)

func toneLoader(numFrames int, freq, sampleRate float64) engine.SampleLoader {
	return func(path string) (*engine.Sample, error) {
		frames := make([]float32, numFrames)
		for i := range frames {
			frames[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / sampleRate))
		}
		return &engine.Sample{Frames: frames, SourceRate: sampleRate, Channels: 1}, nil
	}
}

func impulseLoader() engine.SampleLoader {
	return func(path string) (*engine.Sample, error) {
		return &engine.Sample{Frames: []float32{1.0}, SourceRate: 44100, Channels: 1}, nil
	}
}

func peakOf(buf []float32) float32 {
	p := float32(0)
	for _, v := range buf {
		if a := float32(math.Abs(float64(v))); a > p {
			p = a
		}
	}
	return p
}

func TestEmptyArrangementRendersNothing(t *testing.T) {
	state := engine.New(44100, 120, toneLoader(44100, 440, 44100))
	out := Render(state, nil, nil, Arrangement{}, DefaultConfig())
	require.Empty(t, out)
}

func TestOneBarPlacementRendersExpectedLength(t *testing.T) {
	state := engine.New(44100, 120, toneLoader(44100, 440, 44100))
	patterns := []Pattern{{ID: 0, Name: "Test", Length: 16}}
	arrangement := Arrangement{Placements: []Placement{{PatternID: 0, StartBar: 0, Length: 1}}}

	out := Render(state, nil, patterns, arrangement, Config{SampleRate: 44100, BPM: 120, StepsPerBar: 16})

	want := 44100 * 2 * 2
	require.InDelta(t, want, len(out), 2000)
}

func TestRenderIsDeterministic(t *testing.T) {
	channels := []Channel{{
		MixerTrack: 1,
		Source:     ChannelSource{Kind: SourceSampler, SamplePath: "kick.wav"},
		Patterns:   map[int]*Slice{0: {Steps: []bool{true, false, false, false, true, false, false, false, true, false, false, false, true, false, false, false}}},
	}}
	patterns := []Pattern{{ID: 0, Name: "Test", Length: 16}}
	arrangement := Arrangement{Placements: []Placement{{PatternID: 0, StartBar: 0, Length: 2}}}
	cfg := Config{SampleRate: 44100, BPM: 120, StepsPerBar: 16}

	stateA := engine.New(44100, 120, toneLoader(4410, 440, 44100))
	handleA := engine.NewHandle(stateA)
	handleA.SetGeneratorTrack(0, 1)
	outA := Render(stateA, channels, patterns, arrangement, cfg)

	stateB := engine.New(44100, 120, toneLoader(4410, 440, 44100))
	handleB := engine.NewHandle(stateB)
	handleB.SetGeneratorTrack(0, 1)
	outB := Render(stateB, channels, patterns, arrangement, cfg)

	require.Equal(t, outA, outB)
}

func TestDelayImpulseAtTempo(t *testing.T) {
	state := engine.New(44100, 120, impulseLoader())
	handle := engine.NewHandle(state)
	ty := effects.TypeDelay
	handle.SetEffect(1, 0, &ty)
	handle.SetEffectParam(1, 0, effects.DelayTime, 3) // Divisions[3] == 1 full beat
	handle.SetEffectParam(1, 0, effects.DelayFeedback, 0)
	handle.SetEffectParam(1, 0, effects.DelayMix, 1)
	handle.SetGeneratorTrack(0, 1)
	handle.PlaySample("impulse.wav", 1.0, 0)

	const totalFrames = 44100
	out := make([]float32, totalFrames*2)
	remaining := totalFrames
	offset := 0
	for remaining > 0 {
		frames := 512
		if remaining < frames {
			frames = remaining
		}
		state.ProcessBlock(out[offset*2:offset*2+frames*2], frames, 2)
		offset += frames
		remaining -= frames
	}

	firstNonZero := -1
	for i := 0; i < totalFrames; i++ {
		if peakOf(out[i*2:i*2+2]) > 1e-6 {
			firstNonZero = i
			break
		}
	}
	require.NotEqual(t, -1, firstNonZero)
	require.InDelta(t, 22050, firstNonZero, 1)
}
