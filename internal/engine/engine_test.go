package engine

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termdaw/engine/internal/effects"
)

func testLoader(numFrames int, channels int, amplitude float32) SampleLoader {
	return func(path string) (*Sample, error) {
		frames := make([]float32, numFrames*channels)
		for i := range frames {
			frames[i] = amplitude
		}
		return &Sample{Frames: frames, SourceRate: 44100, Channels: channels}, nil
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

func TestVoiceCapEviction(t *testing.T) {
	s := New(44100, 120, testLoader(44100, 1, 0.1))
	for i := 0; i < 40; i++ {
		s.SendCommand(PlaySample{Path: fmt.Sprintf("sample-%d.wav", i), Volume: 1, GeneratorIdx: 1})
	}
	s.drainCommands()

	require.Len(t, s.voices, MaxVoices)
}

func TestPreviewExclusivity(t *testing.T) {
	s := New(44100, 120, testLoader(44100, 1, 0.1))
	s.SendCommand(PlaySample{Path: "poly.wav", Volume: 1, GeneratorIdx: 1})
	s.SendCommand(PreviewSample{Path: "preview-1.wav", GeneratorIdx: 1})
	s.drainCommands()
	s.SendCommand(PreviewSample{Path: "preview-2.wav", GeneratorIdx: 1})
	s.drainCommands()

	previewCount := 0
	polyCount := 0
	for _, v := range s.voices {
		if v.Kind == PreviewExclusive {
			previewCount++
		} else {
			polyCount++
		}
	}
	require.Equal(t, 1, previewCount, "preview voice count")
	require.Equal(t, 1, polyCount, "polyphonic voice count")
}

func TestMuteSuppressesContribution(t *testing.T) {
	s := New(44100, 120, testLoader(512, 1, 0.5))
	s.SendCommand(SetGeneratorTrack{Generator: 5, Track: 2})
	s.SendCommand(PlaySample{Path: "loud.wav", Volume: 1, GeneratorIdx: 5})
	mixer := DefaultMixerSnapshot()
	mixer.Mutes[2] = true
	s.SendCommand(UpdateMixerState{Snapshot: mixer})

	out := make([]float32, 512*2)
	s.ProcessBlock(out, 512, 2)

	if p := peakOf(out); p >= 1e-6 {
		t.Fatalf("muted track leaked into master, peak = %v", p)
	}
}

func TestUnmutedTrackReachesMaster(t *testing.T) {
	s := New(44100, 120, testLoader(512, 1, 0.5))
	s.SendCommand(SetGeneratorTrack{Generator: 5, Track: 2})
	s.SendCommand(PlaySample{Path: "loud.wav", Volume: 1, GeneratorIdx: 5})

	out := make([]float32, 512*2)
	s.ProcessBlock(out, 512, 2)

	if p := peakOf(out); p < 1e-6 {
		t.Fatalf("unmuted track did not reach master, peak = %v", p)
	}
}

func TestMasterOutputClampedToUnitRange(t *testing.T) {
	// Several full-volume unmuted tracks summing well past 1.0 must still
	// clip to [-1, 1] at the device boundary.
	s := New(44100, 120, testLoader(512, 1, 1.0))
	mixer := DefaultMixerSnapshot()
	for t := 0; t < NumTracks; t++ {
		mixer.Volumes[t] = 1.0
		mixer.Pans[t] = 0
	}
	s.SendCommand(UpdateMixerState{Snapshot: mixer})
	for g := 0; g < 10; g++ {
		track := 1 + g%(NumTracks-1)
		s.SendCommand(SetGeneratorTrack{Generator: g, Track: track})
		s.SendCommand(PlaySample{Path: fmt.Sprintf("loud-%d.wav", g), Volume: 1, GeneratorIdx: g})
	}

	out := make([]float32, 512*2)
	s.ProcessBlock(out, 512, 2)

	for i, v := range out {
		if v > 1.0 || v < -1.0 {
			t.Fatalf("out[%d] = %v, outside [-1, 1]", i, v)
		}
	}
}

func TestMasterVolumeZeroIsSilent(t *testing.T) {
	s := New(44100, 120, testLoader(512, 1, 0.5))
	s.SendCommand(SetGeneratorTrack{Generator: 1, Track: 1})
	s.SendCommand(PlaySample{Path: "tone.wav", Volume: 1, GeneratorIdx: 1})
	s.SendCommand(SetMasterVolume{Volume: 0})

	out := make([]float32, 512*2)
	s.ProcessBlock(out, 512, 2)

	if p := peakOf(out); p != 0 {
		t.Fatalf("master volume 0 produced nonzero output, peak = %v", p)
	}
}

func TestDefaultStateIsSilent(t *testing.T) {
	s := New(44100, 120, testLoader(512, 1, 0.5))
	out := make([]float32, 512*2)
	s.ProcessBlock(out, 512, 2)
	if p := peakOf(out); p != 0 {
		t.Fatalf("freshly constructed state produced nonzero output, peak = %v", p)
	}
}

func TestContendedLockProducesSilenceNotPanic(t *testing.T) {
	s := New(44100, 120, testLoader(512, 1, 0.5))
	s.mu.Lock()
	out := make([]float32, 512*2)
	for i := range out {
		out[i] = 1 // poison the buffer to confirm it gets zeroed
	}
	s.ProcessBlock(out, 512, 2)
	s.mu.Unlock()

	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v under contention, want 0", i, v)
		}
	}
}

func TestEffectBypassPreservesPassthrough(t *testing.T) {
	s := New(44100, 120, testLoader(512, 1, 0.5))
	ty := effects.TypeFilter
	s.SendCommand(SetEffect{Track: 1, Slot: 0, Type: &ty})
	s.SendCommand(SetEffectEnabled{Track: 1, Slot: 0, Enabled: false})
	s.SendCommand(SetGeneratorTrack{Generator: 1, Track: 1})
	s.SendCommand(PlaySample{Path: "tone.wav", Volume: 1, GeneratorIdx: 1})

	s.drainCommands()
	for i := range s.tracks {
		s.tracks[i].Buffer.ensure(512)
	}
	s.processVoices(512)
	before := append([]float32(nil), s.tracks[1].Buffer.Left[:512]...)
	s.processEffects(512)
	after := s.tracks[1].Buffer.Left[:512]

	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("bypassed effect modified sample %d: before=%v after=%v", i, before[i], after[i])
		}
	}
}

func TestSetGeneratorTrackOutOfRangeIsIgnored(t *testing.T) {
	s := New(44100, 120, testLoader(512, 1, 0.5))
	s.SendCommand(SetGeneratorTrack{Generator: -1, Track: 3})
	s.SendCommand(SetGeneratorTrack{Generator: 5, Track: 999})
	s.drainCommands()

	if s.routing[5] != 1 {
		t.Fatalf("out-of-range SetGeneratorTrack mutated routing: got %d, want default 1", s.routing[5])
	}
}

func TestStopAllClearsVoices(t *testing.T) {
	s := New(44100, 120, testLoader(44100, 1, 0.1))
	s.SendCommand(PlaySample{Path: "a.wav", Volume: 1, GeneratorIdx: 1})
	s.SendCommand(PlaySample{Path: "b.wav", Volume: 1, GeneratorIdx: 1})
	s.SendCommand(StopAll{})
	s.drainCommands()

	if len(s.voices) != 0 {
		t.Fatalf("voices after StopAll = %d, want 0", len(s.voices))
	}
}
