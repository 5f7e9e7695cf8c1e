package engine

import "github.com/termdaw/engine/internal/effects"

// NumTracks is the fixed mixer width: track 0 is master, 1..15 are regular.
const NumTracks = 16

// MaxVoices bounds simultaneous sample playback. When full, the oldest
// non-preview voice is evicted to make room for a new one.
const MaxVoices = 32

// MaxGenerators is the width of the generator->track routing table.
const MaxGenerators = 99

// WaveformBufferSize is the fixed length of the shared waveform ring.
const WaveformBufferSize = 512

// Sample is an immutable, interleaved PCM payload shared by reference
// across every voice that plays it. Loaded once per path and never
// evicted for the life of the process.
type Sample struct {
	Frames     []float32
	SourceRate float64
	Channels   int
}

// NumFrames returns the number of sample frames (not interleaved samples).
func (s *Sample) NumFrames() int {
	if s.Channels == 0 {
		return 0
	}
	return len(s.Frames) / s.Channels
}

// VoiceKind distinguishes ordinary polyphonic playback from exclusive
// browser/pattern previews.
type VoiceKind int

const (
	Polyphonic VoiceKind = iota
	PreviewExclusive
)

// Voice is one active playback of a Sample.
type Voice struct {
	Sample        *Sample
	Position      int
	Volume        float32
	Kind          VoiceKind
	GeneratorIdx  int
	RouteToMaster bool
}

// TrackBuffer is a per-track stereo accumulation buffer, cleared at the
// top of every block and grown on demand.
type TrackBuffer struct {
	Left  []float32
	Right []float32
}

func (t *TrackBuffer) ensure(numFrames int) {
	if len(t.Left) < numFrames {
		grown := make([]float32, numFrames)
		t.Left = grown
		grown2 := make([]float32, numFrames)
		t.Right = grown2
		return
	}
	for i := 0; i < numFrames; i++ {
		t.Left[i] = 0
		t.Right[i] = 0
	}
}

// MixerSnapshot is the audio-thread-visible mixer state, replaced
// wholesale by UpdateMixerState. mutes is the already-combined effective
// mute; the audio thread never evaluates solo logic itself.
type MixerSnapshot struct {
	Volumes [NumTracks]float32
	Pans    [NumTracks]float32
	Mutes   [NumTracks]bool
}

// DefaultMixerSnapshot matches the project's default track gain staging:
// every track (including master) starts at 0.8, centered, unmuted.
func DefaultMixerSnapshot() MixerSnapshot {
	var s MixerSnapshot
	for i := range s.Volumes {
		s.Volumes[i] = 0.8
	}
	return s
}

// Track is a mixer destination: its accumulation buffer plus its ordered
// insert-effect chain. Track 0 is master.
type Track struct {
	Buffer  TrackBuffer
	Effects [effects.SlotsPerTrack]effects.Slot
}

// defaultRouting returns the generator->track table with every slot
// defaulted to track 1, the first non-master track.
func defaultRouting() [MaxGenerators]int {
	var r [MaxGenerators]int
	for i := range r {
		r[i] = 1
	}
	return r
}
