package engine

import (
	"sync"

	"github.com/termdaw/engine/internal/effects"
	"github.com/termdaw/engine/internal/pluginhost"
)

func noteOn(note uint8, velocity float32) pluginhost.MidiNote {
	return pluginhost.MidiNote{Note: note, Velocity: velocity, IsNoteOn: true}
}

func noteOff(note uint8) pluginhost.MidiNote {
	return pluginhost.MidiNote{Note: note, Velocity: 0, IsNoteOn: false}
}

func paramChange(id uint32, value float64) pluginhost.ParamChange {
	return pluginhost.ParamChange{ParamID: id, Value: value}
}

// SampleLoader decodes a sample file into interleaved f32 PCM. Only
// invoked from inside the drain-commands step, on a cache miss.
type SampleLoader func(path string) (*Sample, error)

// AudioState is the audio thread's exclusively owned state: voices, track
// buffers, effect chains, plugin channels, routing, and the sample cache.
// It is guarded by a mutex only so the block callback can try-lock it;
// nothing else ever contends for it in normal operation.
type AudioState struct {
	mu sync.Mutex

	commandQueue *spscQueue[Command]
	pluginQueue  *spscQueue[pluginQueueEntry]

	loader SampleLoader
	cache  map[string]*Sample

	voices []*Voice

	masterVolume     float32
	outputSampleRate float64
	tempoBPM         float64

	tracks  [NumTracks]Track
	routing [MaxGenerators]int
	mixer   MixerSnapshot

	// plugins is a fixed array, not a map: iteration order must be
	// deterministic for offline-render bit-exact reproducibility.
	plugins [MaxGenerators]*PluginChannel

	waveformMu    sync.Mutex
	waveform      [WaveformBufferSize]float32
	waveformWrite int

	peaksMu sync.Mutex
	peaks   [NumTracks]StereoPeak
}

// StereoPeak is a pair of peak amplitudes, each clamped to [0, 1].
type StereoPeak struct {
	Left, Right float32
}

// New constructs an AudioState ready to process blocks at the given
// output sample rate and initial tempo.
func New(outputSampleRate float64, bpm float64, loader SampleLoader) *AudioState {
	s := &AudioState{
		commandQueue:     newSPSCQueue[Command](commandQueueCapacity),
		pluginQueue:      newSPSCQueue[pluginQueueEntry](pluginQueueCapacity),
		loader:           loader,
		cache:            make(map[string]*Sample),
		masterVolume:     1.0,
		outputSampleRate: outputSampleRate,
		tempoBPM:         bpm,
		routing:          defaultRouting(),
		mixer:            DefaultMixerSnapshot(),
	}
	return s
}

// SendCommand enqueues a command from the control thread. Never blocks;
// returns false if the queue was saturated and the edit was dropped.
func (s *AudioState) SendCommand(c Command) bool { return s.commandQueue.Send(c) }

// SendPlugin hands an activated plugin processor to the audio thread via
// the plugin queue. Never blocks; returns false if the queue was full.
func (s *AudioState) SendPlugin(channel int, proc pluginhost.Processor, init PluginInitState) bool {
	return s.pluginQueue.Send(pluginQueueEntry{Channel: channel, Proc: proc, Init: init})
}

// WaveformSnapshot copies the current waveform ring and write position
// under try-lock. If the lock is held by the audio thread, ok is false
// and the caller should keep displaying its last snapshot.
func (s *AudioState) WaveformSnapshot() (data [WaveformBufferSize]float32, writePos int, ok bool) {
	if !s.waveformMu.TryLock() {
		return data, 0, false
	}
	defer s.waveformMu.Unlock()
	return s.waveform, s.waveformWrite, true
}

// PeaksSnapshot copies the current per-track peak levels under try-lock.
func (s *AudioState) PeaksSnapshot() (peaks [NumTracks]StereoPeak, ok bool) {
	if !s.peaksMu.TryLock() {
		return peaks, false
	}
	defer s.peaksMu.Unlock()
	return s.peaks, true
}

// ProcessBlock is the real-time callback entry point. data is interleaved
// output of numFrames*channels samples. It never blocks and never
// returns an error: on lock contention it fills data with silence.
func (s *AudioState) ProcessBlock(data []float32, numFrames, channels int) {
	if !s.mu.TryLock() {
		for i := range data {
			data[i] = 0
		}
		return
	}
	defer s.mu.Unlock()

	s.drainCommands()
	s.drainPlugins()

	for i := range s.tracks {
		s.tracks[i].Buffer.ensure(numFrames)
	}

	s.processVoices(numFrames)
	s.processPlugins(numFrames)
	s.processEffects(numFrames)
	s.sumToMaster(numFrames)
	s.snapshotPeaksAndWaveform(numFrames)
	s.writeDevice(data, numFrames, channels)
}

func (s *AudioState) drainCommands() {
	s.commandQueue.Drain(func(c Command) { s.apply(c) })
}

func (s *AudioState) drainPlugins() {
	s.pluginQueue.Drain(func(e pluginQueueEntry) {
		if e.Channel < 0 || e.Channel >= MaxGenerators {
			return
		}
		s.plugins[e.Channel] = newPluginChannel(e)
	})
}

func (s *AudioState) apply(c Command) {
	switch cmd := c.(type) {
	case PlaySample:
		s.playSample(cmd.Path, cmd.Volume, cmd.GeneratorIdx, Polyphonic, false)
	case PreviewSample:
		s.dropPreviewVoices()
		s.playSample(cmd.Path, 1.0, cmd.GeneratorIdx, PreviewExclusive, cmd.RouteToMaster)
	case StopPreview:
		s.dropPreviewVoices()
	case StopAll:
		s.voices = s.voices[:0]
	case SetMasterVolume:
		s.masterVolume = clamp01(cmd.Volume)
	case PreloadSample:
		s.getOrLoadSample(cmd.Path)
	case PluginNoteOn:
		s.withPluginChannel(cmd.Channel, func(pc *PluginChannel) {
			pc.PendingNotes = append(pc.PendingNotes, noteOn(cmd.Note, cmd.Velocity))
		})
	case PluginNoteOff:
		s.withPluginChannel(cmd.Channel, func(pc *PluginChannel) {
			pc.PendingNotes = append(pc.PendingNotes, noteOff(cmd.Note))
		})
	case PluginSetParam:
		s.withPluginChannel(cmd.Channel, func(pc *PluginChannel) {
			pc.PendingParams = append(pc.PendingParams, paramChange(cmd.ParamID, cmd.Value))
		})
	case PluginSetVolume:
		s.withPluginChannel(cmd.Channel, func(pc *PluginChannel) {
			pc.Volume = clamp01(cmd.Volume)
		})
	case UpdateMixerState:
		s.mixer = cmd.Snapshot
	case SetGeneratorTrack:
		if cmd.Generator >= 0 && cmd.Generator < MaxGenerators && cmd.Track >= 0 && cmd.Track < NumTracks {
			s.routing[cmd.Generator] = cmd.Track
		}
	case SetEffect:
		s.setEffect(cmd.Track, cmd.Slot, cmd.Type)
	case SetEffectParam:
		s.setEffectParam(cmd.Track, cmd.Slot, cmd.ParamID, cmd.Value)
	case SetEffectEnabled:
		s.setEffectEnabled(cmd.Track, cmd.Slot, cmd.Enabled)
	case UpdateTempo:
		s.tempoBPM = cmd.BPM
		s.propagateTempo()
	}
}

func (s *AudioState) withPluginChannel(channel int, fn func(*PluginChannel)) {
	if channel < 0 || channel >= MaxGenerators {
		return
	}
	pc := s.plugins[channel]
	if pc == nil {
		return
	}
	fn(pc)
}

func (s *AudioState) setEffect(track, slot int, t *effects.Type) {
	if !validTrackSlot(track, slot) {
		return
	}
	if t == nil {
		s.tracks[track].Effects[slot] = effects.Slot{}
		return
	}
	s.tracks[track].Effects[slot] = effects.Slot{
		Effect: effects.New(*t, s.outputSampleRate, s.tempoBPM),
	}
}

func (s *AudioState) setEffectParam(track, slot int, id effects.ParamID, value float32) {
	if !validTrackSlot(track, slot) {
		return
	}
	if e := s.tracks[track].Effects[slot].Effect; e != nil {
		e.SetParam(id, value)
	}
}

func (s *AudioState) setEffectEnabled(track, slot int, enabled bool) {
	if !validTrackSlot(track, slot) {
		return
	}
	s.tracks[track].Effects[slot].Bypassed = !enabled
}

func (s *AudioState) propagateTempo() {
	for t := range s.tracks {
		for i := range s.tracks[t].Effects {
			if e := s.tracks[t].Effects[i].Effect; e != nil {
				e.SetTempo(s.tempoBPM)
			}
		}
	}
}

func validTrackSlot(track, slot int) bool {
	return track >= 0 && track < NumTracks && slot >= 0 && slot < effects.SlotsPerTrack
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
