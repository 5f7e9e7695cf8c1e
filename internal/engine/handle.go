package engine

import (
	"github.com/termdaw/engine/internal/effects"
	"github.com/termdaw/engine/internal/pluginhost"
	"github.com/termdaw/engine/pkg/dsp/gain"
)

// Handle is the control-thread's view of a running AudioState: every
// edit goes through one of these methods instead of touching the state
// directly, and every one of them is a non-blocking best-effort send.
type Handle struct {
	state *AudioState
}

// NewHandle wraps state for control-thread use.
func NewHandle(state *AudioState) *Handle { return &Handle{state: state} }

// PlaySample triggers polyphonic playback of path at volume, routed via
// generatorIdx's mixer track assignment.
func (h *Handle) PlaySample(path string, volume float32, generatorIdx int) {
	h.state.SendCommand(PlaySample{Path: path, Volume: volume, GeneratorIdx: generatorIdx})
}

// PreviewSample plays path as an exclusive preview voice, routed via
// generatorIdx's mixer track assignment (for channel previews).
func (h *Handle) PreviewSample(path string, generatorIdx int) {
	h.state.SendCommand(PreviewSample{Path: path, GeneratorIdx: generatorIdx, RouteToMaster: false})
}

// PreviewSampleToMaster plays path as an exclusive preview voice routed
// directly to the master track, bypassing generator routing (for browser
// previews before a generator slot has been assigned).
func (h *Handle) PreviewSampleToMaster(path string) {
	h.state.SendCommand(PreviewSample{Path: path, GeneratorIdx: 0, RouteToMaster: true})
}

// StopPreview drops the currently playing preview voice, if any.
func (h *Handle) StopPreview() { h.state.SendCommand(StopPreview{}) }

// StopAll drops every active voice.
func (h *Handle) StopAll() { h.state.SendCommand(StopAll{}) }

// SetMasterVolume sets the top-level output gain, clamped to [0, 1].
func (h *Handle) SetMasterVolume(volume float32) {
	h.state.SendCommand(SetMasterVolume{Volume: volume})
}

// PreloadSample warms the sample cache for path without starting playback.
func (h *Handle) PreloadSample(path string) {
	h.state.SendCommand(PreloadSample{Path: path})
}

// PluginNoteOn delivers a note-on to the plugin installed on channel.
func (h *Handle) PluginNoteOn(channel int, note uint8, velocity float32) {
	h.state.SendCommand(PluginNoteOn{Channel: channel, Note: note, Velocity: velocity})
}

// PluginNoteOff delivers a note-off to the plugin installed on channel.
func (h *Handle) PluginNoteOff(channel int, note uint8) {
	h.state.SendCommand(PluginNoteOff{Channel: channel, Note: note})
}

// PluginSetParam sets a hosted plugin parameter value.
func (h *Handle) PluginSetParam(channel int, paramID uint32, value float64) {
	h.state.SendCommand(PluginSetParam{Channel: channel, ParamID: paramID, Value: value})
}

// PluginSetVolume sets a plugin channel's output volume.
func (h *Handle) PluginSetVolume(channel int, volume float32) {
	h.state.SendCommand(PluginSetVolume{Channel: channel, Volume: volume})
}

// UpdateMixer replaces the mixer snapshot wholesale.
func (h *Handle) UpdateMixer(snapshot MixerSnapshot) {
	h.state.SendCommand(UpdateMixerState{Snapshot: snapshot})
}

// SetGeneratorTrack reassigns which mixer track a generator routes to.
func (h *Handle) SetGeneratorTrack(generator, track int) {
	h.state.SendCommand(SetGeneratorTrack{Generator: generator, Track: track})
}

// SetTempo updates the tempo used by sync'd effects (delay).
func (h *Handle) SetTempo(bpm float64) {
	h.state.SendCommand(UpdateTempo{BPM: bpm})
}

// SetEffect installs an effect of the given type at track/slot with its
// default parameters, replacing whatever was there. A nil effectType
// removes the slot.
func (h *Handle) SetEffect(track, slot int, effectType *effects.Type) {
	h.state.SendCommand(SetEffect{Track: track, Slot: slot, Type: effectType})
}

// SetEffectParam sets a single parameter on an installed effect.
func (h *Handle) SetEffectParam(track, slot int, paramID effects.ParamID, value float32) {
	h.state.SendCommand(SetEffectParam{Track: track, Slot: slot, ParamID: paramID, Value: value})
}

// SetEffectEnabled toggles whether an installed effect is bypassed.
func (h *Handle) SetEffectEnabled(track, slot int, enabled bool) {
	h.state.SendCommand(SetEffectEnabled{Track: track, Slot: slot, Enabled: enabled})
}

// SendPlugin hands a freshly activated plugin processor to the audio
// thread, with its initial volume and parameter state.
func (h *Handle) SendPlugin(channel int, proc pluginhost.Processor, init PluginInitState) {
	h.state.SendPlugin(channel, proc, init)
}

// WaveformBuffer returns the current waveform ring and write position for
// visualization, or ok=false if the audio thread holds the lock.
func (h *Handle) WaveformBuffer() (data [WaveformBufferSize]float32, writePos int, ok bool) {
	return h.state.WaveformSnapshot()
}

// Peaks returns the current per-track peak meter levels, or ok=false if
// the audio thread holds the lock.
func (h *Handle) Peaks() (peaks [NumTracks]StereoPeak, ok bool) {
	return h.state.PeaksSnapshot()
}

// PeaksDb is Peaks converted to decibels, as a mixer meter widget wants
// to display them.
func (h *Handle) PeaksDb() (peaksDb [NumTracks]StereoPeak, ok bool) {
	peaks, ok := h.state.PeaksSnapshot()
	if !ok {
		return peaksDb, false
	}
	for i, p := range peaks {
		peaksDb[i] = StereoPeak{
			Left:  gain.LinearToDb32(p.Left),
			Right: gain.LinearToDb32(p.Right),
		}
	}
	return peaksDb, true
}
