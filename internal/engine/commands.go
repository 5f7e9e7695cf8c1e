package engine

import "github.com/termdaw/engine/internal/effects"

// commandQueueCapacity bounds the edit->audio command queue. In normal
// operation it is never close to full; a full queue drops the send and
// the UI catches up on the next snapshot.
const commandQueueCapacity = 4096

// pluginQueueCapacity bounds the plugin hand-off queue. Plugin activation
// is rare compared to edits, so a small capacity is sufficient.
const pluginQueueCapacity = 64

// Command is the closed vocabulary of edits the control thread may apply
// to the audio thread's state. Each variant is applied exactly once, in
// FIFO order, at the top of a block.
type Command interface{ isCommand() }

type PlaySample struct {
	Path         string
	Volume       float32
	GeneratorIdx int
}

type PreviewSample struct {
	Path          string
	GeneratorIdx  int
	RouteToMaster bool
}

type StopPreview struct{}

type StopAll struct{}

type SetMasterVolume struct{ Volume float32 }

type PreloadSample struct{ Path string }

type PluginNoteOn struct {
	Channel  int
	Note     uint8
	Velocity float32
}

type PluginNoteOff struct {
	Channel int
	Note    uint8
}

type PluginSetParam struct {
	Channel int
	ParamID uint32
	Value   float64
}

type PluginSetVolume struct {
	Channel int
	Volume  float32
}

type UpdateMixerState struct{ Snapshot MixerSnapshot }

type SetGeneratorTrack struct {
	Generator int
	Track     int
}

// SetEffect installs a new effect of Type at Track/Slot with default
// parameters, replacing whatever was there. A nil Type removes the slot.
type SetEffect struct {
	Track int
	Slot  int
	Type  *effects.Type
}

type SetEffectParam struct {
	Track   int
	Slot    int
	ParamID effects.ParamID
	Value   float32
}

type SetEffectEnabled struct {
	Track   int
	Slot    int
	Enabled bool
}

type UpdateTempo struct{ BPM float64 }

func (PlaySample) isCommand()        {}
func (PreviewSample) isCommand()     {}
func (StopPreview) isCommand()       {}
func (StopAll) isCommand()           {}
func (SetMasterVolume) isCommand()   {}
func (PreloadSample) isCommand()     {}
func (PluginNoteOn) isCommand()      {}
func (PluginNoteOff) isCommand()     {}
func (PluginSetParam) isCommand()    {}
func (PluginSetVolume) isCommand()   {}
func (UpdateMixerState) isCommand()  {}
func (SetGeneratorTrack) isCommand() {}
func (SetEffect) isCommand()         {}
func (SetEffectParam) isCommand()    {}
func (SetEffectEnabled) isCommand()  {}
func (UpdateTempo) isCommand()       {}
