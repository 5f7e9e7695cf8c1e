// Package pluginhost integrates an externally hosted CLAP plugin into the
// mixing graph: a control-thread loader/activator and an audio-thread
// Processor the engine drives once per block.
package pluginhost

import "github.com/google/uuid"

// Host identity presented to every loaded plugin. These strings are part
// of the hosting contract and must not vary between plugins.
const (
	HostName    = "TermDAW"
	HostVendor  = "TermDAW Project"
	HostURL     = "https://github.com/termdaw"
	HostVersion = "0.1.0"
)

// MidiNote is one pending note event for a plugin channel.
type MidiNote struct {
	Note     uint8
	Velocity float32
	IsNoteOn bool
}

// ParamChange is one pending parameter change, already normalized to the
// plugin's 0..1 domain by the control thread.
type ParamChange struct {
	ParamID uint32
	Value   float64
}

// Info describes a loaded plugin, independent of activation state.
type Info struct {
	InstanceID uuid.UUID
	ID         string
	Name       string
	Vendor     string
}

// Processor is the audio-thread capability set: everything ProcessBlock
// needs to drive a hosted plugin for one block. It is constructed on the
// control thread by Activate and handed off across the plugin queue; from
// that point only the audio thread calls Process.
type Processor interface {
	// Process renders up to len(outLeft) frames (never exceeding the
	// max frame count negotiated at activation) into outLeft/outRight,
	// having first delivered notes and params for this block.
	Process(notes []MidiNote, params []ParamChange, outLeft, outRight []float32)
	// Close releases any resources the processor holds. Called once,
	// after the audio thread is done with it (deactivation).
	Close()
}

// Loader loads a plugin bundle from disk and activates it for a given
// sample rate and maximum block size. Loading and activation both run on
// the control thread and may block or allocate freely; only the returned
// Processor crosses to the audio thread.
type Loader interface {
	Load(path string, sampleRate float64, maxFrames int) (*Handle, error)
}

// Handle is a loaded-but-not-yet-activated plugin bundle.
type Handle struct {
	Info Info

	activate func(sampleRate float64, maxFrames int) (Processor, error)
}

// NewHandle constructs a Handle around an activation closure. Concrete
// Loader implementations (the CLAP bridge, or a test double) build one of
// these after opening the plugin bundle and reading its descriptor.
func NewHandle(info Info, activate func(sampleRate float64, maxFrames int) (Processor, error)) *Handle {
	return &Handle{Info: info, activate: activate}
}

// Activate starts the plugin and returns the Processor to hand off to the
// audio thread via the plugin queue.
func (h *Handle) Activate(sampleRate float64, maxFrames int) (Processor, error) {
	return h.activate(sampleRate, maxFrames)
}
