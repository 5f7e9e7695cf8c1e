package engine

import "github.com/termdaw/engine/internal/pluginhost"

// PluginInitState seeds a newly installed PluginChannel: the parameter
// values it should start with and its initial volume, both computed on
// the control thread before the processor is hold over the plugin queue.
type PluginInitState struct {
	Volume float32
	Params []pluginhost.ParamChange
}

// pluginQueueEntry is one hand-off of a freshly activated plugin from the
// control thread to the audio thread, carried over the plugin queue.
type pluginQueueEntry struct {
	Channel int
	Proc    pluginhost.Processor
	Init    PluginInitState
}

// PluginChannel is one active hosted-plugin slot, sparse over the
// generator index space. Pending notes/params are queued by commands and
// drained into the processor once per block.
type PluginChannel struct {
	Processor     pluginhost.Processor
	PendingNotes  []pluginhost.MidiNote
	PendingParams []pluginhost.ParamChange
	OutputLeft    []float32
	OutputRight   []float32
	Volume        float32
}

func newPluginChannel(entry pluginQueueEntry) *PluginChannel {
	pc := &PluginChannel{
		Processor: entry.Proc,
		Volume:    entry.Init.Volume,
	}
	pc.PendingParams = append(pc.PendingParams, entry.Init.Params...)
	return pc
}

func (pc *PluginChannel) ensureOutputs(numFrames int) {
	if len(pc.OutputLeft) < numFrames {
		pc.OutputLeft = make([]float32, numFrames)
		pc.OutputRight = make([]float32, numFrames)
		return
	}
	for i := 0; i < numFrames; i++ {
		pc.OutputLeft[i] = 0
		pc.OutputRight[i] = 0
	}
}
