package render

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/termdaw/engine/internal/effects"
	"github.com/termdaw/engine/internal/engine"
)

// Project is the on-disk project file, decoded to the degree the audio
// core consumes it. Fields the core never reads (name, timestamps, the
// currently-open pattern in the editor) are parsed only so round-tripping
// a file a UI wrote doesn't lose them, and are otherwise unused here.
type Project struct {
	Version      int              `json:"version"`
	Name         string           `json:"name"`
	CreatedAt    string           `json:"created_at"`
	ModifiedAt   string           `json:"modified_at"`
	BPM          float64          `json:"bpm"`
	CurrentPattern int            `json:"current_pattern"`
	Channels     []projectChannel `json:"channels"`
	Patterns     []projectPattern `json:"patterns"`
	Arrangement  projectArrangement `json:"arrangement"`
	Mixer        projectMixer     `json:"mixer"`
}

type projectChannel struct {
	SamplePath  string             `json:"sample_path"`
	PluginPath  string             `json:"plugin_path"`
	MixerTrack  int                `json:"mixer_track"`
	PluginParams map[uint32]float64 `json:"plugin_params"`
}

type projectPattern struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Length int        `json:"length"`
	Steps  [][]bool   `json:"steps"` // steps[channel][step]
	Notes  [][]projectNote `json:"notes"` // notes[channel][]
}

type projectNote struct {
	StartStep int     `json:"start_step"`
	Duration  int     `json:"duration"`
	Pitch     uint8   `json:"pitch"`
	Velocity  float32 `json:"velocity"`
}

type projectArrangement struct {
	Placements []projectPlacement `json:"placements"`
}

type projectPlacement struct {
	PatternID int `json:"pattern_id"`
	StartBar  int `json:"start_bar"`
	Length    int `json:"length"`
}

type projectMixer struct {
	Tracks []projectTrack `json:"tracks"`
}

type projectTrack struct {
	Volume  float32              `json:"volume"`
	Pan     float32              `json:"pan"`
	Muted   bool                 `json:"muted"`
	Solo    bool                 `json:"solo"`
	Effects []projectEffectSlot  `json:"effects"`
}

type projectEffectSlot struct {
	EffectType int                `json:"effect_type"`
	Bypassed   bool               `json:"bypassed"`
	Params     map[string]float32 `json:"params"`
}

// LoadProject reads and decodes a project file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: read project %q: %w", path, err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("render: parse project %q: %w", path, err)
	}
	return &p, nil
}

// Mixer builds the MixerSnapshot the core expects, combining each
// track's solo flag into the effective-mute projection: a track is
// silenced if it is explicitly muted, or if some other track is soloed
// and this one isn't. Track 0 (master) is never muted by solo.
func (p *Project) Mixer() engine.MixerSnapshot {
	snapshot := engine.DefaultMixerSnapshot()
	anySolo := false
	for _, t := range p.Mixer.Tracks {
		if t.Solo {
			anySolo = true
			break
		}
	}
	for i, t := range p.Mixer.Tracks {
		if i >= engine.NumTracks {
			break
		}
		snapshot.Volumes[i] = t.Volume
		snapshot.Pans[i] = t.Pan
		snapshot.Mutes[i] = t.Muted || (i != 0 && anySolo && !t.Solo)
	}
	return snapshot
}

// ChannelsForRender converts the project's channel list into the
// renderer's Channel slice, indexing each channel's patterns by the
// project pattern they participate in.
func (p *Project) ChannelsForRender() []Channel {
	channels := make([]Channel, len(p.Channels))
	for i, pc := range p.Channels {
		src := ChannelSource{Kind: SourceSampler, SamplePath: pc.SamplePath}
		if pc.PluginPath != "" {
			src = ChannelSource{Kind: SourcePlugin}
		}
		channels[i] = Channel{
			MixerTrack: pc.MixerTrack,
			Source:     src,
			Patterns:   make(map[int]*Slice),
		}
	}
	for _, pp := range p.Patterns {
		for chIdx := range p.Channels {
			slice := &Slice{}
			if chIdx < len(pp.Steps) {
				slice.Steps = pp.Steps[chIdx]
			}
			if chIdx < len(pp.Notes) {
				for _, n := range pp.Notes[chIdx] {
					slice.Notes = append(slice.Notes, Note{
						StartStep: n.StartStep,
						Duration:  n.Duration,
						Pitch:     n.Pitch,
						Velocity:  n.Velocity,
					})
				}
			}
			channels[chIdx].Patterns[pp.ID] = slice
		}
	}
	return channels
}

// PatternsForRender converts the project's pattern list into the renderer's form.
func (p *Project) PatternsForRender() []Pattern {
	patterns := make([]Pattern, len(p.Patterns))
	for i, pp := range p.Patterns {
		patterns[i] = Pattern{ID: pp.ID, Name: pp.Name, Length: pp.Length}
	}
	return patterns
}

// ArrangementForRender converts the project's placement list into the
// renderer's form.
func (p *Project) ArrangementForRender() Arrangement {
	placements := make([]Placement, len(p.Arrangement.Placements))
	for i, pl := range p.Arrangement.Placements {
		placements[i] = Placement{PatternID: pl.PatternID, StartBar: pl.StartBar, Length: pl.Length}
	}
	return Arrangement{Placements: placements}
}

// ApplyRouting applies generator routing and installed effects to a freshly constructed AudioState
// via its Handle, using each channel's declared mixer track and each
// mixer track's persisted effect slots. Unknown param ids are ignored by
// the effect itself; missing ids keep New's documented defaults.
func (p *Project) ApplyRouting(handle *engine.Handle) {
	for i, ch := range p.Channels {
		handle.SetGeneratorTrack(i, ch.MixerTrack)
	}
	for trackIdx, t := range p.Mixer.Tracks {
		if trackIdx >= engine.NumTracks {
			break
		}
		for slotIdx, slot := range t.Effects {
			if slotIdx >= effects.SlotsPerTrack {
				break
			}
			effectType := effects.Type(slot.EffectType)
			handle.SetEffect(trackIdx, slotIdx, &effectType)
			handle.SetEffectEnabled(trackIdx, slotIdx, !slot.Bypassed)
			for idStr, value := range slot.Params {
				id, err := parseParamID(idStr)
				if err != nil {
					continue
				}
				handle.SetEffectParam(trackIdx, slotIdx, id, value)
			}
		}
	}
}

func parseParamID(s string) (effects.ParamID, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, err
	}
	return effects.ParamID(n), nil
}
