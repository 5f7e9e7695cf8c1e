package effects

import "github.com/termdaw/engine/pkg/dsp/filter"

type filterEffect struct {
	sampleRate float64
	cutoff     float32
	resonance  float32
	mode       filter.Mode

	svf *filter.SVF
}

func newFilterEffect(sampleRate float64) *filterEffect {
	f := &filterEffect{
		sampleRate: sampleRate,
		cutoff:     1000,
		resonance:  0.5,
		mode:       filter.LowPass,
		svf:        filter.NewSVF(),
	}
	f.updateCoefficients()
	return f
}

func (f *filterEffect) updateCoefficients() {
	cutoff := f.cutoff
	if max := float32(f.sampleRate * 0.49); cutoff > max {
		cutoff = max
	}
	if cutoff < 20 {
		cutoff = 20
	}
	f.svf.SetCoefficients(float64(cutoff), float64(f.resonance), f.sampleRate)
}

func (f *filterEffect) Process(left, right []float32) {
	f.svf.ProcessStereo(left, right, f.mode)
}

func (f *filterEffect) SetParam(id ParamID, value float32) {
	switch id {
	case FilterCutoff:
		f.cutoff = clampF32(value, 20, 20000)
		f.updateCoefficients()
	case FilterResonance:
		f.resonance = clampF32(value, 0, 1)
		f.updateCoefficients()
	case FilterMode:
		f.mode = filter.FromFloat(float64(value))
	}
}

func (f *filterEffect) GetParam(id ParamID) float32 {
	switch id {
	case FilterCutoff:
		return f.cutoff
	case FilterResonance:
		return f.resonance
	case FilterMode:
		return float32(f.mode)
	default:
		return 0
	}
}

func (f *filterEffect) SetSampleRate(hz float64) {
	f.sampleRate = hz
	f.updateCoefficients()
}

func (f *filterEffect) SetTempo(bpm float64) {}

func (f *filterEffect) Reset() { f.svf.Reset() }

func (f *filterEffect) Type() Type { return TypeFilter }
