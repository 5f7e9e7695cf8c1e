package effects

import "github.com/termdaw/engine/pkg/dsp/reverb"

type reverbEffect struct {
	roomSize float32
	damping  float32
	mix      float32

	fv *reverb.Freeverb
}

func newReverbEffect(sampleRate float64) *reverbEffect {
	return &reverbEffect{
		roomSize: 0.8,
		damping:  0.1,
		mix:      0.05,
		fv:       reverb.New(sampleRate),
	}
}

func (r *reverbEffect) Process(left, right []float32) {
	r.fv.ProcessStereo(left, right)
}

func (r *reverbEffect) SetParam(id ParamID, value float32) {
	switch id {
	case ReverbRoomSize:
		r.roomSize = clampF32(value, 0, 1)
		r.fv.SetRoomSize(r.roomSize)
	case ReverbDamping:
		r.damping = clampF32(value, 0, 1)
		r.fv.SetDamping(r.damping)
	case ReverbMix:
		r.mix = clampF32(value, 0, 1)
		r.fv.SetMix(r.mix)
	}
}

func (r *reverbEffect) GetParam(id ParamID) float32 {
	switch id {
	case ReverbRoomSize:
		return r.roomSize
	case ReverbDamping:
		return r.damping
	case ReverbMix:
		return r.mix
	default:
		return 0
	}
}

func (r *reverbEffect) SetSampleRate(hz float64) {
	r.fv.SetSampleRate(hz)
	r.fv.SetRoomSize(r.roomSize)
	r.fv.SetDamping(r.damping)
	r.fv.SetMix(r.mix)
}

func (r *reverbEffect) SetTempo(bpm float64) {}

func (r *reverbEffect) Reset() { r.fv.Reset() }

func (r *reverbEffect) Type() Type { return TypeReverb }
