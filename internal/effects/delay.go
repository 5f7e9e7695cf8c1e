package effects

import "github.com/termdaw/engine/pkg/dsp/delay"

type delayEffect struct {
	sampleRate float64
	bpm        float64

	timeIdx  int
	feedback float32
	mix      float32
	sync     bool
	freeMs   float32

	delaySamples int

	left, right *delay.Line
}

func newDelayEffect(sampleRate, bpm float64) *delayEffect {
	d := &delayEffect{
		sampleRate: sampleRate,
		bpm:        bpm,
		timeIdx:    3,
		feedback:   0.5,
		mix:        0.5,
		sync:       true,
		freeMs:     250,
	}
	d.allocate()
	d.updateDelaySamples()
	return d
}

func (d *delayEffect) maxSamples() int {
	return int(delay.MaxDelaySeconds * d.sampleRate)
}

func (d *delayEffect) allocate() {
	max := d.maxSamples()
	d.left = delay.New(max)
	d.right = delay.New(max)
}

func (d *delayEffect) updateDelaySamples() {
	var samples int
	if d.sync {
		beats := delay.Divisions[d.timeIdx]
		samplesPerBeat := (60.0 / d.bpm) * d.sampleRate
		samples = int(beats * samplesPerBeat)
	} else {
		samples = int((float64(d.freeMs) / 1000.0) * d.sampleRate)
	}
	if max := d.maxSamples() - 1; samples > max {
		samples = max
	}
	d.delaySamples = samples
}

func (d *delayEffect) Process(left, right []float32) {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		delayedL := d.left.Read(d.delaySamples)
		delayedR := d.right.Read(d.delaySamples)

		d.left.Write(left[i] + delayedL*d.feedback)
		d.right.Write(right[i] + delayedR*d.feedback)

		left[i] = left[i]*(1.0-d.mix) + delayedL*d.mix
		right[i] = right[i]*(1.0-d.mix) + delayedR*d.mix
	}
}

func (d *delayEffect) SetParam(id ParamID, value float32) {
	switch id {
	case DelayTime:
		idx := int(value)
		if idx > len(delay.Divisions)-1 {
			idx = len(delay.Divisions) - 1
		}
		if idx < 0 {
			idx = 0
		}
		d.timeIdx = idx
		d.updateDelaySamples()
	case DelayFeedback:
		d.feedback = clampF32(value, 0, 0.95)
	case DelayMix:
		d.mix = clampF32(value, 0, 1)
	case DelaySync:
		d.sync = value >= 0.5
		d.updateDelaySamples()
	case DelayFreeMs:
		d.freeMs = clampF32(value, 10, 2000)
		d.updateDelaySamples()
	}
}

func (d *delayEffect) GetParam(id ParamID) float32 {
	switch id {
	case DelayTime:
		return float32(d.timeIdx)
	case DelayFeedback:
		return d.feedback
	case DelayMix:
		return d.mix
	case DelaySync:
		if d.sync {
			return 1
		}
		return 0
	case DelayFreeMs:
		return d.freeMs
	default:
		return 0
	}
}

func (d *delayEffect) SetSampleRate(hz float64) {
	d.sampleRate = hz
	d.allocate()
	d.updateDelaySamples()
}

func (d *delayEffect) SetTempo(bpm float64) {
	d.bpm = bpm
	d.updateDelaySamples()
}

func (d *delayEffect) Reset() {
	d.left.Clear()
	d.right.Clear()
}

func (d *delayEffect) Type() Type { return TypeDelay }
