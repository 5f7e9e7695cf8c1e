// Package reverb implements a Freeverb-style reverb.
package reverb

// Comb filter tuning values (in samples at 44.1kHz)
var combTuning = [8]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}

// Allpass filter tuning values (in samples at 44.1kHz)
var allpassTuning = [4]int{556, 441, 341, 225}

const stereoSpread = 23

// comb is a comb filter with a one-pole lowpass in its feedback loop.
type comb struct {
	buffer      []float32
	writePos    int
	filterstore float32
	feedback    float32
	damp1       float32
	damp2       float32
}

func newComb(size int) *comb {
	return &comb{buffer: make([]float32, size), damp1: 0.5, damp2: 0.5, feedback: 0.5}
}

func (c *comb) setFeedback(fb float32) { c.feedback = fb }

func (c *comb) setDamp(damp float32) {
	c.damp1 = damp
	c.damp2 = 1.0 - damp
}

func (c *comb) process(input float32) float32 {
	output := c.buffer[c.writePos]
	c.filterstore = output*c.damp2 + c.filterstore*c.damp1
	c.buffer[c.writePos] = input + c.filterstore*c.feedback
	c.writePos = (c.writePos + 1) % len(c.buffer)
	return output
}

func (c *comb) clear() {
	for i := range c.buffer {
		c.buffer[i] = 0
	}
	c.filterstore = 0
}

// allpass is an allpass filter used for diffusion.
type allpass struct {
	buffer   []float32
	writePos int
}

func newAllpass(size int) *allpass {
	return &allpass{buffer: make([]float32, size)}
}

func (a *allpass) process(input float32) float32 {
	bufout := a.buffer[a.writePos]
	output := -input + bufout
	a.buffer[a.writePos] = input + bufout*0.5
	a.writePos = (a.writePos + 1) % len(a.buffer)
	return output
}

func (a *allpass) clear() {
	for i := range a.buffer {
		a.buffer[i] = 0
	}
}

// Freeverb implements the Freeverb reverb algorithm with eight parallel
// combs and four series allpasses per channel.
type Freeverb struct {
	sampleRate float64
	roomSize   float32
	damping    float32
	mix        float32

	combsL, combsR       [8]*comb
	allpassesL, allpassR [4]*allpass
}

// New creates a Freeverb instance sized for sampleRate, with the
// project's default room size/damping/mix (0.8 / 0.1 / 0.05).
func New(sampleRate float64) *Freeverb {
	f := &Freeverb{sampleRate: sampleRate, roomSize: 0.8, damping: 0.1, mix: 0.05}
	f.buildFilters()
	f.updateCoefficients()
	return f
}

func (f *Freeverb) buildFilters() {
	scale := f.sampleRate / 44100.0
	for i := 0; i < 8; i++ {
		f.combsL[i] = newComb(int(float64(combTuning[i]) * scale))
		f.combsR[i] = newComb(int(float64(combTuning[i]+stereoSpread) * scale))
	}
	for i := 0; i < 4; i++ {
		f.allpassesL[i] = newAllpass(int(float64(allpassTuning[i]) * scale))
		f.allpassR[i] = newAllpass(int(float64(allpassTuning[i]+stereoSpread) * scale))
	}
}

func (f *Freeverb) updateCoefficients() {
	feedback := 0.28 + f.roomSize*0.7
	for i := 0; i < 8; i++ {
		f.combsL[i].setFeedback(feedback)
		f.combsL[i].setDamp(f.damping)
		f.combsR[i].setFeedback(feedback)
		f.combsR[i].setDamp(f.damping)
	}
}

// SetRoomSize sets room size in [0, 1].
func (f *Freeverb) SetRoomSize(v float32) {
	f.roomSize = clamp01(v)
	f.updateCoefficients()
}

// SetDamping sets damping in [0, 1].
func (f *Freeverb) SetDamping(v float32) {
	f.damping = clamp01(v)
	f.updateCoefficients()
}

// SetMix sets the dry/wet mix in [0, 1].
func (f *Freeverb) SetMix(v float32) {
	f.mix = clamp01(v)
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

// ProcessStereo runs the reverb over left/right in place. Input to the
// reverb network is (left+right)/2, per the source behavior.
func (f *Freeverb) ProcessStereo(left, right []float32) {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		input := (left[i] + right[i]) * 0.5

		var outL, outR float32
		for c := 0; c < 8; c++ {
			outL += f.combsL[c].process(input)
			outR += f.combsR[c].process(input)
		}
		for a := 0; a < 4; a++ {
			outL = f.allpassesL[a].process(outL)
			outR = f.allpassR[a].process(outR)
		}
		outL *= 0.125
		outR *= 0.125

		left[i] = left[i]*(1.0-f.mix) + outL*f.mix
		right[i] = right[i]*(1.0-f.mix) + outR*f.mix
	}
}

// Reset clears all filter state.
func (f *Freeverb) Reset() {
	for i := 0; i < 8; i++ {
		f.combsL[i].clear()
		f.combsR[i].clear()
	}
	for i := 0; i < 4; i++ {
		f.allpassesL[i].clear()
		f.allpassR[i].clear()
	}
}

// SetSampleRate rebuilds every filter at the new rate, matching the
// source's full-reconstruction behavior on rate changes.
func (f *Freeverb) SetSampleRate(sampleRate float64) {
	f.sampleRate = sampleRate
	f.buildFilters()
	f.updateCoefficients()
}
