package effects

import "math"

// onePole is a one-pole lowpass used both as the enhancer's high-shelf
// splitter and as its envelope follower, just at different cutoffs.
type onePole struct {
	y1   float32
	coef float32
}

func (p *onePole) setCutoff(cutoffHz, sampleRate float64) {
	p.coef = float32(math.Exp(-2 * math.Pi * cutoffHz / sampleRate))
}

func (p *onePole) process(input float32) float32 {
	p.y1 = input*(1-p.coef) + p.y1*p.coef
	return p.y1
}

func (p *onePole) reset() { p.y1 = 0 }

func saturate(x, drive float32) float32 {
	driven := x * (1 + drive*3)
	if driven < 1 && driven > -1 {
		return driven - driven*driven*driven/3
	}
	if driven > 0 {
		return 2.0 / 3.0
	}
	return -2.0 / 3.0
}

type enhancerMode struct {
	satDrive    float32
	exciterFreq float64
	exciterAmt  float32
	compression float32
}

var enhancerModes = [4]enhancerMode{
	{satDrive: 0.3, exciterFreq: 3000, exciterAmt: 0.15, compression: 0.2}, // Warm
	{satDrive: 0.5, exciterFreq: 4000, exciterAmt: 0.25, compression: 0.3}, // Bright
	{satDrive: 0.7, exciterFreq: 2500, exciterAmt: 0.2, compression: 0.5},  // Punch
	{satDrive: 0.9, exciterFreq: 5000, exciterAmt: 0.35, compression: 0.4}, // Loud
}

type enhancerEffect struct {
	sampleRate float64
	amount     float32
	mode       int

	hpL, hpR   onePole
	envL, envR onePole
}

func newEnhancerEffect(sampleRate float64) *enhancerEffect {
	e := &enhancerEffect{
		sampleRate: sampleRate,
		amount:     0.5,
		mode:       0,
	}
	e.hpL.setCutoff(3000, sampleRate)
	e.hpR.setCutoff(3000, sampleRate)
	e.envL.setCutoff(50, sampleRate)
	e.envR.setCutoff(50, sampleRate)
	return e
}

func (e *enhancerEffect) processOne(dry float32, hp, env *onePole) float32 {
	m := enhancerModes[e.mode]

	hp.setCutoff(m.exciterFreq, e.sampleRate)

	sat := saturate(dry, m.satDrive*e.amount)
	highs := dry - hp.process(dry)
	excited := saturate(highs*2.0, 0.5) * m.exciterAmt * e.amount

	envVal := env.process(float32(math.Abs(float64(sat))))
	gain := 1.0 / (1.0 + envVal*m.compression*e.amount*2.0)

	wet := (sat + excited) * gain
	out := dry*(1-e.amount) + wet*e.amount
	return clampF32(out, -1, 1)
}

func (e *enhancerEffect) Process(left, right []float32) {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		left[i] = e.processOne(left[i], &e.hpL, &e.envL)
		right[i] = e.processOne(right[i], &e.hpR, &e.envR)
	}
}

func (e *enhancerEffect) SetParam(id ParamID, value float32) {
	switch id {
	case EnhancerAmount:
		e.amount = clampF32(value, 0, 1)
	case EnhancerMode:
		idx := int(value)
		if idx < 0 {
			idx = 0
		}
		if idx > len(enhancerModes)-1 {
			idx = len(enhancerModes) - 1
		}
		e.mode = idx
	}
}

func (e *enhancerEffect) GetParam(id ParamID) float32 {
	switch id {
	case EnhancerAmount:
		return e.amount
	case EnhancerMode:
		return float32(e.mode)
	default:
		return 0
	}
}

func (e *enhancerEffect) SetSampleRate(hz float64) {
	e.sampleRate = hz
	e.hpL = onePole{}
	e.hpR = onePole{}
	e.envL = onePole{}
	e.envR = onePole{}
	e.hpL.setCutoff(3000, hz)
	e.hpR.setCutoff(3000, hz)
	e.envL.setCutoff(50, hz)
	e.envR.setCutoff(50, hz)
}

func (e *enhancerEffect) SetTempo(bpm float64) {}

func (e *enhancerEffect) Reset() {
	e.hpL.reset()
	e.hpR.reset()
	e.envL.reset()
	e.envR.reset()
}

func (e *enhancerEffect) Type() Type { return TypeEnhancer }
