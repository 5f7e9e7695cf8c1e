// Package filter provides digital signal processing filters
package filter

import "math"

// Mode selects which tap of the state-variable filter is returned.
type Mode int

const (
	LowPass Mode = iota
	HighPass
	BandPass
)

// FromFloat maps a raw float parameter value to a Mode the way the source
// project does: 0 -> LowPass, 1 -> HighPass, anything else -> BandPass.
func FromFloat(v float64) Mode {
	switch int(v) {
	case 0:
		return LowPass
	case 1:
		return HighPass
	default:
		return BandPass
	}
}

// state holds one channel's integrator memory.
type state struct {
	low  float64
	band float64
}

// SVF implements a Chamberlin-topology state variable filter with
// simultaneous low-pass, high-pass, and band-pass taps.
type SVF struct {
	g float64
	k float64

	stateL state
	stateR state
}

// NewSVF creates a Chamberlin SVF. Call SetCoefficients before processing.
func NewSVF() *SVF {
	return &SVF{}
}

// Reset clears the filter's integrator state but keeps coefficients.
func (s *SVF) Reset() {
	s.stateL = state{}
	s.stateR = state{}
}

// SetCoefficients derives g and k from cutoff, resonance, and sample rate.
// resonance is in [0, 1] and maps to Q = 0.5 + resonance*19.5.
func (s *SVF) SetCoefficients(cutoffHz, resonance, sampleRate float64) {
	q := 0.5 + resonance*19.5
	omega := math.Pi * cutoffHz / sampleRate
	s.g = math.Tan(omega)
	s.k = 1.0 / q
}

func processSample(x float64, st *state, g, k float64, mode Mode) float64 {
	high := (x - k*st.band - st.low) / (1.0 + k*g + g*g)
	band := g*high + st.band
	low := g*band + st.low

	st.band = band + g*high
	st.low = low + g*band

	switch mode {
	case HighPass:
		return high
	case BandPass:
		return band
	default:
		return low
	}
}

// ProcessStereo filters left and right in place using the selected mode.
func (s *SVF) ProcessStereo(left, right []float32, mode Mode) {
	g, k := s.g, s.k
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		left[i] = float32(processSample(float64(left[i]), &s.stateL, g, k, mode))
		right[i] = float32(processSample(float64(right[i]), &s.stateR, g, k, mode))
	}
}
