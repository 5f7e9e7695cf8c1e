package filter

import (
	"math"
	"testing"
)

func sineTone(freqHz, sampleRate float64, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * freqHz * float64(i) / sampleRate))
	}
	return out
}

func rms(buf []float32) float64 {
	var sum float64
	for _, v := range buf {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(buf)))
}

func TestSVFSilenceInSilenceOut(t *testing.T) {
	s := NewSVF()
	s.SetCoefficients(1000, 0.5, 44100)
	left := make([]float32, 256)
	right := make([]float32, 256)

	s.ProcessStereo(left, right, LowPass)

	peak := float32(0)
	for _, v := range left {
		if v > peak || -v > peak {
			peak = float32(math.Abs(float64(v)))
		}
	}
	if peak >= 1e-6 {
		t.Errorf("silence in produced peak %g, want < 1e-6", peak)
	}
}

func TestSVFResetClearsState(t *testing.T) {
	s := NewSVF()
	s.SetCoefficients(1000, 0.9, 44100)

	tone := sineTone(440, 44100, 1024)
	toneR := make([]float32, len(tone))
	copy(toneR, tone)
	s.ProcessStereo(tone, toneR, LowPass)

	s.Reset()

	silence := make([]float32, 256)
	silenceR := make([]float32, 256)
	s.ProcessStereo(silence, silenceR, LowPass)

	peak := 0.0
	for _, v := range silence {
		if math.Abs(float64(v)) > peak {
			peak = math.Abs(float64(v))
		}
	}
	if peak >= 1e-3 {
		t.Errorf("reset left residual peak %g, want < 1e-3", peak)
	}
}

func TestSVFLowPassAttenuatesHighs(t *testing.T) {
	s := NewSVF()
	s.SetCoefficients(1000, 0.5, 44100)

	low := sineTone(100, 44100, 4096)
	lowR := make([]float32, len(low))
	copy(lowR, low)
	inputRMS := rms(low)
	s.ProcessStereo(low, lowR, LowPass)
	outRMS := rms(low)

	dbDelta := 20 * math.Log10(outRMS/inputRMS)
	if math.Abs(dbDelta) > 3 {
		t.Errorf("100Hz through 1kHz lowpass changed by %.2f dB, want within 3dB", dbDelta)
	}

	s2 := NewSVF()
	s2.SetCoefficients(1000, 0.5, 44100)
	high := sineTone(10000, 44100, 4096)
	highR := make([]float32, len(high))
	copy(highR, high)
	inHighRMS := rms(high)
	s2.ProcessStereo(high, highR, LowPass)
	outHighRMS := rms(high)

	dbHigh := 20 * math.Log10(outHighRMS/inHighRMS)
	if dbHigh > -12 {
		t.Errorf("10kHz through 1kHz lowpass only attenuated %.2f dB, want at least 12dB", dbHigh)
	}
}
