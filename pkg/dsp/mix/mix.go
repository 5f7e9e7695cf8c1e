// Package mix provides audio mixing and dry/wet blending operations.
package mix

// DryWet performs a dry/wet mix between two signals.
// amount parameter: 0.0 = 100% dry, 1.0 = 100% wet
func DryWet(dry, wet, amount float32) float32 {
	return dry*(1.0-amount) + wet*amount
}

// DryWetBuffer performs in-place dry/wet mixing on audio buffers.
// amount parameter: 0.0 = 100% dry, 1.0 = 100% wet
func DryWetBuffer(dry, wet []float32, amount float32) {
	dryGain := 1.0 - amount
	wetGain := amount

	length := len(dry)
	if len(wet) < length {
		length = len(wet)
	}

	for i := 0; i < length; i++ {
		dry[i] = dry[i]*dryGain + wet[i]*wetGain
	}
}

// SumWeighted adds multiple buffers into dst with per-buffer gains, without
// clearing dst first (callers accumulate into an already-populated master).
func SumWeighted(buffers [][]float32, gains []float32, dst []float32) {
	for j, buffer := range buffers {
		gain := float32(1.0)
		if j < len(gains) {
			gain = gains[j]
		}
		if gain == 0 {
			continue
		}

		length := len(dst)
		if len(buffer) < length {
			length = len(buffer)
		}

		for i := 0; i < length; i++ {
			dst[i] += buffer[i] * gain
		}
	}
}
