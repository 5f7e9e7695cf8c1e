// Package midi provides MIDI note/frequency conversion used by hosted
// plugin channels.
package midi

import "math"

// NoteToFrequency converts a MIDI note number to Hz against tuningA4
// (440.0 if zero), using equal temperament.
func NoteToFrequency(note uint8, tuningA4 float64) float64 {
	if tuningA4 == 0 {
		tuningA4 = 440.0
	}
	return tuningA4 * pow2((float64(note)-69.0)/12.0)
}

func pow2(x float64) float64 {
	return math.Exp2(x)
}
