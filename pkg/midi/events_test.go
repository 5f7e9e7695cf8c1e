package midi

import "testing"

func TestNoteToFrequency(t *testing.T) {
	tests := []struct {
		note uint8
		freq float64
	}{
		{69, 440.0},  // A4
		{60, 261.63}, // Middle C (C4)
		{57, 220.0},  // A3
		{81, 880.0},  // A5
	}

	for _, tt := range tests {
		freq := NoteToFrequency(tt.note, 440.0)
		if diff := freq - tt.freq; diff > 0.1 || diff < -0.1 {
			t.Errorf("NoteToFrequency(%d) = %f, want %f", tt.note, freq, tt.freq)
		}
	}
}

func TestNoteToFrequencyDefaultsTuningWhenZero(t *testing.T) {
	if got := NoteToFrequency(69, 0); got != 440.0 {
		t.Errorf("NoteToFrequency(69, 0) = %f, want 440.0 (default A4 tuning)", got)
	}
}
