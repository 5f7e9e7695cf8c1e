package mix

import (
	"math"
	"testing"
)

func TestDryWet(t *testing.T) {
	tests := []struct {
		name     string
		dry      float32
		wet      float32
		amount   float32
		expected float32
	}{
		{"100% dry", 1.0, 0.5, 0.0, 1.0},
		{"100% wet", 1.0, 0.5, 1.0, 0.5},
		{"50/50 mix", 1.0, 0.5, 0.5, 0.75},
		{"25% wet", 1.0, 0.0, 0.25, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DryWet(tt.dry, tt.wet, tt.amount)
			if math.Abs(float64(result-tt.expected)) > 0.001 {
				t.Errorf("DryWet(%f, %f, %f) = %f, want %f",
					tt.dry, tt.wet, tt.amount, result, tt.expected)
			}
		})
	}
}

func TestDryWetBuffer(t *testing.T) {
	dry := []float32{1.0, 1.0, 1.0, 1.0}
	wet := []float32{0.0, 0.0, 0.0, 0.0}
	amount := float32(0.5)

	DryWetBuffer(dry, wet, amount)

	for i, v := range dry {
		expected := float32(0.5)
		if math.Abs(float64(v-expected)) > 0.001 {
			t.Errorf("DryWetBuffer: dry[%d] = %f, want %f", i, v, expected)
		}
	}
}

func TestSumWeighted(t *testing.T) {
	buffers := [][]float32{
		{1.0, 1.0, 1.0, 1.0},
		{1.0, 1.0, 1.0, 1.0},
	}
	gains := []float32{0.5, 0.25}
	dst := make([]float32, 4)
	expected := float32(0.75)

	SumWeighted(buffers, gains, dst)

	for i, v := range dst {
		if math.Abs(float64(v-expected)) > 0.001 {
			t.Errorf("SumWeighted: dst[%d] = %f, want %f", i, v, expected)
		}
	}
}

func TestSumWeightedAccumulates(t *testing.T) {
	dst := []float32{1.0, 1.0}
	buffers := [][]float32{{1.0, 1.0}}
	gains := []float32{1.0}

	SumWeighted(buffers, gains, dst)

	for i, v := range dst {
		if v != 2.0 {
			t.Errorf("SumWeighted should add onto existing dst[%d] = %f, want 2.0", i, v)
		}
	}
}

func BenchmarkDryWetBuffer(b *testing.B) {
	dry := make([]float32, 512)
	wet := make([]float32, 512)

	for i := range dry {
		dry[i] = 0.5
		wet[i] = 0.25
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DryWetBuffer(dry, wet, 0.5)
	}
}
