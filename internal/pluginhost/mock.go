package pluginhost

import (
	"math"
	"sort"

	"github.com/termdaw/engine/pkg/midi"
)

// MockProcessor is a deterministic stand-in for a hosted plugin that
// needs no real CLAP bundle. It
// tracks the notes currently held down and emits a simple additive sine
// voice per held note, which is enough to exercise routing, volume, and
// the plugin stage's buffer lifecycle without depending on an actual
// plugin binary being present on the test machine.
type MockProcessor struct {
	SampleRate float64

	held   map[uint8]float64 // note -> phase
	amount float64           // last param value seen, for assertions
	closed bool
}

// NewMockProcessor returns a MockProcessor ready to Process blocks at the
// given sample rate.
func NewMockProcessor(sampleRate float64) *MockProcessor {
	return &MockProcessor{SampleRate: sampleRate, held: make(map[uint8]float64)}
}

func (m *MockProcessor) Process(notes []MidiNote, params []ParamChange, outLeft, outRight []float32) {
	for _, n := range notes {
		if n.IsNoteOn {
			if _, ok := m.held[n.Note]; !ok {
				m.held[n.Note] = 0
			}
		} else {
			delete(m.held, n.Note)
		}
	}
	for _, p := range params {
		m.amount = p.Value
	}

	for i := range outLeft {
		outLeft[i] = 0
		outRight[i] = 0
	}
	if m.SampleRate <= 0 {
		return
	}

	// Accumulate in ascending note order: map iteration order is
	// randomized and floating-point addition is not associative, which
	// would make offline renders non-reproducible across runs.
	notesHeld := make([]uint8, 0, len(m.held))
	for note := range m.held {
		notesHeld = append(notesHeld, note)
	}
	sort.Slice(notesHeld, func(i, j int) bool { return notesHeld[i] < notesHeld[j] })

	for _, note := range notesHeld {
		freq := midi.NoteToFrequency(note, 440.0)
		step := 2 * math.Pi * freq / m.SampleRate
		p := m.held[note]
		for i := range outLeft {
			s := float32(math.Sin(p)) * 0.2
			outLeft[i] += s
			outRight[i] += s
			p += step
		}
		m.held[note] = p
	}
}

func (m *MockProcessor) Close() { m.closed = true }

// Closed reports whether Close has been called, for test assertions.
func (m *MockProcessor) Closed() bool { return m.closed }
