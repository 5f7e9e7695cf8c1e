package engine

import (
	"github.com/termdaw/engine/pkg/dsp/mix"
	"github.com/termdaw/engine/pkg/dsp/pan"
)

// processEffects runs each track's insert-effect chain in slot order.
// Bypassed slots are skipped but keep their effect's internal state
// running untouched; empty slots are skipped entirely.
func (s *AudioState) processEffects(numFrames int) {
	for t := range s.tracks {
		buf := &s.tracks[t].Buffer
		for i := range s.tracks[t].Effects {
			slot := s.tracks[t].Effects[i]
			if slot.Effect == nil || slot.Bypassed {
				continue
			}
			slot.Effect.Process(buf.Left[:numFrames], buf.Right[:numFrames])
		}
	}
}

// sumToMaster mixes tracks 1..NumTracks-1 into the master track buffer
// (track 0), applying each track's volume and pan gain and skipping
// muted tracks, then applies the master track's own volume/pan plus the
// separate top-level master volume knob to track 0.
func (s *AudioState) sumToMaster(numFrames int) {
	master := &s.tracks[0].Buffer

	leftBuffers := make([][]float32, 0, NumTracks-1)
	leftGains := make([]float32, 0, NumTracks-1)
	rightBuffers := make([][]float32, 0, NumTracks-1)
	rightGains := make([]float32, 0, NumTracks-1)

	for t := 1; t < NumTracks; t++ {
		if s.mixer.Mutes[t] {
			continue
		}
		volume := s.mixer.Volumes[t]
		panLeft, panRight := pan.Gains(s.mixer.Pans[t])
		buf := &s.tracks[t].Buffer
		leftBuffers = append(leftBuffers, buf.Left[:numFrames])
		leftGains = append(leftGains, volume*panLeft)
		rightBuffers = append(rightBuffers, buf.Right[:numFrames])
		rightGains = append(rightGains, volume*panRight)
	}

	mix.SumWeighted(leftBuffers, leftGains, master.Left[:numFrames])
	mix.SumWeighted(rightBuffers, rightGains, master.Right[:numFrames])

	masterVol := s.mixer.Volumes[0]
	masterPanLeft, masterPanRight := pan.Gains(s.mixer.Pans[0])
	for i := 0; i < numFrames; i++ {
		master.Left[i] *= masterVol * masterPanLeft * s.masterVolume
		master.Right[i] *= masterVol * masterPanRight * s.masterVolume
	}
}

// snapshotPeaksAndWaveform computes per-track peak levels (post-effects,
// and for the master track post-gain but pre-clip) and appends master
// samples to the shared waveform ring, both under try-lock. On lock
// contention the previous snapshot (or, for the waveform write position,
// the unchanged position) is left in place for that block.
func (s *AudioState) snapshotPeaksAndWaveform(numFrames int) {
	var peaks [NumTracks]StereoPeak
	for t := 0; t < NumTracks; t++ {
		buf := &s.tracks[t].Buffer
		var peakLeft, peakRight float32
		for i := 0; i < numFrames; i++ {
			if v := absF32(buf.Left[i]); v > peakLeft {
				peakLeft = v
			}
			if v := absF32(buf.Right[i]); v > peakRight {
				peakRight = v
			}
		}
		peaks[t] = StereoPeak{Left: minF32(peakLeft, 1.0), Right: minF32(peakRight, 1.0)}
	}

	if s.peaksMu.TryLock() {
		s.peaks = peaks
		s.peaksMu.Unlock()
	}

	master := &s.tracks[0].Buffer
	writePos := s.waveformWrite
	if s.waveformMu.TryLock() {
		for i := 0; i < numFrames; i++ {
			sample := (master.Left[i] + master.Right[i]) * 0.5
			s.waveform[writePos] = clampF32Sym(sample)
			writePos = (writePos + 1) % WaveformBufferSize
		}
		s.waveformMu.Unlock()
	}
	s.waveformWrite = writePos
}

// writeDevice clamps the master track to [-1, 1] and writes it into the
// interleaved device buffer, downmixing to mono if the device is mono.
func (s *AudioState) writeDevice(data []float32, numFrames, channels int) {
	master := &s.tracks[0].Buffer
	for frame := 0; frame < numFrames; frame++ {
		left := clampF32Sym(master.Left[frame])
		right := clampF32Sym(master.Right[frame])

		outIdx := frame * channels
		if outIdx >= len(data) {
			break
		}
		switch {
		case channels >= 2:
			data[outIdx] = left
			data[outIdx+1] = right
		case channels == 1:
			data[outIdx] = (left + right) * 0.5
		}
	}
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func clampF32Sym(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
