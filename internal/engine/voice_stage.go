package engine

// getOrLoadSample returns the cached Sample for path, loading and caching
// it on first reference. Load failures are silent: the command that
// triggered them becomes a no-op, per the core's error-handling contract.
func (s *AudioState) getOrLoadSample(path string) *Sample {
	if sample, ok := s.cache[path]; ok {
		return sample
	}
	if s.loader == nil {
		return nil
	}
	sample, err := s.loader(path)
	if err != nil || sample == nil {
		return nil
	}
	s.cache[path] = sample
	return sample
}

func (s *AudioState) dropPreviewVoices() {
	kept := s.voices[:0]
	for _, v := range s.voices {
		if v.Kind != PreviewExclusive {
			kept = append(kept, v)
		}
	}
	s.voices = kept
}

func (s *AudioState) evictOldestNonPreview() {
	for i, v := range s.voices {
		if v.Kind != PreviewExclusive {
			s.voices = append(s.voices[:i], s.voices[i+1:]...)
			return
		}
	}
}

func (s *AudioState) playSample(path string, volume float32, generatorIdx int, kind VoiceKind, routeToMaster bool) {
	sample := s.getOrLoadSample(path)
	if sample == nil {
		return
	}
	if len(s.voices) >= MaxVoices {
		s.evictOldestNonPreview()
	}
	if len(s.voices) >= MaxVoices {
		// Every live voice is a preview; nothing left to evict. Drop the
		// new voice rather than exceed the cap.
		return
	}
	s.voices = append(s.voices, &Voice{
		Sample:        sample,
		Volume:        volume,
		Kind:          kind,
		GeneratorIdx:  generatorIdx,
		RouteToMaster: routeToMaster,
	})
}

// processVoices advances every active voice by numFrames, resampling at a
// constant nearest-frame ratio and accumulating into its target track.
// Finished voices (reached end-of-sample this block) are removed after
// accumulation.
func (s *AudioState) processVoices(numFrames int) {
	survivors := s.voices[:0]
	for _, v := range s.voices {
		finished := s.accumulateVoice(v, numFrames)
		if !finished {
			survivors = append(survivors, v)
		}
	}
	s.voices = survivors
}

// accumulateVoice renders v into its target track buffer and returns
// whether it reached end-of-sample this block.
func (s *AudioState) accumulateVoice(v *Voice, numFrames int) bool {
	target := v.GeneratorIdx
	targetTrack := 1
	if v.RouteToMaster {
		targetTrack = 0
	} else if target >= 0 && target < MaxGenerators {
		targetTrack = s.routing[target]
	}
	if targetTrack < 0 || targetTrack >= NumTracks {
		targetTrack = 1
	}

	ratio := v.Sample.SourceRate / s.outputSampleRate
	frames := v.Sample.NumFrames()
	channels := v.Sample.Channels
	data := v.Sample.Frames

	track := &s.tracks[targetTrack].Buffer
	produced := 0
	finished := false

	for i := 0; i < numFrames; i++ {
		srcFrame := int(float64(v.Position+i) * ratio)
		if srcFrame >= frames {
			finished = true
			break
		}

		var left, right float32
		if channels == 1 {
			sm := data[srcFrame] * v.Volume
			left, right = sm, sm
		} else {
			idx := srcFrame * 2
			if idx+1 < len(data) {
				left = data[idx] * v.Volume
				right = data[idx+1] * v.Volume
			}
		}

		track.Left[i] += left
		track.Right[i] += right
		produced++
	}

	v.Position += produced
	return finished
}
