package engine

// processPlugins drives every active plugin channel for this block,
// draining its pending notes/params, invoking its processor, and
// accumulating its scaled output into the channel's routed track.
func (s *AudioState) processPlugins(numFrames int) {
	for channelIdx, pc := range s.plugins {
		if pc == nil {
			continue
		}
		pc.ensureOutputs(numFrames)

		notes := pc.PendingNotes
		params := pc.PendingParams
		pc.PendingNotes = nil
		pc.PendingParams = nil

		pc.Processor.Process(notes, params, pc.OutputLeft[:numFrames], pc.OutputRight[:numFrames])

		targetTrack := 1
		if channelIdx >= 0 && channelIdx < MaxGenerators {
			targetTrack = s.routing[channelIdx]
		}
		if targetTrack < 0 || targetTrack >= NumTracks {
			targetTrack = 1
		}

		track := &s.tracks[targetTrack].Buffer
		for i := 0; i < numFrames; i++ {
			track.Left[i] += pc.OutputLeft[i] * pc.Volume
			track.Right[i] += pc.OutputRight[i] * pc.Volume
		}
	}
}
