package cue

import (
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// SyncTrack is cycles loop periods of silence with a click at the start of
// each, for lining a recording up against music in an editor.
func SyncTrack(loop time.Duration, cycles int) beep.Streamer {
	period := SampleRate.N(loop)
	click := min(SampleRate.N(clickLen), period)
	total := period * cycles
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < total; i++ {
			var v float64
			if off := pos % period; off < click {
				v = envelope(off, click, clickFreq, clickGain)
			}
			samples[i] = [2]float64{v, v}
			pos++
		}
		return i, true
	})
}

// WriteSyncTrack encodes SyncTrack as a WAV file at path.
func WriteSyncTrack(path string, loop time.Duration, cycles int) error {
	if loop <= 0 || cycles <= 0 || SampleRate.N(loop) == 0 {
		return errors.Errorf("invalid sync track %v x %d", loop, cycles)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create sync track")
	}
	if err := wav.Encode(f, SyncTrack(loop, cycles), Format); err != nil {
		f.Close()
		os.Remove(path)
		return errors.Wrap(err, "encode sync track")
	}
	return errors.Wrap(f.Close(), "close sync track")
}
