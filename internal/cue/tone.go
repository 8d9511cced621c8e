// Package cue makes the short audio cues that mark recording start and stop,
// and the click track that marks every loop boundary of a recording.
package cue

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

const SampleRate beep.SampleRate = 44100

var Format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

const (
	clickFreq = 1760.0
	clickLen  = 15 * time.Millisecond
	clickGain = 0.8
)

// envelope is a decaying sine burst sampled at position pos of n.
func envelope(pos, n int, freq, gain float64) float64 {
	t := float64(pos) / float64(SampleRate)
	return gain * math.Exp(-6*float64(pos)/float64(n)) * math.Sin(2*math.Pi*freq*t)
}

// Tone is one decaying sine burst of length d.
func Tone(freq float64, d time.Duration, gain float64) beep.Streamer {
	n := SampleRate.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			v := envelope(pos, n, freq, gain)
			samples[i] = [2]float64{v, v}
			pos++
		}
		return i, true
	})
}

// StartCue rises, StopCue falls.
func StartCue() beep.Streamer {
	return beep.Seq(Tone(880, 90*time.Millisecond, 0.4), Tone(1320, 140*time.Millisecond, 0.4))
}

func StopCue() beep.Streamer {
	return beep.Seq(Tone(1320, 90*time.Millisecond, 0.4), Tone(880, 140*time.Millisecond, 0.4))
}
