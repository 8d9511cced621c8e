package cue

import (
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
)

var ErrNoAudio = errors.New("audio output unavailable")

// Player plays cues on the default output. The speaker is opened on first use;
// if that fails the player stays silent.
type Player struct {
	mu     sync.Mutex
	ready  bool
	failed bool
	Muted  bool
}

func (p *Player) init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.ready:
		return nil
	case p.failed:
		return ErrNoAudio
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/20)); err != nil {
		p.failed = true
		return errors.Wrap(ErrNoAudio, err.Error())
	}
	p.ready = true
	return nil
}

// Play queues s. A muted player drops it.
func (p *Player) Play(s beep.Streamer) error {
	if p.Muted {
		return nil
	}
	if err := p.init(); err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}

// Silence drops anything still queued.
func (p *Player) Silence() {
	p.mu.Lock()
	ready := p.ready
	p.mu.Unlock()
	if !ready {
		return
	}
	speaker.Clear()
}
