// Package player simulates a single media source with play/pause state.
package player

import (
	"slices"
	"sync"
	"time"
)

// Listener receives playback transitions. Each method fires once per actual
// transition and must not block.
type Listener interface {
	OnPause()
	OnPlay()
}

// Player is a simulated media source. It starts playing at position zero.
type Player struct {
	mu        sync.Mutex
	title     string
	duration  time.Duration
	position  time.Duration
	paused    bool
	listeners []Listener
}

func New(title string, duration time.Duration) *Player {
	return &Player{title: title, duration: duration}
}

func (p *Player) Subscribe(l Listener) {
	if l == nil {
		return
	}
	p.mu.Lock()
	p.listeners = append(p.listeners, l)
	p.mu.Unlock()
}

func (p *Player) Title() string {
	return p.title
}

func (p *Player) Duration() time.Duration {
	return p.duration
}

func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// Play resumes playback. At the end of media it restarts from zero.
func (p *Player) Play() {
	p.mu.Lock()
	if !p.paused {
		p.mu.Unlock()
		return
	}
	p.paused = false
	if p.duration > 0 && p.position >= p.duration {
		p.position = 0
	}
	listeners := slices.Clone(p.listeners)
	p.mu.Unlock()

	for _, l := range listeners {
		l.OnPlay()
	}
}

func (p *Player) Pause() {
	p.mu.Lock()
	if p.paused {
		p.mu.Unlock()
		return
	}
	p.paused = true
	listeners := slices.Clone(p.listeners)
	p.mu.Unlock()

	p.notifyPause(listeners)
}

// Toggle flips play/pause and reports whether playback is now paused.
func (p *Player) Toggle() bool {
	if p.Paused() {
		p.Play()
		return false
	}
	p.Pause()
	return true
}

// Advance moves the playhead forward by d while playing. Reaching the end
// of media pauses playback.
func (p *Player) Advance(d time.Duration) {
	p.mu.Lock()
	if p.paused || d <= 0 {
		p.mu.Unlock()
		return
	}
	p.position += d
	if p.duration <= 0 || p.position < p.duration {
		p.mu.Unlock()
		return
	}
	p.position = p.duration
	p.paused = true
	listeners := slices.Clone(p.listeners)
	p.mu.Unlock()

	p.notifyPause(listeners)
}

// Progress returns the playhead as a fraction of the duration.
func (p *Player) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.duration <= 0 {
		return 0
	}
	return float64(p.position) / float64(p.duration)
}

func (p *Player) notifyPause(listeners []Listener) {
	for _, l := range listeners {
		l.OnPause()
	}
}
