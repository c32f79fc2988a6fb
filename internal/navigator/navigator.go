// Package navigator implements the companion overlay state machine:
// visibility driven by playback, a three-level drill-down (root, entity,
// action) with single-step back, and a voice-mode rendering flag.
//
// Every exported method is synchronous and applies one transition under
// the navigator's lock, so events from concurrent callers are serialized.
package navigator

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/jask/scenecompanion/internal/catalog"
)

// ErrInvalidSelection is returned when a selection is not offered by the
// current view. The navigator state is left unchanged.
var ErrInvalidSelection = errors.New("invalid selection")

// Depth is the drill-down level while the overlay is visible.
type Depth int

const (
	DepthRoot Depth = iota
	DepthEntity
	DepthAction
)

func (d Depth) String() string {
	switch d {
	case DepthRoot:
		return "root"
	case DepthEntity:
		return "entity"
	case DepthAction:
		return "action"
	default:
		return fmt.Sprintf("depth(%d)", int(d))
	}
}

// VoicePolicy decides what happens to voice mode when the overlay hides.
type VoicePolicy string

const (
	// VoiceReset clears voice mode on hide so each session starts with it off.
	VoiceReset VoicePolicy = "reset"
	// VoiceRetain keeps voice mode across hide/show cycles.
	VoiceRetain VoicePolicy = "retain"
)

// ParseVoicePolicy returns the policy named s.
func ParseVoicePolicy(s string) (VoicePolicy, error) {
	switch VoicePolicy(s) {
	case VoiceReset, VoiceRetain:
		return VoicePolicy(s), nil
	default:
		return "", fmt.Errorf("unknown voice policy %q", s)
	}
}

// State is a snapshot of the navigator.
type State struct {
	Visible bool
	Depth   Depth
	// TopicID is empty at root. ActionIndex is -1 unless Depth is DepthAction.
	TopicID     string
	ActionIndex int
	VoiceMode   bool
	// Session identifies the current visible session; empty while hidden.
	Session string
}

type Option func(*Navigator)

func WithVoicePolicy(p VoicePolicy) Option {
	return func(n *Navigator) { n.policy = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithSessionIDs replaces the session id generator.
func WithSessionIDs(fn func() string) Option {
	return func(n *Navigator) {
		if fn != nil {
			n.newSession = fn
		}
	}
}

type Navigator struct {
	mu         sync.Mutex
	cat        *catalog.Catalog
	policy     VoicePolicy
	logger     *slog.Logger
	newSession func() string
	observers  []func(State)

	visible bool
	stack   frameStack
	voice   bool
	session string
}

// New returns a hidden navigator over cat.
func New(cat *catalog.Catalog, opts ...Option) *Navigator {
	n := &Navigator{
		cat:        cat,
		policy:     VoiceReset,
		logger:     slog.New(slog.DiscardHandler),
		newSession: uuid.NewString,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Catalog returns the catalog the navigator renders from.
func (n *Navigator) Catalog() *catalog.Catalog {
	return n.cat
}

// Observe registers fn to be called with the new state after every
// transition that changed something. Observers run outside the lock.
func (n *Navigator) Observe(fn func(State)) {
	if fn == nil {
		return
	}
	n.mu.Lock()
	n.observers = append(n.observers, fn)
	n.mu.Unlock()
}

// OnPause opens the overlay at root. Ignored while already visible.
func (n *Navigator) OnPause() {
	_ = n.apply("pause", func() (bool, error) {
		if n.visible {
			return false, nil
		}
		n.visible = true
		n.stack.Reset()
		n.session = n.newSession()
		return true, nil
	})
}

// OnPlay hides the overlay.
func (n *Navigator) OnPlay() {
	_ = n.apply("play", n.hide)
}

// Close hides the overlay without touching playback.
func (n *Navigator) Close() {
	_ = n.apply("close", n.hide)
}

func (n *Navigator) hide() (bool, error) {
	if !n.visible {
		return false, nil
	}
	n.visible = false
	n.stack.Reset()
	n.session = ""
	if n.policy != VoiceRetain {
		n.voice = false
	}
	return true, nil
}

// SelectTopic drills into topic id. Only valid at root.
func (n *Navigator) SelectTopic(id string) error {
	return n.apply("select-topic", func() (bool, error) {
		if !n.visible {
			return false, nil
		}
		if n.stack.Len() != 0 {
			return false, fmt.Errorf("%w: topic %q is not offered at %s depth", ErrInvalidSelection, id, n.depthLocked())
		}
		ti, ok := n.cat.Index(id)
		if !ok {
			return false, fmt.Errorf("%w: unknown topic %q", ErrInvalidSelection, id)
		}
		n.stack.Push(frame{topic: ti, action: -1})
		return true, nil
	})
}

// SelectAction drills into action index of the selected topic. Only valid
// at entity depth.
func (n *Navigator) SelectAction(index int) error {
	return n.apply("select-action", func() (bool, error) {
		if !n.visible {
			return false, nil
		}
		top, ok := n.stack.Top()
		if !ok || n.stack.Len() != 1 {
			return false, fmt.Errorf("%w: action %d is not offered at %s depth", ErrInvalidSelection, index, n.depthLocked())
		}
		if _, ok := n.cat.Action(top.topic, index); !ok {
			return false, fmt.Errorf("%w: action %d out of range", ErrInvalidSelection, index)
		}
		n.stack.Push(frame{topic: top.topic, action: index})
		return true, nil
	})
}

// Back pops one level. At root it does nothing.
func (n *Navigator) Back() {
	_ = n.apply("back", func() (bool, error) {
		if !n.visible {
			return false, nil
		}
		_, popped := n.stack.Pop()
		return popped, nil
	})
}

// ToggleVoiceMode flips voice mode. It only has an effect at root.
func (n *Navigator) ToggleVoiceMode() {
	_ = n.apply("toggle-voice", func() (bool, error) {
		if !n.visible || n.stack.Len() != 0 {
			return false, nil
		}
		n.voice = !n.voice
		return true, nil
	})
}

func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stateLocked()
}

func (n *Navigator) apply(event string, fn func() (bool, error)) error {
	n.mu.Lock()
	changed, err := fn()
	st := n.stateLocked()
	var observers []func(State)
	if changed {
		observers = slices.Clone(n.observers)
	}
	n.mu.Unlock()

	if err != nil {
		n.logger.Debug("companion selection rejected", "event", event, "session", st.Session, "error", err)
		return err
	}
	if !changed {
		return nil
	}
	n.logger.Debug("companion transition",
		"event", event,
		"session", st.Session,
		"visible", st.Visible,
		"depth", st.Depth.String(),
		"topic", st.TopicID,
		"voice", st.VoiceMode,
	)
	for _, obs := range observers {
		obs(st)
	}
	return nil
}

func (n *Navigator) depthLocked() Depth {
	return Depth(n.stack.Len())
}

func (n *Navigator) stateLocked() State {
	st := State{
		Visible:     n.visible,
		ActionIndex: -1,
		VoiceMode:   n.voice,
		Session:     n.session,
	}
	if !n.visible {
		return st
	}
	st.Depth = n.depthLocked()
	if top, ok := n.stack.Top(); ok {
		if t, ok := n.cat.TopicAt(top.topic); ok {
			st.TopicID = t.ID
		}
		st.ActionIndex = top.action
	}
	return st
}
