package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/scenecompanion/internal/catalog"
	"github.com/jask/scenecompanion/internal/navigator"
	"github.com/jask/scenecompanion/internal/player"
	"github.com/jask/scenecompanion/internal/voice"
)

// Options tunes the terminal player.
type Options struct {
	Tick   time.Duration
	Keys   map[string][]string
	Logger *slog.Logger
}

// App is the bubbletea model hosting the player and the companion overlay.
type App struct {
	nav      *navigator.Navigator
	player   *player.Player
	resolver *voice.Resolver
	keys     *KeyRegistry
	logger   *slog.Logger
	tick     time.Duration

	width     int
	height    int
	cursor    int
	session   string
	listening bool
	input     textinput.Model
	status    string
	statusErr bool
	quitting  bool
}

type tickMsg time.Time

// New builds the app. The player must already notify nav.
func New(nav *navigator.Navigator, p *player.Player, opts Options) *App {
	if opts.Tick <= 0 {
		opts.Tick = 250 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	in := textinput.New()
	in.Prompt = "🎤 "
	in.Placeholder = "Tell me about the location"
	in.CharLimit = 80

	return &App{
		nav:      nav,
		player:   p,
		resolver: voice.NewResolver(nav.Catalog().Topics()),
		keys:     NewKeyRegistry(ApplyActionKeybindings(DefaultKeyBindings(), opts.Keys)),
		logger:   opts.Logger,
		tick:     opts.Tick,
		input:    in,
		width:    100,
		height:   32,
		status:   "Press space to pause",
	}
}

func (a *App) Init() tea.Cmd {
	return a.tickCmd()
}

func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(a.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case tickMsg:
		a.player.Advance(a.tick)
		a.syncSession()
		return a, a.tickCmd()
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			a.quitting = true
			return a, tea.Quit
		}
		if a.listening {
			return a, a.handleVoiceKey(m)
		}
		cmd := a.handleKey(m)
		a.syncSession()
		return a, cmd
	}
	return a, nil
}

func (a *App) scope() string {
	if a.listening {
		return scopeVoiceInput
	}
	switch a.nav.CurrentView().Kind {
	case navigator.KindRoot:
		return scopeCompanionRoot
	case navigator.KindEntity:
		return scopeEntity
	case navigator.KindAction:
		return scopeAction
	default:
		return scopePlayer
	}
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	switch a.keys.Action(m, a.scope()) {
	case actionQuit:
		a.quitting = true
		return tea.Quit
	case actionTogglePlayback:
		if a.player.Toggle() {
			a.setStatus("Paused")
		} else {
			a.setStatus("Playing")
		}
	case actionUp:
		if a.cursor > 0 {
			a.cursor--
		}
	case actionDown:
		if a.cursor < a.optionCount()-1 {
			a.cursor++
		}
	case actionSelect:
		a.selectAtCursor()
	case actionBack:
		a.back()
	case actionClose:
		a.nav.Close()
		a.setStatus("Companion closed; press space to resume")
	case actionToggleVoice:
		a.nav.ToggleVoiceMode()
		if a.nav.State().VoiceMode {
			a.setStatus("Voice mode on; press / to speak")
		} else {
			a.setStatus("Voice mode off")
		}
	case actionVoiceCommand:
		if a.nav.State().VoiceMode {
			a.listening = true
			return a.input.Focus()
		}
		a.setError(errors.New("voice mode is off; press v to enable it"))
	}
	return nil
}

func (a *App) handleVoiceKey(m tea.KeyMsg) tea.Cmd {
	switch a.keys.Action(m, scopeVoiceInput) {
	case actionVoiceCancel:
		a.stopListening()
		return nil
	case actionVoiceSubmit:
		utterance := a.input.Value()
		a.stopListening()
		id, ok := a.resolver.Resolve(utterance)
		if !ok {
			a.setError(fmt.Errorf("didn't catch that: %q", utterance))
			return nil
		}
		a.logger.Info("voice command resolved", "utterance", utterance, "topic", id, "session", a.session)
		if err := a.nav.SelectTopic(id); err != nil {
			a.setError(err)
			return nil
		}
		a.cursor = 0
		a.setStatus("")
		a.syncSession()
		return nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return cmd
}

func (a *App) stopListening() {
	a.listening = false
	a.input.Blur()
	a.input.Reset()
}

func (a *App) optionCount() int {
	v := a.nav.CurrentView()
	switch v.Kind {
	case navigator.KindRoot:
		return len(v.Root.Topics)
	case navigator.KindEntity:
		return len(v.Entity.Actions)
	case navigator.KindAction:
		return len(v.Action.Items)
	default:
		return 0
	}
}

func (a *App) selectAtCursor() {
	v := a.nav.CurrentView()
	var err error
	switch v.Kind {
	case navigator.KindRoot:
		if a.cursor >= len(v.Root.Topics) {
			return
		}
		err = a.nav.SelectTopic(v.Root.Topics[a.cursor].ID)
	case navigator.KindEntity:
		err = a.nav.SelectAction(a.cursor)
	case navigator.KindAction:
		if a.cursor >= len(v.Action.Items) {
			return
		}
		item := v.Action.Items[a.cursor]
		msg := catalog.Present(v.Action.Type).Verb + ": " + item.Title
		if item.URL != "" {
			msg += " (" + item.URL + ")"
		}
		a.setStatus(msg)
		return
	default:
		return
	}
	if err != nil {
		a.setError(err)
		return
	}
	a.cursor = 0
	a.setStatus("")
}

// back pops one level and puts the cursor on the entry we came from.
func (a *App) back() {
	before := a.nav.State()
	a.nav.Back()
	switch before.Depth {
	case navigator.DepthAction:
		a.cursor = before.ActionIndex
	case navigator.DepthEntity:
		a.cursor, _ = a.nav.Catalog().Index(before.TopicID)
	}
}

// syncSession resets per-session UI state when the overlay opens or hides.
func (a *App) syncSession() {
	st := a.nav.State()
	if st.Session == a.session {
		return
	}
	a.session = st.Session
	a.cursor = 0
	if a.listening {
		a.stopListening()
	}
	if st.Visible {
		a.logger.Info("companion opened", "session", st.Session)
	}
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(err error) {
	if err == nil {
		a.setStatus("")
		return
	}
	a.status = err.Error()
	a.statusErr = true
	if errors.Is(err, navigator.ErrInvalidSelection) {
		a.logger.Warn("invalid selection", "session", a.session, "error", err)
	}
}
