package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Scopes follow the companion depth; voice:input captures keys while the
// voice prompt is open.
const (
	scopePlayer        = "player"
	scopeCompanionRoot = "companion:root"
	scopeEntity        = "companion:entity"
	scopeAction        = "companion:action"
	scopeVoiceInput    = "voice:input"
	anyScope           = "*"
)

const (
	actionQuit           = "quit"
	actionTogglePlayback = "toggle-playback"
	actionUp             = "up"
	actionDown           = "down"
	actionSelect         = "select"
	actionBack           = "back"
	actionClose          = "close"
	actionToggleVoice    = "toggle-voice"
	actionVoiceCommand   = "voice-command"
	actionVoiceSubmit    = "voice-submit"
	actionVoiceCancel    = "voice-cancel"
)

var companionScopes = []string{scopeCompanionRoot, scopeEntity, scopeAction}

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

// KeyRegistry resolves a key press in a scope to one action. When two
// bindings claim the same key in a scope the earlier one wins.
type KeyRegistry struct {
	bindings []KeyBinding
	actions  map[string]map[string]string // scope -> key -> action
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	r := &KeyRegistry{
		bindings: slices.Clone(bindings),
		actions:  make(map[string]map[string]string),
	}
	for _, b := range r.bindings {
		scopes := b.Scopes
		if len(scopes) == 0 {
			scopes = []string{anyScope}
		}
		for _, scope := range scopes {
			keys := r.actions[scope]
			if keys == nil {
				keys = make(map[string]string)
				r.actions[scope] = keys
			}
			for _, k := range b.Keys {
				if _, taken := keys[normalizeKey(k)]; !taken {
					keys[normalizeKey(k)] = b.Action
				}
			}
		}
	}
	return r
}

// Action returns the action bound to msg in scope, or "" when none is.
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) string {
	k := normalizeKey(msg.String())
	if a, ok := r.actions[scope][k]; ok {
		return a
	}
	return r.actions[anyScope][k]
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	return action != "" && r.Action(msg, scope) == action
}

// BindingsForScope lists the bindings visible in scope, for the footer.
func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	var out []KeyBinding
	for _, b := range r.bindings {
		if len(b.Scopes) == 0 || slices.Contains(b.Scopes, anyScope) || slices.Contains(b.Scopes, scope) {
			out = append(out, b)
		}
	}
	return out
}

// normalizeKey folds bubbletea's " " for the space bar into "space".
func normalizeKey(k string) string {
	if k == " " {
		return "space"
	}
	return strings.ToLower(strings.TrimSpace(k))
}

func DefaultKeyBindings() []KeyBinding {
	playerAndCompanion := append([]string{scopePlayer}, companionScopes...)
	return []KeyBinding{
		{Keys: []string{"space"}, Action: actionTogglePlayback, Description: "play/pause", Scopes: playerAndCompanion},
		{Keys: []string{"up", "k"}, Action: actionUp, Description: "up", Scopes: companionScopes},
		{Keys: []string{"down", "j"}, Action: actionDown, Description: "down", Scopes: companionScopes},
		{Keys: []string{"enter"}, Action: actionSelect, Description: "select", Scopes: companionScopes},
		{Keys: []string{"esc", "backspace"}, Action: actionBack, Description: "back", Scopes: []string{scopeEntity, scopeAction}},
		{Keys: []string{"c"}, Action: actionClose, Description: "close", Scopes: companionScopes},
		{Keys: []string{"v"}, Action: actionToggleVoice, Description: "voice", Scopes: []string{scopeCompanionRoot}},
		{Keys: []string{"/"}, Action: actionVoiceCommand, Description: "speak", Scopes: []string{scopeCompanionRoot}},
		{Keys: []string{"enter"}, Action: actionVoiceSubmit, Description: "submit", Scopes: []string{scopeVoiceInput}},
		{Keys: []string{"esc"}, Action: actionVoiceCancel, Description: "cancel", Scopes: []string{scopeVoiceInput}},
		{Keys: []string{"q"}, Action: actionQuit, Description: "quit", Scopes: playerAndCompanion},
	}
}

// ApplyActionKeybindings returns a copy of bindings with the keys of every
// action named in overrides replaced, as read from the [keys] config table.
func ApplyActionKeybindings(bindings []KeyBinding, overrides map[string][]string) []KeyBinding {
	out := make([]KeyBinding, len(bindings))
	for i, b := range bindings {
		keys := b.Keys
		if o := overrides[b.Action]; len(o) > 0 {
			keys = o
		}
		out[i] = KeyBinding{
			Keys:        slices.Clone(keys),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      slices.Clone(b.Scopes),
		}
	}
	return out
}
