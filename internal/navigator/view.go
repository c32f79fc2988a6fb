package navigator

import "github.com/jask/scenecompanion/internal/catalog"

// VoiceHint is the advisory text shown at root while voice mode is on.
const VoiceHint = `Say "More about actors" or "Tell me about the location" to get started`

// Kind tags which payload of a View is set.
type Kind int

const (
	KindHidden Kind = iota
	KindRoot
	KindEntity
	KindAction
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindEntity:
		return "entity"
	case KindAction:
		return "action"
	default:
		return "hidden"
	}
}

// View is the payload the presentation layer renders. Exactly one of Root,
// Entity and Action is non-nil unless Kind is KindHidden.
type View struct {
	Kind   Kind
	Root   *RootView
	Entity *EntityView
	Action *ActionView
}

type TopicSummary struct {
	ID      string
	Title   string
	Icon    string
	Summary string
}

type ActionSummary struct {
	Type        catalog.ActionType
	Label       string
	Description string
	Icon        string
}

// BackTarget is where Back leads from the current view.
type BackTarget struct {
	Depth   Depth
	TopicID string
}

type RootView struct {
	Topics    []TopicSummary
	VoiceMode bool
	// VoiceHint is empty unless VoiceMode is set.
	VoiceHint string
}

type EntityView struct {
	TopicID string
	Title   string
	Icon    string
	Info    string
	Actions []ActionSummary
	Back    BackTarget
}

type ActionView struct {
	TopicID     string
	TopicTitle  string
	Index       int
	Type        catalog.ActionType
	Label       string
	Icon        string
	Description string
	Items       []catalog.Item
	Back        BackTarget
}

// CurrentView renders the current state. Re-query it after each transition.
func (n *Navigator) CurrentView() View {
	n.mu.Lock()
	visible, voice := n.visible, n.voice
	top, hasTop := n.stack.Top()
	n.mu.Unlock()

	if !visible {
		return View{Kind: KindHidden}
	}
	if !hasTop {
		return View{Kind: KindRoot, Root: n.rootView(voice)}
	}
	topic, _ := n.cat.TopicAt(top.topic)
	if top.action < 0 {
		return View{Kind: KindEntity, Entity: entityView(topic)}
	}
	action := topic.Actions[top.action]
	return View{Kind: KindAction, Action: &ActionView{
		TopicID:     topic.ID,
		TopicTitle:  topic.Title,
		Index:       top.action,
		Type:        action.Type,
		Label:       action.Label,
		Icon:        action.Icon,
		Description: action.Description,
		Items:       action.Items,
		Back:        BackTarget{Depth: DepthEntity, TopicID: topic.ID},
	}}
}

func (n *Navigator) rootView(voice bool) *RootView {
	topics := n.cat.Topics()
	v := &RootView{Topics: make([]TopicSummary, len(topics)), VoiceMode: voice}
	for i, t := range topics {
		v.Topics[i] = TopicSummary{ID: t.ID, Title: t.Title, Icon: t.Icon, Summary: t.Summary}
	}
	if voice {
		v.VoiceHint = VoiceHint
	}
	return v
}

func entityView(t catalog.Topic) *EntityView {
	v := &EntityView{
		TopicID: t.ID,
		Title:   t.Title,
		Icon:    t.Icon,
		Info:    t.Info,
		Actions: make([]ActionSummary, len(t.Actions)),
		Back:    BackTarget{Depth: DepthRoot},
	}
	for i, a := range t.Actions {
		v.Actions[i] = ActionSummary{Type: a.Type, Label: a.Label, Description: a.Description, Icon: a.Icon}
	}
	return v
}
