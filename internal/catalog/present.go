package catalog

// Presentation is the rendering metadata for an action type.
type Presentation struct {
	Name  string
	Verb  string
	Glyph string
}

var presentations = map[ActionType]Presentation{
	ActionLearn:           {Name: "Learn", Verb: "Explore", Glyph: "🎓"},
	ActionRecommendations: {Name: "Recommendations", Verb: "Explore", Glyph: "✨"},
	ActionBuy:             {Name: "Buy", Verb: "Shop", Glyph: "🛒"},
	ActionVisit:           {Name: "Visit", Verb: "Book", Glyph: "🧭"},
	ActionDiscuss:         {Name: "Discuss", Verb: "Join", Glyph: "💬"},
	ActionBook:            {Name: "Book", Verb: "Book", Glyph: "✈️"},
	ActionJoin:            {Name: "Join", Verb: "Join", Glyph: "👥"},
}

// Present returns presentation metadata for t. Unknown types fall back to
// the learn entry.
func Present(t ActionType) Presentation {
	if p, ok := presentations[t]; ok {
		return p
	}
	return presentations[ActionLearn]
}
