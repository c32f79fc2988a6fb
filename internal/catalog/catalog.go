// Package catalog holds the read-only topic/action/item tree shown by the
// scene companion. A Catalog is decoded once at startup and never mutated;
// accessors hand out copies.
package catalog

import "slices"

// Schema names a catalog layout.
type Schema string

const (
	SchemaRich   Schema = "rich"
	SchemaLegacy Schema = "legacy"
)

// ActionType tags a follow-up action. The navigator carries it through
// untouched; only the presentation table interprets it.
type ActionType string

const (
	ActionLearn           ActionType = "learn"
	ActionRecommendations ActionType = "recommendations"
	ActionBuy             ActionType = "buy"
	ActionVisit           ActionType = "visit"
	ActionDiscuss         ActionType = "discuss"

	// legacy schema only
	ActionBook ActionType = "book"
	ActionJoin ActionType = "join"
)

var schemaTypes = map[Schema][]ActionType{
	SchemaRich:   {ActionLearn, ActionRecommendations, ActionBuy, ActionVisit, ActionDiscuss},
	SchemaLegacy: {ActionLearn, ActionBuy, ActionBook, ActionJoin},
}

// ParseSchema returns the schema for name, or false if it is unknown.
func ParseSchema(name string) (Schema, bool) {
	s := Schema(name)
	_, ok := schemaTypes[s]
	return s, ok
}

// Allows reports whether t belongs to the schema's action enumeration.
func (s Schema) Allows(t ActionType) bool {
	return slices.Contains(schemaTypes[s], t)
}

// Item is a leaf content entry.
type Item struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	URL         string `toml:"url"`
}

// Action is a category of follow-up interaction under a topic.
type Action struct {
	Type        ActionType `toml:"type"`
	Label       string     `toml:"label"`
	Description string     `toml:"description"`
	Icon        string     `toml:"icon"`
	Items       []Item     `toml:"items"`
}

// Topic is a top-level subject about the paused scene.
type Topic struct {
	ID      string   `toml:"id"`
	Title   string   `toml:"title"`
	Icon    string   `toml:"icon"`
	Summary string   `toml:"summary"`
	Info    string   `toml:"info"`
	Actions []Action `toml:"action"`
}

func (t Topic) clone() Topic {
	out := t
	out.Actions = make([]Action, len(t.Actions))
	for i, a := range t.Actions {
		a.Items = slices.Clone(a.Items)
		out.Actions[i] = a
	}
	return out
}

type Catalog struct {
	schema Schema
	topics []Topic
	index  map[string]int
}

func (c *Catalog) Schema() Schema {
	return c.schema
}

func (c *Catalog) Len() int {
	return len(c.topics)
}

// Topics returns every topic in authored order.
func (c *Catalog) Topics() []Topic {
	out := make([]Topic, len(c.topics))
	for i, t := range c.topics {
		out[i] = t.clone()
	}
	return out
}

// Topic looks a topic up by id.
func (c *Catalog) Topic(id string) (Topic, bool) {
	i, ok := c.Index(id)
	if !ok {
		return Topic{}, false
	}
	return c.topics[i].clone(), true
}

// TopicAt returns the topic at position i.
func (c *Catalog) TopicAt(i int) (Topic, bool) {
	if i < 0 || i >= len(c.topics) {
		return Topic{}, false
	}
	return c.topics[i].clone(), true
}

// Index returns the position of the topic with the given id.
func (c *Catalog) Index(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Action returns action ai of topic ti without copying the topic.
func (c *Catalog) Action(ti, ai int) (Action, bool) {
	if ti < 0 || ti >= len(c.topics) {
		return Action{}, false
	}
	actions := c.topics[ti].Actions
	if ai < 0 || ai >= len(actions) {
		return Action{}, false
	}
	a := actions[ai]
	a.Items = slices.Clone(a.Items)
	return a, true
}
