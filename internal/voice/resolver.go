// Package voice maps spoken requests such as "tell me about the location"
// onto catalog topics.
package voice

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/jask/scenecompanion/internal/catalog"
)

// maxDistance is the largest accepted edit distance relative to the longer
// of the two phrases.
const maxDistance = 0.34

var leadIns = []string{
	"tell me more about",
	"tell me about",
	"more about",
	"show me",
	"what about",
	"about",
}

var fillers = map[string]bool{"the": true, "a": true, "an": true, "please": true}

type candidate struct {
	topicID string
	phrase  string
}

type Resolver struct {
	candidates []candidate
}

// NewResolver indexes each topic by its id, its title and the longer words
// of its title.
func NewResolver(topics []catalog.Topic) *Resolver {
	r := &Resolver{}
	for _, t := range topics {
		seen := map[string]bool{}
		add := func(p string) {
			if p == "" || seen[p] {
				return
			}
			seen[p] = true
			r.candidates = append(r.candidates, candidate{topicID: t.ID, phrase: p})
		}
		add(normalize(t.ID))
		title := normalize(t.Title)
		add(title)
		for _, w := range strings.Fields(title) {
			if len(w) >= 4 {
				add(w)
			}
		}
	}
	return r
}

// Resolve returns the topic id the utterance most likely refers to.
func (r *Resolver) Resolve(utterance string) (string, bool) {
	query := stripLeadIn(normalize(utterance))
	if query == "" {
		return "", false
	}
	best, bestScore := "", maxDistance
	for _, c := range r.candidates {
		dist := levenshtein.ComputeDistance(query, c.phrase)
		score := float64(dist) / float64(max(len(query), len(c.phrase)))
		if score < bestScore {
			best, bestScore = c.topicID, score
		}
	}
	return best, best != ""
}

func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func stripLeadIn(s string) string {
	for _, l := range leadIns {
		if s == l {
			return ""
		}
		if rest, ok := strings.CutPrefix(s, l+" "); ok {
			s = rest
			break
		}
	}
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if !fillers[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
