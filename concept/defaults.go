package concept

import "sort"

// PromptPair lists positive and negative exemplar prompts for a concept.
// External embedding pipelines contrast the two sets to compute a concept
// direction; the steering engine itself never interprets prompts.
type PromptPair struct {
	Positive []string
	Negative []string
}

// defaultPromptPairs are the concepts shipped with the library.
var defaultPromptPairs = map[string]PromptPair{
	"creativity": {
		Positive: []string{"highly creative design", "unique artwork", "innovative composition"},
		Negative: []string{"generic design", "boring artwork", "common composition"},
	},
	"professional": {
		Positive: []string{"professional design", "polished artwork", "expert composition"},
		Negative: []string{"amateur design", "rough artwork", "beginner composition"},
	},
	"arabic_style": {
		Positive: []string{"Arabic geometric patterns", "Islamic art", "Arabian calligraphy"},
		Negative: []string{"Western modern design", "European style", "minimalist plain"},
	},
}

// DefaultConceptNames returns the names of the built-in concepts, sorted.
func DefaultConceptNames() []string {
	names := make([]string, 0, len(defaultPromptPairs))
	for name := range defaultPromptPairs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PromptPairs returns the exemplar prompts for a concept. Unknown concepts
// get a generic "high X" / "low X" pair so callers can still derive a
// direction for ad-hoc concept names.
func PromptPairs(name string) PromptPair {
	if pair, ok := defaultPromptPairs[name]; ok {
		return pair
	}
	return PromptPair{
		Positive: []string{"high " + name},
		Negative: []string{"low " + name},
	}
}
