// Package intent classifies raw user input before the pipeline spends
// anything on embedding, retrieval, or generation.
package intent

import "strings"

// Intent is the conversational classification of a user query.
type Intent int

const (
	// Substantive queries go through the full recommendation pipeline.
	Substantive Intent = iota
	// Greeting is a pure salutation.
	Greeting
	// Farewell is a pure goodbye.
	Farewell
	// Thanks is a pure expression of gratitude.
	Thanks
)

// String implements fmt.Stringer for logging.
func (i Intent) String() string {
	switch i {
	case Greeting:
		return "greeting"
	case Farewell:
		return "farewell"
	case Thanks:
		return "thanks"
	default:
		return "substantive"
	}
}

// Fixed phrase sets. Matching is exact (after lowercasing and trimming),
// never substring: "hi there, I need shampoo" must stay Substantive.
var (
	greetings = phraseSet("hi", "hello", "hey", "good morning", "good evening", "hola")
	farewells = phraseSet("bye", "goodbye", "see you", "good night", "see ya")
	thanks    = phraseSet("thanks", "thank you", "thanks!", "thank you!", "thx")
)

func phraseSet(phrases ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		s[p] = struct{}{}
	}
	return s
}

// Classify returns the intent of a raw user utterance.
func Classify(text string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if _, ok := greetings[normalized]; ok {
		return Greeting
	}
	if _, ok := farewells[normalized]; ok {
		return Farewell
	}
	if _, ok := thanks[normalized]; ok {
		return Thanks
	}
	return Substantive
}
