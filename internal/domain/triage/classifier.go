package triage

import (
	"fmt"
	"strings"
)

// Scorer computes a normalized similarity score in [0,1] between two
// strings. Implementations must be symmetric.
type Scorer interface {
	Score(a, b string) float64
}

// DiceScorer scores strings by bigram overlap (the Sørensen–Dice
// coefficient). Whitespace is ignored so multi-word phrases compare by
// content rather than spacing.
type DiceScorer struct{}

func (DiceScorer) Score(a, b string) float64 {
	a = stripWhitespace(a)
	b = stripWhitespace(b)

	if a == b {
		return 1
	}

	ra := []rune(a)
	rb := []rune(b)
	if len(ra) < 2 || len(rb) < 2 {
		return 0
	}

	bigrams := make(map[string]int, len(ra)-1)
	for i := 0; i < len(ra)-1; i++ {
		bigrams[string(ra[i:i+2])]++
	}

	matches := 0
	for i := 0; i < len(rb)-1; i++ {
		bg := string(rb[i : i+2])
		if bigrams[bg] > 0 {
			bigrams[bg]--
			matches++
		}
	}

	return 2 * float64(matches) / float64(len(ra)+len(rb)-2)
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// keywordBags holds the exemplar phrases per priority level, used only when
// the catalog has no exact match. Order within a bag is irrelevant; the
// level evaluation order comes from classifyOrder.
var keywordBags = map[Priority][]string{
	PriorityCritical: {"heart attack", "stroke", "severe bleeding", "unconscious", "not breathing", "chest pain"},
	PriorityHigh:     {"fracture", "severe pain", "high fever", "difficulty breathing", "head injury"},
	PriorityMedium:   {"moderate pain", "fever", "vomiting", "diarrhea", "minor cuts"},
	PriorityLow:      {"common cold", "minor pain", "rash", "cough", "sore throat"},
}

// Classifier maps free-text disease input to a priority and a generated
// description. The zero value is not usable; construct with NewClassifier.
type Classifier struct {
	scorer Scorer
}

// NewClassifier creates a Classifier backed by the given scorer. A nil
// scorer defaults to DiceScorer.
func NewClassifier(scorer Scorer) *Classifier {
	if scorer == nil {
		scorer = DiceScorer{}
	}
	return &Classifier{scorer: scorer}
}

// Classify maps disease text to a priority. Catalog entries are
// authoritative; anything else falls back to fuzzy matching against the
// keyword bags. Classify never fails: any internal error resolves to medium.
func (c *Classifier) Classify(disease string) (priority Priority) {
	defer func() {
		if r := recover(); r != nil {
			priority = PriorityMedium
		}
	}()

	if entry, ok := LookupDisease(disease); ok {
		return entry.Priority
	}

	input := normalize(disease)

	best := classifyOrder[0]
	bestScore := -1.0
	for _, level := range classifyOrder {
		levelScore := 0.0
		for _, phrase := range keywordBags[level] {
			if s := c.scorer.Score(input, phrase); s > levelScore {
				levelScore = s
			}
		}
		if levelScore > bestScore {
			best = level
			bestScore = levelScore
		}
	}

	return best
}

// Describe produces a human-readable summary for the given disease text.
// Catalog entries get the immediate-attention template; everything else is
// phrased by the classified severity.
func (c *Classifier) Describe(disease string) (description string) {
	defer func() {
		if r := recover(); r != nil {
			description = FallbackDescription(disease)
		}
	}()

	if _, ok := LookupDisease(disease); ok {
		return fmt.Sprintf("Patient reported with %s. Requires immediate medical attention based on condition.", disease)
	}

	severity := severityAdjective(c.Classify(disease))
	return fmt.Sprintf("Patient reported with %s. Initial assessment indicates %s condition requiring medical attention.", disease, severity)
}

// FallbackDescription is the minimal summary used when description
// generation fails or times out.
func FallbackDescription(disease string) string {
	return fmt.Sprintf("Patient reported with %s", disease)
}
