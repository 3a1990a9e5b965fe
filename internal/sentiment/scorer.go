// Package sentiment provides a lexicon-based sentiment scorer for journal
// entries.
package sentiment

import (
	"math"
	"strings"
	"unicode"
)

// normalizationAlpha dampens the compound score the same way VADER-style
// scorers do: score = sum / sqrt(sum^2 + alpha).
const normalizationAlpha = 15.0

// Scorer assigns a compound sentiment score to text.
type Scorer interface {
	Score(text string) float64
}

// LexiconScorer scores text with the built-in valence lexicon, with simple
// negation and booster handling.
type LexiconScorer struct{}

// NewLexiconScorer returns a LexiconScorer.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{}
}

// Score returns a compound sentiment in [-1, 1]; 0 means neutral or no
// sentiment-bearing words.
func (s *LexiconScorer) Score(text string) float64 {
	words := tokenize(text)
	var sum float64
	for i, w := range words {
		v, ok := valences[w]
		if !ok {
			continue
		}
		if i > 0 {
			prev := words[i-1]
			if boost, ok := boosters[prev]; ok {
				if v > 0 {
					v += boost
				} else {
					v -= boost
				}
				if i > 1 && negations[words[i-2]] {
					v *= -0.74
				}
			} else if negations[prev] {
				v *= -0.74
			}
		}
		sum += v
	}
	if sum == 0 {
		return 0
	}
	compound := sum / math.Sqrt(sum*sum+normalizationAlpha)
	// Clamp against float wobble at the extremes.
	return math.Max(-1, math.Min(1, compound))
}

func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, text)
	return strings.Fields(cleaned)
}
