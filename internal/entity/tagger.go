package entity

import (
	"context"
	"strings"
	"unicode"
)

// RuleTagger is a lexicon-free entity tagger built on capitalization and
// preposition cues. It is deliberately simple: journal prose is short,
// first-person, and dominated by names of people and places, which this
// handles well without a model dependency.
type RuleTagger struct{}

// NewRuleTagger returns a RuleTagger.
func NewRuleTagger() *RuleTagger {
	return &RuleTagger{}
}

// locationCues are lowercase tokens that mark the following entity as a place.
var locationCues = map[string]bool{
	"at": true, "in": true, "near": true, "from": true, "to": true,
}

// orgSuffixes mark a capitalized run as an organization.
var orgSuffixes = map[string]bool{
	"inc": true, "corp": true, "ltd": true, "co": true, "company": true,
	"university": true, "school": true, "office": true, "labs": true,
	"club": true, "church": true,
}

// Extract finds entities sentence by sentence. Capitalized runs become
// entities (PERSON by default, LOCATION after a place preposition,
// ORGANIZATION on an org suffix or acronym); "at the <word>" and
// "in the <word>" also yield lowercase LOCATION entities.
func (t *RuleTagger) Extract(ctx context.Context, text string) ([]Entity, error) {
	var out []Entity
	for _, sentence := range splitSentences(text) {
		out = append(out, tagSentence(sentence)...)
	}
	return out, nil
}

func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
}

func tagSentence(sentence string) []Entity {
	words := strings.Fields(sentence)
	var out []Entity

	for i := 0; i < len(words); i++ {
		word := trimWord(words[i])
		if word == "" {
			continue
		}

		// "at the cafe" / "in the park": lowercase place after a cue.
		if i+2 < len(words) && locationCues[strings.ToLower(word)] && trimWord(words[i+1]) == "the" {
			place := trimWord(words[i+2])
			if place != "" && !isCapitalized(place) {
				out = append(out, Entity{Text: place, Label: LabelLocation})
				i += 2
				continue
			}
		}

		if !isCapitalized(word) || word == "I" {
			continue
		}
		// A capitalized sentence opener only counts when it starts a
		// multi-word run; otherwise it is just sentence case.
		if i == 0 && (i+1 >= len(words) || !isCapitalized(trimWord(words[i+1]))) {
			continue
		}

		run := []string{word}
		j := i + 1
		for j < len(words) {
			next := trimWord(words[j])
			if next == "" || !isCapitalized(next) {
				break
			}
			run = append(run, next)
			j++
		}

		label := LabelPerson
		if i > 0 && locationCues[strings.ToLower(trimWord(words[i-1]))] {
			label = LabelLocation
		}
		last := strings.ToLower(strings.TrimSuffix(run[len(run)-1], "."))
		if orgSuffixes[last] || isAcronym(run[len(run)-1]) {
			label = LabelOrganization
		}

		out = append(out, Entity{Text: strings.Join(run, " "), Label: label})
		i = j - 1
	}
	return out
}

func trimWord(w string) string {
	return strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func isCapitalized(w string) bool {
	r := []rune(w)
	return len(r) > 0 && unicode.IsUpper(r[0])
}

func isAcronym(w string) bool {
	r := []rune(w)
	if len(r) < 2 {
		return false
	}
	for _, c := range r {
		if !unicode.IsUpper(c) {
			return false
		}
	}
	return true
}
