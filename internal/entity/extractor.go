// Package entity provides the named-entity extraction capability used by the
// analytics engines.
package entity

import "context"

// Labels for extracted entities.
const (
	LabelPerson       = "PERSON"
	LabelLocation     = "LOCATION"
	LabelOrganization = "ORGANIZATION"
)

// Entity is a named-entity span with its label.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Extractor finds named entities in text.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]Entity, error)
}
