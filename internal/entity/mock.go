package entity

import "context"

// MockExtractor returns scripted entities for tests.
type MockExtractor struct {
	Entities []Entity
	Err      error
	// Texts records the inputs seen.
	Texts []string
}

// Extract records the input and returns the scripted entities or error.
func (m *MockExtractor) Extract(ctx context.Context, text string) ([]Entity, error) {
	m.Texts = append(m.Texts, text)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Entities, nil
}
