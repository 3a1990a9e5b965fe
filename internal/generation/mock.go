package generation

import "context"

// MockGenerator is a scripted generator for tests. Reply is returned for
// every call; Err, when set, takes precedence. Calls records the prompts seen.
type MockGenerator struct {
	Reply string
	Err   error
	Calls []string
}

// Generate records the prompt and returns the scripted reply or error.
func (m *MockGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	m.Calls = append(m.Calls, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}
