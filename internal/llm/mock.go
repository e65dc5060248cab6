package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error

	Calls      int
	LastPrompt string
	LastParams DecodingParams
}

func (m *MockClient) Generate(ctx context.Context, prompt string, params DecodingParams) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	m.LastParams = params
	return m.Response, m.Err
}
