package testutils

import (
	"context"
	"errors"
)

// MockGenerator is a test generator that records prompts and returns a
// configurable response.
type MockGenerator struct {
	// Response is returned by Generate for any prompt.
	Response string

	// Prompts accumulates every prompt passed to Generate.
	Prompts []string

	// Fail causes Generate to return an error.
	Fail bool
}

func NewMockGenerator(response string) *MockGenerator {
	return &MockGenerator{Response: response}
}

func (m *MockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)

	if m.Fail {
		return "", errors.New("mock generation failure")
	}
	return m.Response, nil
}

func (m *MockGenerator) Close() error {
	return nil
}
