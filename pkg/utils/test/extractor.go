package testutils

import (
	"context"
	"errors"

	"github.com/rashtram/billrag/pkg/extract"
)

// MockExtractor is a test extractor that returns configurable text without
// touching the network.
type MockExtractor struct {
	// Text is the extracted text returned for any URL.
	Text string

	// PageCount is the reported page count.
	PageCount int

	// Fail causes Extract to return an error.
	Fail bool

	// URLs accumulates every URL passed to Extract.
	URLs []string
}

func NewMockExtractor(text string) *MockExtractor {
	return &MockExtractor{Text: text, PageCount: 1}
}

func (m *MockExtractor) Extract(_ context.Context, pdfURL string) (*extract.Result, error) {
	m.URLs = append(m.URLs, pdfURL)

	if m.Fail {
		return nil, errors.New("mock extraction failure")
	}
	return &extract.Result{
		Text:      m.Text,
		PageCount: m.PageCount,
	}, nil
}
