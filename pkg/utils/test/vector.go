package testutils

import (
	"context"
	"errors"

	"github.com/rashtram/billrag/pkg/vector"
)

// MockVectorDriver is a test vector driver that records calls and returns
// configurable results.
type MockVectorDriver struct {
	// UpsertedDocs accumulates all documents passed to Upsert.
	UpsertedDocs []vector.Document

	// QueryResults is returned by Query for any embedding.
	QueryResults []vector.QueryResult

	// FailUpsert causes Upsert to return an error.
	FailUpsert bool

	// FailQuery causes Query to return an error.
	FailQuery bool
}

// NewMockVectorDriver creates a new mock vector driver.
func NewMockVectorDriver() *MockVectorDriver {
	return &MockVectorDriver{}
}

func (m *MockVectorDriver) Upsert(_ context.Context, docs []vector.Document) error {
	if m.FailUpsert {
		return errors.New("mock upsert failure")
	}
	m.UpsertedDocs = append(m.UpsertedDocs, docs...)
	return nil
}

func (m *MockVectorDriver) Query(_ context.Context, _ []float32, topK int, _ *vector.Filter) ([]vector.QueryResult, error) {
	if m.FailQuery {
		return nil, errors.New("mock query failure")
	}
	results := m.QueryResults
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (m *MockVectorDriver) Close() error {
	return nil
}

var _ vector.Driver = (*MockVectorDriver)(nil)
