// Package memory provides an in-process implementation of vector.Driver.
//
// Records are held in a map and queried by exact cosine similarity. This is
// the local-dev and test driver; production deployments use the pinecone or
// qdrantstore drivers.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/rashtram/billrag/pkg/vector"
)

// Driver implements vector.Driver using in-process data structures.
type Driver struct {
	mu   sync.RWMutex
	docs map[string]vector.Document
}

// NewDriver creates an empty in-memory vector driver.
func NewDriver() *Driver {
	return &Driver{docs: make(map[string]vector.Document)}
}

// Upsert stores documents, overwriting any existing record with the same ID.
func (d *Driver) Upsert(_ context.Context, docs []vector.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, doc := range docs {
		d.docs[doc.ID] = doc
	}
	return nil
}

// Query returns the topK most cosine-similar documents, optionally filtered
// to a single documentId, in descending score order.
func (d *Driver) Query(_ context.Context, embedding []float32, topK int, filter *vector.Filter) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = 10
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	results := make([]vector.QueryResult, 0, len(d.docs))
	for _, doc := range d.docs {
		if filter != nil && filter.DocumentID != "" {
			id, _ := doc.Metadata[vector.KeyDocumentID].(string)
			if id != filter.DocumentID {
				continue
			}
		}
		results = append(results, vector.QueryResult{
			Document: doc,
			Score:    cosine(embedding, doc.Values),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Count returns the number of stored records matching the filter.
// Used by tests to assert idempotency without a full query.
func (d *Driver) Count(filter *vector.Filter) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if filter == nil || filter.DocumentID == "" {
		return len(d.docs)
	}

	n := 0
	for _, doc := range d.docs {
		if id, _ := doc.Metadata[vector.KeyDocumentID].(string); id == filter.DocumentID {
			n++
		}
	}
	return n
}

// Close is a no-op for the in-memory driver.
func (d *Driver) Close() error {
	return nil
}

// cosine computes cosine similarity, returning 0 for zero-magnitude input.
func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

var _ vector.Driver = (*Driver)(nil)
