// Package vector provides interfaces and implementations for namespaced
// vector storage with metadata-filtered similarity search.
package vector

import "context"

// Metadata keys shared by every driver. Drivers store metadata as-is; these
// constants keep the ingestion and retrieval sides agreeing on field names.
const (
	KeyDocumentID  = "documentId"
	KeyTitle       = "billTitle"
	KeyContent     = "content"
	KeyChunkIndex  = "chunkIndex"
	KeyTotalChunks = "totalChunks"
	KeyTimestamp   = "timestamp"
	KeySource      = "source"
	KeySourceURL   = "sourceUrl"
	KeyPageCount   = "pageCount"
	KeyExtractedAt = "extractedAt"
	KeyChunkLength = "chunkLength"
	KeyChunkMethod = "chunkMethod"
)

// Document represents a stored record with its embedding and metadata.
type Document struct {
	// ID is the unique record identifier (the chunk id).
	ID string

	// Values is the embedding vector.
	Values []float32

	// Metadata holds the flattened chunk fields.
	Metadata map[string]any
}

// QueryResult represents a search result with similarity score.
type QueryResult struct {
	Document

	// Score is the similarity score as returned by the store
	// (higher = more similar).
	Score float32
}

// Filter restricts a query to records matching the given fields exactly.
type Filter struct {
	// DocumentID scopes the query to a single source document.
	DocumentID string
}

// Driver handles storage and retrieval of vector embeddings.
type Driver interface {
	// Upsert stores documents with their embeddings. Records with an
	// existing ID are overwritten, never duplicated.
	Upsert(ctx context.Context, docs []Document) error

	// Query finds the topK most similar documents to the given embedding,
	// restricted by the optional filter. Results are ordered by descending
	// score and always include metadata.
	Query(ctx context.Context, embedding []float32, topK int, filter *Filter) ([]QueryResult, error)

	// Close releases any resources held by the driver.
	Close() error
}
