// Package qdrantstore provides a Qdrant vector database driver implementation
// over the official gRPC client.
//
// Qdrant point ids must be UUIDs or integers, so chunk ids are mapped to
// deterministic name-based UUIDs; the original chunk id lives in the payload
// and is restored on query.
package qdrantstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"github.com/rashtram/billrag/pkg/embeddings"
	"github.com/rashtram/billrag/pkg/vector"
)

const (
	// DefaultCollectionName is the default collection for bill chunks.
	DefaultCollectionName = "bills"

	// payloadChunkID carries the original string chunk id in the payload.
	payloadChunkID = "chunkId"
)

// Driver implements vector.Driver using Qdrant's gRPC API.
type Driver struct {
	client     *qdrant.Client
	collection string
	logger     *zap.Logger
}

// Config holds configuration for the Qdrant driver.
type Config struct {
	// Host is the Qdrant host name.
	Host string

	// Port is the gRPC port (typically 6334).
	Port int

	// APIKey is the optional API key for Qdrant cloud.
	APIKey string

	// UseTLS enables transport security.
	UseTLS bool

	// CollectionName is the collection to use.
	// Defaults to DefaultCollectionName if empty.
	CollectionName string
}

// NewDriver creates a Qdrant vector driver and ensures the collection exists
// with the system embedding dimension and cosine distance.
func NewDriver(ctx context.Context, c Config, logger *zap.Logger) (*Driver, error) {
	if c.Host == "" {
		return nil, fmt.Errorf("qdrant host is required")
	}

	collection := c.CollectionName
	if collection == "" {
		collection = DefaultCollectionName
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   c.Host,
		Port:   c.Port,
		APIKey: c.APIKey,
		UseTLS: c.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating qdrant client: %v", vector.ErrConnection, err)
	}

	d := &Driver{
		client:     client,
		collection: collection,
		logger:     logger,
	}

	if err := d.ensureCollection(ctx); err != nil {
		return nil, err
	}

	logger.Info("connected to qdrant",
		zap.String("host", c.Host),
		zap.String("collection", collection),
	)

	return d, nil
}

// ensureCollection creates the collection when missing.
func (d *Driver) ensureCollection(ctx context.Context) error {
	exists, err := d.client.CollectionExists(ctx, d.collection)
	if err != nil {
		return fmt.Errorf("%w: checking collection: %v", vector.ErrConnection, err)
	}
	if exists {
		return nil
	}

	err = d.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: d.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(embeddings.Dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("%w: creating collection %q: %v", vector.ErrStore, d.collection, err)
	}
	return nil
}

// Upsert stores documents, overwriting points with the same id.
func (d *Driver) Upsert(ctx context.Context, docs []vector.Document) error {
	if len(docs) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, len(docs))
	for i, doc := range docs {
		payload := make(map[string]any, len(doc.Metadata)+1)
		for k, v := range doc.Metadata {
			payload[k] = v
		}
		payload[payloadChunkID] = doc.ID

		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(pointUUID(doc.ID)),
			Vectors: qdrant.NewVectors(doc.Values...),
			Payload: qdrant.NewValueMap(payload),
		}
	}

	_, err := d.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: d.collection,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("%w: upserting %d points: %v", vector.ErrStore, len(points), err)
	}

	d.logger.Debug("upserted points to qdrant",
		zap.Int("count", len(points)),
	)

	return nil
}

// Query finds the topK most similar documents, filtered by documentId when a
// filter is given.
func (d *Driver) Query(ctx context.Context, embedding []float32, topK int, filter *vector.Filter) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = 10
	}

	req := &qdrant.QueryPoints{
		CollectionName: d.collection,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if filter != nil && filter.DocumentID != "" {
		req.Filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch(vector.KeyDocumentID, filter.DocumentID),
			},
		}
	}

	points, err := d.client.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: querying collection %q: %v", vector.ErrStore, d.collection, err)
	}

	results := make([]vector.QueryResult, 0, len(points))
	for _, point := range points {
		metadata := payloadToMap(point.Payload)

		id, _ := metadata[payloadChunkID].(string)
		delete(metadata, payloadChunkID)

		results = append(results, vector.QueryResult{
			Document: vector.Document{
				ID:       id,
				Metadata: metadata,
			},
			Score: point.Score,
		})
	}

	d.logger.Debug("queried qdrant",
		zap.Int("results", len(results)),
	)

	return results, nil
}

// Close releases the underlying gRPC connection.
func (d *Driver) Close() error {
	return d.client.Close()
}

// pointUUID derives a deterministic UUID for a chunk id so that re-ingestion
// overwrites rather than duplicates.
func pointUUID(chunkID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(chunkID)).String()
}

// payloadToMap converts a qdrant payload into plain Go values.
func payloadToMap(payload map[string]*qdrant.Value) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		switch kind := v.GetKind().(type) {
		case *qdrant.Value_StringValue:
			out[k] = kind.StringValue
		case *qdrant.Value_IntegerValue:
			out[k] = kind.IntegerValue
		case *qdrant.Value_DoubleValue:
			out[k] = kind.DoubleValue
		case *qdrant.Value_BoolValue:
			out[k] = kind.BoolValue
		}
	}
	return out
}

var _ vector.Driver = (*Driver)(nil)
