// Package ingest implements the document ingestion pipeline: download and
// extract a bill PDF, chunk the text, embed each chunk and store the records
// in the vector store, then summarize and emit an ingestion event.
package ingest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rashtram/billrag/pkg/chunker"
	"github.com/rashtram/billrag/pkg/embeddings"
	"github.com/rashtram/billrag/pkg/eventstream"
	"github.com/rashtram/billrag/pkg/extract"
	"github.com/rashtram/billrag/pkg/rag"
	"github.com/rashtram/billrag/pkg/vector"
)

const (
	// DefaultConcurrency bounds parallel embedding requests per ingestion.
	DefaultConcurrency = 4

	// summaryChunkCount is how many leading chunks seed the summary of a
	// freshly ingested document.
	summaryChunkCount = 3

	// existingSummaryChunkCount is how many stored chunks seed the summary
	// when the document was already processed.
	existingSummaryChunkCount = 5

	// countTopK is large enough to retrieve every chunk of a document when
	// counting stored records.
	countTopK = 10000

	chunkMethodSentence = "sentence"
	sourcePDF           = "pdf"
)

// Extractor downloads and extracts text from a PDF URL.
type Extractor interface {
	Extract(ctx context.Context, pdfURL string) (*extract.Result, error)
}

// Result reports the outcome of an ingestion.
type Result struct {
	Success          bool
	Message          string
	ChunksStored     int
	TotalChunks      int
	OriginalLength   int
	Summary          string
	AlreadyProcessed bool
	BillTitle        string
	LastProcessed    string
}

// Service runs the ingestion pipeline.
type Service struct {
	extractor   Extractor
	chunker     *chunker.Chunker
	embedder    embeddings.Embedder
	store       vector.Driver
	summarizer  *rag.Summarizer
	events      eventstream.Publisher
	logger      *zap.Logger
	locks       *keyedMutex
	concurrency int
}

// Config holds configuration for the ingestion service.
type Config struct {
	// Concurrency bounds parallel embedding requests.
	// Defaults to DefaultConcurrency when zero.
	Concurrency int
}

// NewService creates an ingestion service.
func NewService(
	c Config,
	extractor Extractor,
	chk *chunker.Chunker,
	embedder embeddings.Embedder,
	store vector.Driver,
	summarizer *rag.Summarizer,
	events eventstream.Publisher,
	logger *zap.Logger,
) *Service {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Service{
		extractor:   extractor,
		chunker:     chk,
		embedder:    embedder,
		store:       store,
		summarizer:  summarizer,
		events:      events,
		logger:      logger,
		locks:       newKeyedMutex(),
		concurrency: concurrency,
	}
}

// Ingest processes the bill at pdfURL under documentID. Ingestion is
// idempotent: a document that already has stored chunks is not re-extracted;
// its existing chunks are counted and summarized instead.
func (s *Service) Ingest(ctx context.Context, documentID, pdfURL, title string) (*Result, error) {
	if documentID == "" {
		return nil, fmt.Errorf("document id is required")
	}
	if pdfURL == "" {
		return nil, fmt.Errorf("pdf url is required")
	}

	unlock := s.locks.Lock(documentID)
	defer unlock()

	existing, err := s.existingChunks(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("checking for existing document: %w", err)
	}
	if len(existing) > 0 {
		return s.summarizeExisting(ctx, documentID, title, existing)
	}

	return s.ingestFresh(ctx, documentID, pdfURL, title)
}

// existingChunks returns every stored chunk for documentID. The zero-vector
// probe relies on the store's filter, not on similarity.
func (s *Service) existingChunks(ctx context.Context, documentID string) ([]vector.QueryResult, error) {
	probe := make([]float32, embeddings.Dimension)
	filter := &vector.Filter{DocumentID: documentID}

	results, err := s.store.Query(ctx, probe, 1, filter)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	return s.store.Query(ctx, probe, countTopK, filter)
}

// summarizeExisting handles the already-processed path: count the stored
// chunks and summarize a handful of them.
func (s *Service) summarizeExisting(ctx context.Context, documentID, title string, existing []vector.QueryResult) (*Result, error) {
	s.logger.Info("document already processed",
		zap.String("documentId", documentID),
		zap.Int("chunks", len(existing)),
	)

	sort.Slice(existing, func(i, j int) bool {
		return chunkIndexOf(existing[i].Metadata) < chunkIndexOf(existing[j].Metadata)
	})

	n := existingSummaryChunkCount
	if len(existing) < n {
		n = len(existing)
	}
	contents := make([]string, 0, n)
	for _, res := range existing[:n] {
		if content, ok := res.Metadata[vector.KeyContent].(string); ok {
			contents = append(contents, content)
		}
	}

	summary, err := s.summarizer.Summarize(ctx, strings.Join(contents, "\n\n"))
	if err != nil {
		return nil, fmt.Errorf("summarizing existing content: %w", err)
	}

	billTitle := title
	if billTitle == "" {
		billTitle, _ = existing[0].Metadata[vector.KeyTitle].(string)
	}
	lastProcessed, _ := existing[0].Metadata[vector.KeyTimestamp].(string)

	return &Result{
		Success:          true,
		Message:          "Bill already processed; summary generated from stored content",
		ChunksStored:     len(existing),
		Summary:          summary,
		AlreadyProcessed: true,
		BillTitle:        billTitle,
		LastProcessed:    lastProcessed,
	}, nil
}

// ingestFresh runs the full pipeline for a document with no stored chunks.
func (s *Service) ingestFresh(ctx context.Context, documentID, pdfURL, title string) (*Result, error) {
	extracted, err := s.extractor.Extract(ctx, pdfURL)
	if err != nil {
		return nil, fmt.Errorf("extracting document: %w", err)
	}

	// A request without a title falls back to the title recognised in the
	// document text.
	sections := extract.ExtractSections(chunker.Clean(extracted.Text))
	if title == "" {
		title = sections.Title
	}

	chunks := s.chunker.Chunk(extracted.Text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("document produced no usable chunks")
	}

	s.logger.Info("chunked document",
		zap.String("documentId", documentID),
		zap.Int("chunks", len(chunks)),
		zap.Int("provisions", len(sections.Provisions)),
		zap.Int("textLength", len(extracted.Text)),
	)

	vectors, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	docs := make([]vector.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = vector.Document{
			ID:     fmt.Sprintf("%s-chunk-%d", documentID, i),
			Values: vectors[i],
			Metadata: map[string]any{
				vector.KeyDocumentID:  documentID,
				vector.KeyTitle:       title,
				vector.KeyContent:     chunk,
				vector.KeyChunkIndex:  i,
				vector.KeyTotalChunks: len(chunks),
				vector.KeyTimestamp:   timestamp,
				vector.KeySource:      sourcePDF,
				vector.KeySourceURL:   pdfURL,
				vector.KeyPageCount:   extracted.PageCount,
				vector.KeyExtractedAt: timestamp,
				vector.KeyChunkLength: len(chunk),
				vector.KeyChunkMethod: chunkMethodSentence,
			},
		}
	}

	if err := s.store.Upsert(ctx, docs); err != nil {
		return nil, fmt.Errorf("storing chunks: %w", err)
	}

	n := summaryChunkCount
	if len(chunks) < n {
		n = len(chunks)
	}
	summary, err := s.summarizer.Summarize(ctx, strings.Join(chunks[:n], "\n\n"))
	if err != nil {
		return nil, fmt.Errorf("summarizing document: %w", err)
	}

	event := eventstream.NewDocumentIngestedEvent(documentID, title, pdfURL, len(docs), extracted.PageCount)
	if err := s.events.PublishDocument(ctx, event); err != nil {
		// Ingestion already succeeded; a lost event is not worth failing
		// the request over.
		s.logger.Warn("failed to publish ingestion event",
			zap.String("documentId", documentID),
			zap.Error(err),
		)
	}

	s.logger.Info("ingested document",
		zap.String("documentId", documentID),
		zap.Int("chunksStored", len(docs)),
	)

	return &Result{
		Success:        true,
		Message:        "Bill processed and stored successfully",
		ChunksStored:   len(docs),
		TotalChunks:    len(chunks),
		OriginalLength: len(extracted.Text),
		Summary:        summary,
		BillTitle:      title,
	}, nil
}

// embedChunks embeds every chunk with bounded parallelism, preserving chunk
// order in the returned slice.
func (s *Service) embedChunks(ctx context.Context, chunks []string) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, chunk := range chunks {
		g.Go(func() error {
			embedding, err := s.embedder.Embed(ctx, chunk)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			vectors[i] = embedding
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func chunkIndexOf(metadata map[string]any) int {
	switch v := metadata[vector.KeyChunkIndex].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
