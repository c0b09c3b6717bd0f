package rag

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rashtram/billrag/pkg/genai"
	"github.com/rashtram/billrag/pkg/vector"
)

// summaryTopK is the number of stored chunks used when summarizing an
// already-ingested document.
const summaryTopK = 5

// Summarizer produces structured bill summaries.
type Summarizer struct {
	retriever *Retriever
	generator genai.Generator
	logger    *zap.Logger
}

// NewSummarizer creates a summarizer over the given retriever and generator.
func NewSummarizer(retriever *Retriever, generator genai.Generator, logger *zap.Logger) *Summarizer {
	return &Summarizer{
		retriever: retriever,
		generator: generator,
		logger:    logger,
	}
}

// Summarize generates a structured summary of the given bill content.
func (s *Summarizer) Summarize(ctx context.Context, billContent string) (string, error) {
	summary, err := s.generator.Generate(ctx, summaryPrompt(billContent))
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}
	return summary, nil
}

// DocumentSummary is a generated summary of a stored document.
type DocumentSummary struct {
	// Summary is the generated summary text.
	Summary string

	// Title is the bill title recorded at ingestion time.
	Title string
}

// SummarizeDocument retrieves the stored chunks of documentID and summarizes
// them. It returns nil when the document has no stored chunks.
func (s *Summarizer) SummarizeDocument(ctx context.Context, documentID string) (*DocumentSummary, error) {
	matches, err := s.retriever.Retrieve(ctx, "summary of this bill", documentID, summaryTopK)
	if err != nil {
		return nil, fmt.Errorf("retrieving chunks: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	chunks := make([]string, len(matches))
	for i, m := range matches {
		chunks[i] = m.Content
	}

	summary, err := s.Summarize(ctx, strings.Join(chunks, "\n\n"))
	if err != nil {
		return nil, err
	}

	title, _ := matches[0].Metadata[vector.KeyTitle].(string)

	s.logger.Info("summarized document",
		zap.String("documentId", documentID),
		zap.Int("chunks", len(matches)),
	)

	return &DocumentSummary{
		Summary: summary,
		Title:   title,
	}, nil
}
