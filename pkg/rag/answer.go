package rag

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rashtram/billrag/pkg/genai"
)

// Answer is a generated response with the chunks that grounded it.
type Answer struct {
	// Response is the generated answer text.
	Response string

	// Sources are the retrieved chunks used as context, in score order.
	Sources []Match
}

// Answerer answers questions about a single bill using retrieved chunks as
// grounding context.
type Answerer struct {
	retriever *Retriever
	generator genai.Generator
	logger    *zap.Logger
}

// NewAnswerer creates an answerer over the given retriever and generator.
func NewAnswerer(retriever *Retriever, generator genai.Generator, logger *zap.Logger) *Answerer {
	return &Answerer{
		retriever: retriever,
		generator: generator,
		logger:    logger,
	}
}

// Answer retrieves the chunks of documentID most relevant to the question and
// generates a grounded answer. When the document has no stored chunks the
// generator still runs, with empty context, and is instructed to say so.
func (a *Answerer) Answer(ctx context.Context, question, documentID string) (*Answer, error) {
	matches, err := a.retriever.Retrieve(ctx, question, documentID, DefaultTopK)
	if err != nil {
		return nil, fmt.Errorf("retrieving context: %w", err)
	}

	chunks := make([]string, len(matches))
	for i, m := range matches {
		chunks[i] = m.Content
	}

	response, err := a.generator.Generate(ctx, answerPrompt(question, chunks))
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	a.logger.Info("answered question",
		zap.String("documentId", documentID),
		zap.Int("sources", len(matches)),
	)

	return &Answer{
		Response: response,
		Sources:  matches,
	}, nil
}
