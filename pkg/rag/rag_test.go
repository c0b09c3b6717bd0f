package rag_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rashtram/billrag/pkg/logger"
	"github.com/rashtram/billrag/pkg/rag"
	testutils "github.com/rashtram/billrag/pkg/utils/test"
	"github.com/rashtram/billrag/pkg/vector"
	"github.com/rashtram/billrag/pkg/vector/memory"
)

func TestRag(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RAG Suite")
}

var _ = Describe("Retriever", func() {
	var (
		ctx       context.Context
		store     *memory.Driver
		embedder  *testutils.MockEmbedder
		retriever *rag.Retriever
	)

	chunk := func(documentID string, index, total int, content string, values ...float32) vector.Document {
		return vector.Document{
			ID:     documentID + "-chunk-" + string(rune('0'+index)),
			Values: values,
			Metadata: map[string]any{
				vector.KeyDocumentID:  documentID,
				vector.KeyContent:     content,
				vector.KeyChunkIndex:  index,
				vector.KeyTotalChunks: total,
			},
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.NewDriver()
		embedder = testutils.NewMockEmbedder()
		retriever = rag.NewRetriever(embedder, store, logger.NewLogger(false))

		embedder.Embeddings["water rights"] = []float32{1, 0, 0}

		Expect(store.Upsert(ctx, []vector.Document{
			chunk("42", 0, 2, "Section 1 establishes water rights.", 1, 0, 0),
			chunk("42", 1, 2, "Section 2 covers licensing.", 0, 1, 0),
			chunk("99", 0, 1, "An unrelated appropriations measure.", 1, 0, 0),
		})).To(Succeed())
	})

	It("returns chunks of the requested document in score order", func() {
		matches, err := retriever.Retrieve(ctx, "water rights", "42", 5)
		Expect(err).NotTo(HaveOccurred())

		Expect(matches).To(HaveLen(2))
		Expect(matches[0].Content).To(Equal("Section 1 establishes water rights."))
		Expect(matches[0].ChunkIndex).To(Equal(0))
		Expect(matches[0].TotalChunks).To(Equal(2))
		Expect(matches[1].Score).To(BeNumerically("<=", matches[0].Score))
	})

	It("never returns chunks from other documents", func() {
		// Document 99's chunk is a perfect vector match for the query.
		matches, err := retriever.Retrieve(ctx, "water rights", "42", 5)
		Expect(err).NotTo(HaveOccurred())

		for _, m := range matches {
			Expect(m.Metadata[vector.KeyDocumentID]).To(Equal("42"))
		}
	})

	It("returns an empty result for an unknown document", func() {
		matches, err := retriever.Retrieve(ctx, "water rights", "missing", 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(matches).To(BeEmpty())
	})

	It("embeds the query exactly once", func() {
		_, err := retriever.Retrieve(ctx, "water rights", "42", 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(embedder.Calls).To(Equal([]string{"water rights"}))
	})
})

var _ = Describe("Answerer", func() {
	var (
		ctx       context.Context
		store     *memory.Driver
		embedder  *testutils.MockEmbedder
		generator *testutils.MockGenerator
		answerer  *rag.Answerer
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.NewDriver()
		embedder = testutils.NewMockEmbedder()
		generator = testutils.NewMockGenerator("The bill establishes water rights.")

		log := logger.NewLogger(false)
		answerer = rag.NewAnswerer(rag.NewRetriever(embedder, store, log), generator, log)

		Expect(store.Upsert(ctx, []vector.Document{{
			ID:     "42-chunk-0",
			Values: []float32{0.1, 0.2, 0.3},
			Metadata: map[string]any{
				vector.KeyDocumentID: "42",
				vector.KeyContent:    "Section 1 establishes water rights.",
			},
		}})).To(Succeed())
	})

	It("grounds the prompt in retrieved chunk text and the question", func() {
		answer, err := answerer.Answer(ctx, "What does section 1 do?", "42")
		Expect(err).NotTo(HaveOccurred())

		Expect(answer.Response).To(Equal("The bill establishes water rights."))
		Expect(answer.Sources).To(HaveLen(1))

		Expect(generator.Prompts).To(HaveLen(1))
		Expect(generator.Prompts[0]).To(ContainSubstring("Section 1 establishes water rights."))
		Expect(generator.Prompts[0]).To(ContainSubstring("User question: What does section 1 do?"))
		Expect(generator.Prompts[0]).To(ContainSubstring("doesn't contain enough information"))
	})

	It("still answers when the document has no chunks", func() {
		answer, err := answerer.Answer(ctx, "What does this bill do?", "missing")
		Expect(err).NotTo(HaveOccurred())
		Expect(answer.Sources).To(BeEmpty())
		Expect(generator.Prompts).To(HaveLen(1))
	})

	It("propagates generation failures", func() {
		generator.Fail = true
		_, err := answerer.Answer(ctx, "question", "42")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Summarizer", func() {
	var (
		ctx        context.Context
		store      *memory.Driver
		generator  *testutils.MockGenerator
		summarizer *rag.Summarizer
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.NewDriver()
		generator = testutils.NewMockGenerator("A structured summary.")

		log := logger.NewLogger(false)
		retriever := rag.NewRetriever(testutils.NewMockEmbedder(), store, log)
		summarizer = rag.NewSummarizer(retriever, generator, log)
	})

	It("asks for the five summary sections", func() {
		summary, err := summarizer.Summarize(ctx, "Bill text here.")
		Expect(err).NotTo(HaveOccurred())
		Expect(summary).To(Equal("A structured summary."))

		Expect(generator.Prompts[0]).To(ContainSubstring("Main purpose and objectives"))
		Expect(generator.Prompts[0]).To(ContainSubstring("Key provisions"))
		Expect(generator.Prompts[0]).To(ContainSubstring("Potential impact"))
		Expect(generator.Prompts[0]).To(ContainSubstring("Important dates or timelines"))
		Expect(generator.Prompts[0]).To(ContainSubstring("notable changes or amendments"))
		Expect(generator.Prompts[0]).To(ContainSubstring("Bill text here."))
	})

	It("returns nil for a document with no chunks", func() {
		summary, err := summarizer.SummarizeDocument(ctx, "missing")
		Expect(err).NotTo(HaveOccurred())
		Expect(summary).To(BeNil())
		Expect(generator.Prompts).To(BeEmpty())
	})

	It("summarizes stored chunks when present", func() {
		Expect(store.Upsert(ctx, []vector.Document{{
			ID:     "42-chunk-0",
			Values: []float32{0.1, 0.2, 0.3},
			Metadata: map[string]any{
				vector.KeyDocumentID: "42",
				vector.KeyTitle:      "Water Bill",
				vector.KeyContent:    "Section 1 establishes water rights.",
			},
		}})).To(Succeed())

		summary, err := summarizer.SummarizeDocument(ctx, "42")
		Expect(err).NotTo(HaveOccurred())
		Expect(summary).NotTo(BeNil())
		Expect(summary.Summary).To(Equal("A structured summary."))
		Expect(summary.Title).To(Equal("Water Bill"))
		Expect(generator.Prompts[0]).To(ContainSubstring("Section 1 establishes water rights."))
	})
})
