package ingest_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rashtram/billrag/pkg/chunker"
	"github.com/rashtram/billrag/pkg/ingest"
	"github.com/rashtram/billrag/pkg/logger"
	"github.com/rashtram/billrag/pkg/rag"
	testutils "github.com/rashtram/billrag/pkg/utils/test"
	"github.com/rashtram/billrag/pkg/vector"
	"github.com/rashtram/billrag/pkg/vector/memory"
)

func TestIngest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ingest Suite")
}

// billText builds a multi-sentence document long enough to split into
// several chunks.
func billText() string {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "Section %d of this bill establishes provisions for the regulation of national water resources and allocation. ", i)
	}
	return b.String()
}

var _ = Describe("Service", func() {
	var (
		ctx       context.Context
		store     *memory.Driver
		extractor *testutils.MockExtractor
		embedder  *testutils.MockEmbedder
		generator *testutils.MockGenerator
		publisher *testutils.MockPublisher
		service   *ingest.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.NewDriver()
		extractor = testutils.NewMockExtractor(billText())
		extractor.PageCount = 12
		embedder = testutils.NewMockEmbedder()
		generator = testutils.NewMockGenerator("A structured summary.")
		publisher = testutils.NewMockPublisher()

		log := logger.NewLogger(false)
		summarizer := rag.NewSummarizer(rag.NewRetriever(embedder, store, log), generator, log)
		service = ingest.NewService(
			ingest.Config{Concurrency: 2},
			extractor,
			chunker.New(chunker.DefaultChunkSize, chunker.DefaultOverlap),
			embedder,
			store,
			summarizer,
			publisher,
			log,
		)
	})

	Describe("fresh ingestion", func() {
		It("extracts, chunks, stores and summarizes", func() {
			result, err := service.Ingest(ctx, "42", "https://example.com/42.pdf", "Water Bill")
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Success).To(BeTrue())
			Expect(result.AlreadyProcessed).To(BeFalse())
			Expect(result.ChunksStored).To(BeNumerically(">", 1))
			Expect(result.ChunksStored).To(Equal(result.TotalChunks))
			Expect(result.OriginalLength).To(Equal(len(billText())))
			Expect(result.Summary).To(Equal("A structured summary."))
			Expect(result.BillTitle).To(Equal("Water Bill"))

			Expect(store.Count(&vector.Filter{DocumentID: "42"})).To(Equal(result.ChunksStored))
		})

		It("stores sequential chunk indexes with full metadata", func() {
			result, err := service.Ingest(ctx, "42", "https://example.com/42.pdf", "Water Bill")
			Expect(err).NotTo(HaveOccurred())

			probe := make([]float32, 3)
			results, qerr := store.Query(ctx, probe, 10000, &vector.Filter{DocumentID: "42"})
			Expect(qerr).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(result.ChunksStored))

			seen := make(map[int]bool)
			for _, res := range results {
				index := res.Metadata[vector.KeyChunkIndex].(int)
				Expect(seen[index]).To(BeFalse())
				seen[index] = true

				Expect(res.ID).To(Equal(fmt.Sprintf("42-chunk-%d", index)))
				Expect(res.Metadata[vector.KeyTotalChunks]).To(Equal(result.TotalChunks))
				Expect(res.Metadata[vector.KeyTitle]).To(Equal("Water Bill"))
				Expect(res.Metadata[vector.KeySourceURL]).To(Equal("https://example.com/42.pdf"))
				Expect(res.Metadata[vector.KeyPageCount]).To(Equal(12))
				Expect(res.Metadata[vector.KeyContent]).NotTo(BeEmpty())
			}
			for i := 0; i < result.TotalChunks; i++ {
				Expect(seen[i]).To(BeTrue())
			}
		})

		It("publishes an ingestion event", func() {
			result, err := service.Ingest(ctx, "42", "https://example.com/42.pdf", "Water Bill")
			Expect(err).NotTo(HaveOccurred())

			Expect(publisher.Events).To(HaveLen(1))
			Expect(publisher.Events[0].DocumentID).To(Equal("42"))
			Expect(publisher.Events[0].ChunksStored).To(Equal(result.ChunksStored))
			Expect(publisher.Events[0].PageCount).To(Equal(12))
		})

		It("succeeds even when the event publish fails", func() {
			publisher.Fail = true

			result, err := service.Ingest(ctx, "42", "https://example.com/42.pdf", "Water Bill")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeTrue())
		})
	})

	Describe("idempotency", func() {
		It("does not re-extract an already processed document", func() {
			first, err := service.Ingest(ctx, "42", "https://example.com/42.pdf", "Water Bill")
			Expect(err).NotTo(HaveOccurred())
			Expect(first.AlreadyProcessed).To(BeFalse())

			second, err := service.Ingest(ctx, "42", "https://example.com/42.pdf", "Water Bill")
			Expect(err).NotTo(HaveOccurred())

			Expect(second.AlreadyProcessed).To(BeTrue())
			Expect(second.Success).To(BeTrue())
			Expect(second.ChunksStored).To(Equal(first.ChunksStored))
			Expect(second.Summary).To(Equal("A structured summary."))
			Expect(second.BillTitle).To(Equal("Water Bill"))
			Expect(second.LastProcessed).NotTo(BeEmpty())

			Expect(extractor.URLs).To(HaveLen(1))
			Expect(store.Count(&vector.Filter{DocumentID: "42"})).To(Equal(first.ChunksStored))
			Expect(publisher.Events).To(HaveLen(1))
		})

		It("recovers the title from stored metadata when the request omits it", func() {
			_, err := service.Ingest(ctx, "42", "https://example.com/42.pdf", "Water Bill")
			Expect(err).NotTo(HaveOccurred())

			second, err := service.Ingest(ctx, "42", "https://example.com/42.pdf", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(second.BillTitle).To(Equal("Water Bill"))
		})
	})

	Describe("failures", func() {
		It("rejects missing parameters", func() {
			_, err := service.Ingest(ctx, "", "https://example.com/42.pdf", "")
			Expect(err).To(MatchError(ContainSubstring("document id")))

			_, err = service.Ingest(ctx, "42", "", "")
			Expect(err).To(MatchError(ContainSubstring("pdf url")))
		})

		It("stores nothing when extraction fails", func() {
			extractor.Fail = true

			_, err := service.Ingest(ctx, "42", "https://example.com/42.pdf", "Water Bill")
			Expect(err).To(HaveOccurred())

			Expect(store.Count(nil)).To(BeZero())
			Expect(publisher.Events).To(BeEmpty())
		})

		It("stores nothing when any chunk fails to embed", func() {
			// Fail the first chunk the chunker produces.
			chunks := chunker.New(chunker.DefaultChunkSize, chunker.DefaultOverlap).Chunk(billText())
			Expect(chunks).NotTo(BeEmpty())
			embedder.FailOn = chunks[0]

			_, err := service.Ingest(ctx, "42", "https://example.com/42.pdf", "Water Bill")
			Expect(err).To(HaveOccurred())

			Expect(store.Count(nil)).To(BeZero())
			Expect(publisher.Events).To(BeEmpty())
		})

		It("fails cleanly on a document with no usable text", func() {
			extractor.Text = "Too short."

			_, err := service.Ingest(ctx, "42", "https://example.com/42.pdf", "Water Bill")
			Expect(err).To(MatchError(ContainSubstring("no usable chunks")))
		})
	})
})
