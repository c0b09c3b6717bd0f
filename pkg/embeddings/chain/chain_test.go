package chain_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/rashtram/billrag/pkg/embeddings"
	"github.com/rashtram/billrag/pkg/embeddings/chain"
)

func TestChain(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Embedding Chain Suite")
}

// stubEmbedder returns a fixed vector or a fixed error.
type stubEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}

func (s *stubEmbedder) Close() error { return nil }

func fullVector() []float32 {
	return make([]float32, embeddings.Dimension)
}

var _ = Describe("Chain", func() {
	var (
		logger *zap.Logger
		ctx    context.Context
	)

	BeforeEach(func() {
		logger = zap.NewNop()
		ctx = context.Background()
	})

	It("requires at least one provider", func() {
		_, err := chain.New(logger)
		Expect(err).To(HaveOccurred())
	})

	It("uses the primary provider when it succeeds", func() {
		primary := &stubEmbedder{vec: fullVector()}
		fallback := &stubEmbedder{vec: fullVector()}
		c, err := chain.New(logger,
			chain.Provider{Name: "huggingface", Embedder: primary},
			chain.Provider{Name: "gemini", Embedder: fallback},
		)
		Expect(err).NotTo(HaveOccurred())

		vec, err := c.Embed(ctx, "some text")
		Expect(err).NotTo(HaveOccurred())
		Expect(vec).To(HaveLen(embeddings.Dimension))
		Expect(primary.calls).To(Equal(1))
		Expect(fallback.calls).To(BeZero())
	})

	It("falls back when the primary fails", func() {
		primary := &stubEmbedder{err: errors.New("rate limited")}
		fallback := &stubEmbedder{vec: fullVector()}
		c, err := chain.New(logger,
			chain.Provider{Name: "huggingface", Embedder: primary},
			chain.Provider{Name: "gemini", Embedder: fallback},
		)
		Expect(err).NotTo(HaveOccurred())

		vec, err := c.Embed(ctx, "some text")
		Expect(err).NotTo(HaveOccurred())
		Expect(vec).To(HaveLen(embeddings.Dimension))
		Expect(fallback.calls).To(Equal(1))
	})

	It("treats a wrong-dimension vector as a provider failure", func() {
		short := &stubEmbedder{vec: make([]float32, 384)}
		fallback := &stubEmbedder{vec: fullVector()}
		c, err := chain.New(logger,
			chain.Provider{Name: "huggingface", Embedder: short},
			chain.Provider{Name: "gemini", Embedder: fallback},
		)
		Expect(err).NotTo(HaveOccurred())

		vec, err := c.Embed(ctx, "some text")
		Expect(err).NotTo(HaveOccurred())
		Expect(vec).To(HaveLen(embeddings.Dimension))
		Expect(fallback.calls).To(Equal(1))
	})

	It("aggregates every provider's failure when all fail", func() {
		c, err := chain.New(logger,
			chain.Provider{Name: "huggingface", Embedder: &stubEmbedder{err: errors.New("model loading")}},
			chain.Provider{Name: "gemini", Embedder: &stubEmbedder{err: errors.New("quota exceeded")}},
		)
		Expect(err).NotTo(HaveOccurred())

		_, err = c.Embed(ctx, "some text")
		Expect(err).To(MatchError(embeddings.ErrEmbedding))
		Expect(err.Error()).To(ContainSubstring("huggingface: model loading"))
		Expect(err.Error()).To(ContainSubstring("gemini: quota exceeded"))
	})

	It("fails hard when the only provider returns the wrong dimension", func() {
		c, err := chain.New(logger,
			chain.Provider{Name: "huggingface", Embedder: &stubEmbedder{vec: make([]float32, 512)}},
		)
		Expect(err).NotTo(HaveOccurred())

		_, err = c.Embed(ctx, "some text")
		Expect(err).To(MatchError(embeddings.ErrEmbedding))
		Expect(err.Error()).To(ContainSubstring("dimension mismatch"))
	})
})
