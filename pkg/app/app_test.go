package app_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rashtram/billrag/pkg/app"
	"github.com/rashtram/billrag/pkg/config"
	"github.com/rashtram/billrag/pkg/logger"
)

func TestApp(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "App Suite")
}

var _ = Describe("New", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.NewDefaultConfig()
		cfg.Embedding.Providers = []string{"ollama"}
		cfg.GenAI.APIKey = "test-key"
	})

	It("builds a full instance from a local-dev config", func() {
		instance, err := app.New(context.Background(), cfg, logger.NewLogger(false))
		Expect(err).NotTo(HaveOccurred())
		defer instance.Close()

		Expect(instance.Store).NotTo(BeNil())
		Expect(instance.Embedder).NotTo(BeNil())
		Expect(instance.Ingester).NotTo(BeNil())
		Expect(instance.Answerer).NotTo(BeNil())
		Expect(instance.Summarizer).NotTo(BeNil())
	})

	It("fails fast without a generation API key", func() {
		cfg.GenAI.APIKey = ""

		_, err := app.New(context.Background(), cfg, logger.NewLogger(false))
		Expect(err).To(MatchError(ContainSubstring("API key")))
	})

	It("rejects an unknown embedding provider", func() {
		cfg.Embedding.Providers = []string{"nonsense"}

		_, err := app.New(context.Background(), cfg, logger.NewLogger(false))
		Expect(err).To(MatchError(ContainSubstring("unknown embedding provider")))
	})

	It("rejects an unknown vector store provider", func() {
		cfg.VectorStore.Provider = "nonsense"

		_, err := app.New(context.Background(), cfg, logger.NewLogger(false))
		Expect(err).To(MatchError(ContainSubstring("unknown vector store provider")))
	})

	It("requires the gemini embedder to have a key when configured", func() {
		cfg.Embedding.Providers = []string{"gemini"}
		cfg.Embedding.Gemini.APIKey = ""

		_, err := app.New(context.Background(), cfg, logger.NewLogger(false))
		Expect(err).To(MatchError(ContainSubstring("API key")))
	})
})
