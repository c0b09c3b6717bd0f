package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rashtram/billrag/pkg/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("Config", func() {
	Describe("NewDefaultConfig", func() {
		It("populates every section", func() {
			cfg := config.NewDefaultConfig()

			Expect(cfg.API.Listen).To(Equal(":8090"))
			Expect(cfg.Embedding.Providers).To(Equal([]string{"huggingface", "gemini"}))
			Expect(cfg.Embedding.HuggingFace.Model).NotTo(BeEmpty())
			Expect(cfg.VectorStore.Provider).To(Equal("memory"))
			Expect(cfg.Events.Provider).To(Equal("nop"))
			Expect(cfg.GenAI.Model).NotTo(BeEmpty())
			Expect(cfg.Ingest.ChunkSize).To(Equal(1000))
			Expect(cfg.Ingest.Overlap).To(Equal(200))
		})
	})

	Describe("InitViper", func() {
		It("returns defaults when no config file exists", func() {
			v, err := config.InitViper(GinkgoT().TempDir())
			Expect(err).NotTo(HaveOccurred())

			cfg, err := config.LoadConfig(v)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.API.Listen).To(Equal(":8090"))
			Expect(cfg.VectorStore.Provider).To(Equal("memory"))
		})

		It("overrides defaults with config.toml values", func() {
			dir := GinkgoT().TempDir()
			toml := `
[api]
listen = ":9999"

[vector_store]
provider = "pinecone"

[vector_store.pinecone]
index_host = "https://bills-abc.svc.pinecone.io"
api_key = "pk-test"

[events]
provider = "kafka"

[events.kafka]
brokers = ["localhost:9092"]
`
			Expect(os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644)).To(Succeed())

			v, err := config.InitViper(dir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := config.LoadConfig(v)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.API.Listen).To(Equal(":9999"))
			Expect(cfg.VectorStore.Provider).To(Equal("pinecone"))
			Expect(cfg.VectorStore.Pinecone.IndexHost).To(Equal("https://bills-abc.svc.pinecone.io"))
			Expect(cfg.Events.Provider).To(Equal("kafka"))
			Expect(cfg.Events.Kafka.Brokers).To(Equal([]string{"localhost:9092"}))

			// Sections the file omits keep their defaults.
			Expect(cfg.Ingest.ChunkSize).To(Equal(1000))
		})

		It("reads environment overrides with the BILLRAG prefix", func() {
			GinkgoT().Setenv("BILLRAG_API_LISTEN", ":7070")

			v, err := config.InitViper(GinkgoT().TempDir())
			Expect(err).NotTo(HaveOccurred())

			cfg, err := config.LoadConfig(v)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.API.Listen).To(Equal(":7070"))
		})
	})
})
