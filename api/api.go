package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rashtram/billrag/pkg/ingest"
	"github.com/rashtram/billrag/pkg/rag"
)

// Server is the API server for the bill ingestion and retrieval system
type Server struct {
	config     Config
	ingester   *ingest.Service
	answerer   *rag.Answerer
	summarizer *rag.Summarizer
	logger     *zap.Logger
	app        *fiber.App
}

// NewServer creates a new API server.
// Services are injected to allow sharing with the CLI commands.
func NewServer(config Config, ingester *ingest.Service, answerer *rag.Answerer, summarizer *rag.Summarizer, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:     config,
		ingester:   ingester,
		answerer:   answerer,
		summarizer: summarizer,
		logger:     logger,
		app:        app,
	}

	app.Get("/ping", s.handlePing)
	app.Post("/v1/bills/process", s.handleProcessBill)
	app.Post("/v1/chat", s.handleChat)
	app.Get("/v1/bills/:id/summary", s.handleBillSummary)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
