package api

import (
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// sourcePreviewLength caps chunk text returned as a chat source.
const sourcePreviewLength = 200

// previewContent truncates chunk text to the preview length without cutting
// through a multi-byte rune.
func previewContent(s string) string {
	if len(s) <= sourcePreviewLength {
		return s
	}
	cut := sourcePreviewLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleProcessBill ingests a bill PDF. Re-processing a known bill returns
// its stored state instead of re-extracting.
func (s *Server) handleProcessBill(c *fiber.Ctx) error {
	var req ProcessBillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if req.BillID == "" || req.PDFURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "billId and pdfUrl are required"})
	}

	result, err := s.ingester.Ingest(c.Context(), req.BillID, req.PDFURL, req.Title)
	if err != nil {
		s.logger.Error("failed to process bill",
			zap.String("billId", req.BillID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to process bill: " + err.Error()})
	}

	return c.JSON(ProcessBillResponse{
		Success:          result.Success,
		Message:          result.Message,
		ChunksStored:     result.ChunksStored,
		TotalChunks:      result.TotalChunks,
		OriginalLength:   result.OriginalLength,
		Summary:          result.Summary,
		AlreadyProcessed: result.AlreadyProcessed,
		BillTitle:        result.BillTitle,
		LastProcessed:    result.LastProcessed,
	})
}

// handleChat answers a question grounded in one bill's stored chunks.
func (s *Server) handleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if req.Message == "" || req.BillID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "message and billId are required"})
	}

	answer, err := s.answerer.Answer(c.Context(), req.Message, req.BillID)
	if err != nil {
		s.logger.Error("failed to answer question",
			zap.String("billId", req.BillID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to generate response"})
	}

	sources := make([]ChatSource, 0, len(answer.Sources))
	for _, m := range answer.Sources {
		sources = append(sources, ChatSource{
			Score:      m.Score,
			ChunkIndex: m.ChunkIndex,
			Content:    previewContent(m.Content),
		})
	}

	return c.JSON(ChatResponse{
		Response: answer.Response,
		Sources:  sources,
		BillID:   req.BillID,
	})
}

// handleBillSummary summarizes a stored bill from its chunks.
func (s *Server) handleBillSummary(c *fiber.Ctx) error {
	billID := c.Params("id")
	if billID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "bill id required"})
	}

	summary, err := s.summarizer.SummarizeDocument(c.Context(), billID)
	if err != nil {
		s.logger.Error("failed to summarize bill",
			zap.String("billId", billID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to fetch summary"})
	}
	if summary == nil {
		return c.JSON(BillSummaryResponse{
			BillID:  billID,
			HasData: false,
		})
	}

	return c.JSON(BillSummaryResponse{
		BillID:  billID,
		Title:   summary.Title,
		Summary: summary.Summary,
		HasData: true,
	})
}
