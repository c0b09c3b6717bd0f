// Package extract downloads source PDF documents and extracts their text.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

var (
	// ErrDownload is returned when the document cannot be fetched.
	ErrDownload = errors.New("document download failed")

	// ErrExtraction is returned when the downloaded bytes cannot be parsed
	// as a PDF or contain no text.
	ErrExtraction = errors.New("text extraction failed")
)

// Result holds the raw text and document metadata of an extracted PDF.
type Result struct {
	// Text is the raw extracted text, unnormalized.
	Text string

	// PageCount is the number of pages in the document.
	PageCount int

	// Info holds document information entries (Title, Author, ...) when present.
	Info map[string]string
}

// Extractor downloads PDFs by URL and extracts their text content.
// It performs no retries; callers may re-invoke on failure.
type Extractor struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewExtractor creates an Extractor with a bounded-timeout HTTP client.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// Extract downloads the PDF at pdfURL and returns its text and metadata.
func (e *Extractor) Extract(ctx context.Context, pdfURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrDownload, err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrDownload, pdfURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d fetching %s", ErrDownload, resp.StatusCode, pdfURL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrDownload, err)
	}

	e.logger.Debug("downloaded document",
		zap.String("url", pdfURL),
		zap.Int("bytes", len(data)),
	)

	result, err := parse(data)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("extracted text",
		zap.String("url", pdfURL),
		zap.Int("pages", result.PageCount),
		zap.Int("chars", len(result.Text)),
	)

	return result, nil
}

// parse extracts plain text and document info from PDF bytes.
func parse(data []byte) (*Result, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrExtraction)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	text, err := io.ReadAll(plain)
	if err != nil {
		return nil, fmt.Errorf("%w: reading text: %v", ErrExtraction, err)
	}

	if strings.TrimSpace(string(text)) == "" {
		return nil, fmt.Errorf("%w: no text content extracted", ErrExtraction)
	}

	return &Result{
		Text:      string(text),
		PageCount: reader.NumPage(),
		Info:      documentInfo(reader),
	}, nil
}

// documentInfo pulls well-known entries from the PDF information dictionary.
func documentInfo(reader *pdf.Reader) map[string]string {
	info := make(map[string]string)

	dict := reader.Trailer().Key("Info")
	for _, key := range []string{"Title", "Author", "Subject", "Creator", "Producer"} {
		if value := dict.Key(key).Text(); value != "" {
			info[key] = value
		}
	}

	return info
}
