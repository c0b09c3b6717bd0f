package api

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ProcessBillRequest asks for a bill PDF to be ingested.
type ProcessBillRequest struct {
	BillID string `json:"billId"`
	PDFURL string `json:"pdfUrl"`
	Title  string `json:"title,omitempty"`
}

// ProcessBillResponse reports the outcome of an ingestion.
type ProcessBillResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	ChunksStored     int    `json:"chunksStored"`
	TotalChunks      int    `json:"totalChunks,omitempty"`
	OriginalLength   int    `json:"originalLength,omitempty"`
	Summary          string `json:"summary"`
	AlreadyProcessed bool   `json:"alreadyProcessed"`
	BillTitle        string `json:"billTitle,omitempty"`
	LastProcessed    string `json:"lastProcessed,omitempty"`
}

// ChatRequest asks a question about one bill.
type ChatRequest struct {
	Message string `json:"message"`
	BillID  string `json:"billId"`
}

// ChatResponse carries the generated answer and its grounding chunks.
type ChatResponse struct {
	Response string       `json:"response"`
	Sources  []ChatSource `json:"sources"`
	BillID   string       `json:"billId"`
}

// ChatSource is one retrieved chunk, with a content preview.
type ChatSource struct {
	Score      float32 `json:"score"`
	ChunkIndex int     `json:"chunkIndex"`
	Content    string  `json:"content"`
}

// BillSummaryResponse carries the generated summary for a stored bill.
type BillSummaryResponse struct {
	BillID  string `json:"billId"`
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
	HasData bool   `json:"hasData"`
}
