package eventstream

import (
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the current event schema version.
const SchemaVersion = 1

// EventTypeDocumentIngested identifies a completed ingestion.
const EventTypeDocumentIngested = "billrag.document.ingested"

// DocumentIngestedEvent records a successful document ingestion.
type DocumentIngestedEvent struct {
	SchemaVersion int       `json:"schemaVersion"`
	EventType     string    `json:"eventType"`
	EventID       string    `json:"eventId"`
	EmittedAt     time.Time `json:"emittedAt"`

	DocumentID   string `json:"documentId"`
	Title        string `json:"title,omitempty"`
	SourceURL    string `json:"sourceUrl"`
	ChunksStored int    `json:"chunksStored"`
	PageCount    int    `json:"pageCount,omitempty"`
}

// NewDocumentIngestedEvent creates a DocumentIngestedEvent with a fresh event
// id and timestamp.
func NewDocumentIngestedEvent(documentID, title, sourceURL string, chunksStored, pageCount int) *DocumentIngestedEvent {
	return &DocumentIngestedEvent{
		SchemaVersion: SchemaVersion,
		EventType:     EventTypeDocumentIngested,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		DocumentID:    documentID,
		Title:         title,
		SourceURL:     sourceURL,
		ChunksStored:  chunksStored,
		PageCount:     pageCount,
	}
}
