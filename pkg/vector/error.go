package vector

import "errors"

var (
	// ErrStore is returned when a vector store query or upsert fails.
	ErrStore = errors.New("vector store operation failed")

	// ErrConnection is returned when the vector store connection fails.
	ErrConnection = errors.New("vector store connection failed")
)
