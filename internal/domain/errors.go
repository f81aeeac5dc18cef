package domain

import "errors"

var (
	// ErrExtraction indicates a PDF parse or OCR failure. Fatal for the
	// affected PDF during ingestion; the batch continues with the next file.
	ErrExtraction = errors.New("extraction failed")
	// ErrEnrichment indicates a summary, keyword, or cleaning collaborator
	// failure. Always recovered locally with degraded content.
	ErrEnrichment = errors.New("enrichment failed")
	// ErrChatPipeline indicates a failure anywhere in the chat pipeline.
	// Recovered at the orchestrator boundary with a fixed apology.
	ErrChatPipeline = errors.New("chat pipeline failed")
	// ErrPersistence indicates a history write failure. Fatal to the request.
	ErrPersistence = errors.New("history persistence failed")
	// ErrNotFound indicates a missing resource.
	ErrNotFound = errors.New("resource not found")
)
