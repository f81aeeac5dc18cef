// Package vectorstore holds the persistent document index: embedded page
// units searchable by cosine similarity.
package vectorstore

// Entry is one indexed document unit with its embedding.
type Entry struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Vector   []float32      `json:"vector"`
}

// Result is a matching entry with its similarity score.
type Result struct {
	Entry Entry
	Score float64
}

// Store persists entries and supports similarity search.
type Store interface {
	Add(entries []Entry) error
	Search(vector []float32, topK int) ([]Result, error)
	Count() int
}
