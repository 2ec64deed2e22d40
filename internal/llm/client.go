package llm

import (
	"context"
)

// Client is the generation provider contract. Generate returns the raw
// reply envelope; text extraction happens downstream.
type Client interface {
	Generate(ctx context.Context, req Request) ([]byte, error)
	Provider() string
}
