// Package transcriber turns a recorded utterance into a raw transcript via a
// Whisper-compatible HTTP API.
package transcriber

import (
	"context"
	"fmt"
)

type Transcriber interface {
	Name() string
	// Transcribe uploads encoded audio and returns the transcript, which may
	// be empty when no speech was detected. format is the container name
	// ("flac" or "wav").
	Transcribe(ctx context.Context, audio []byte, format string) (string, error)
}

func New(apiKey, language string) (Transcriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is not set")
	}
	return NewGroq(apiKey, language), nil
}
