package stt

import "context"

// Result is the provider's transcript with whatever metadata it can give.
// DurationSeconds is 0 when the provider cannot measure the audio.
type Result struct {
	Text            string
	Confidence      float64
	DurationSeconds float64
}

// Provider is the opaque speech-to-text boundary.
type Provider interface {
	Transcribe(ctx context.Context, audio []byte, language string) (Result, error)
	Close() error
}
