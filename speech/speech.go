// Package speech is the boundary to speech-to-text: audio sample types,
// WAV import/export, and the Provider interface a transcription backend
// implements. Recognition itself (whisper or anything else) lives behind
// Provider and out of this module.
package speech

import (
	"context"
	"time"
)

// SampleRate is the rate transcription backends expect.
const SampleRate = 16000

// AudioData is mono PCM, float32 samples in [-1, 1].
type AudioData struct {
	SampleRate int
	Samples    []float32
}

func (a AudioData) Duration() time.Duration {
	if a.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(a.Samples)) / float64(a.SampleRate) * float64(time.Second))
}

// Provider transcribes audio to text. Implementations may block; they are
// called on the caller's goroutine and honor ctx.
type Provider interface {
	Transcribe(ctx context.Context, audio AudioData) (string, error)
}

// RecognitionConfig tunes continuous-recognition callers that window a
// live audio stream before handing snippets to a Provider.
type RecognitionConfig struct {
	// WindowLength is how much trailing audio is retained.
	WindowLength time.Duration

	// CheckInterval is how often the window is inspected for a
	// completed transmission.
	CheckInterval time.Duration

	// ProbabilityThreshold gates how certain the voice-activity estimate
	// must be before a snippet is cut.
	ProbabilityThreshold float64

	// MaxSnippetLength bounds a single snippet handed to the Provider.
	MaxSnippetLength time.Duration
}

func DefaultRecognitionConfig() RecognitionConfig {
	return RecognitionConfig{
		WindowLength:         20 * time.Second,
		CheckInterval:        3000 * time.Millisecond,
		ProbabilityThreshold: 0.95,
		MaxSnippetLength:     17 * time.Second,
	}
}
