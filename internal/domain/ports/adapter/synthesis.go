package adapter

import (
	"context"

	"voiceclone-backend/internal/domain/model"
)

// SynthesisRequest carries everything the external TTS engine needs to
// render one utterance with a cloned voice.
type SynthesisRequest struct {
	JobID     string
	AccountID string
	SampleRef string
	Text      string
	Language  string
}

// SpeechSynthesizer is the external voice engine (XTTS server). Synthesize
// blocks until the engine produced audio or failed; the job pipeline calls
// it off the request path with its own timeout.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (audioURL string, err error)
	// GPUStats passes engine telemetry through to the admin dashboard.
	GPUStats(ctx context.Context) (model.GPUStats, error)
}
