package synthesis

import (
	"context"
	"fmt"

	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/adapter"
)

var _ adapter.SpeechSynthesizer = (*NoopAdapter)(nil)

// NoopAdapter fakes the voice engine for dev mode so the whole pipeline
// runs without a GPU box.
type NoopAdapter struct{}

func NewNoopAdapter() *NoopAdapter { return &NoopAdapter{} }

func (a *NoopAdapter) Synthesize(_ context.Context, req adapter.SynthesisRequest) (string, error) {
	return fmt.Sprintf("outputs/dev/%s.wav", req.JobID), nil
}

func (a *NoopAdapter) GPUStats(context.Context) (model.GPUStats, error) {
	return model.GPUStats{Current: 45, MemoryUsed: 6.2, MemoryTotal: 16, Temperature: 62}, nil
}
