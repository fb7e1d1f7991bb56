package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voiceclone-backend/internal/domain"
	"voiceclone-backend/internal/domain/model"
	"voiceclone-backend/internal/domain/ports/adapter"
)

var _ adapter.SpeechSynthesizer = (*XTTSAdapter)(nil)

// XTTSAdapter talks to an XTTS v2 inference server over HTTP. The server
// renders text with a reference sample and returns the path of the audio
// it wrote.
type XTTSAdapter struct {
	baseURL string
	client  *http.Client
}

func NewXTTSAdapter(baseURL string, timeout time.Duration) *XTTSAdapter {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &XTTSAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type ttsResponse struct {
	Status string `json:"status"`
	Output string `json:"output"`
	Detail string `json:"detail"`
}

func (a *XTTSAdapter) Synthesize(ctx context.Context, req adapter.SynthesisRequest) (string, error) {
	form := url.Values{}
	form.Set("user_id", req.AccountID)
	form.Set("voice_name", req.SampleRef)
	form.Set("text", req.Text)
	form.Set("language", req.Language)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/tts",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSynthesisFailed, err)
	}
	defer resp.Body.Close()

	var out ttsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrSynthesisFailed, err)
	}
	if resp.StatusCode != http.StatusOK || out.Status != "success" {
		msg := out.Detail
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("%w: %s", domain.ErrSynthesisFailed, msg)
	}
	return out.Output, nil
}

type gpuResponse struct {
	Current     float64 `json:"current"`
	MemoryUsed  float64 `json:"memory_used"`
	MemoryTotal float64 `json:"memory_total"`
	Temperature float64 `json:"temperature"`
}

// GPUStats is best effort. A dead engine yields zero stats, not an error
// on the admin dashboard.
func (a *XTTSAdapter) GPUStats(ctx context.Context) (model.GPUStats, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/gpu-stats", nil)
	if err != nil {
		return model.GPUStats{}, err
	}
	resp, err := a.client.Do(httpReq)
	if err != nil {
		return model.GPUStats{}, nil
	}
	defer resp.Body.Close()

	var out gpuResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.GPUStats{}, nil
	}
	return model.GPUStats{
		Current:     out.Current,
		MemoryUsed:  out.MemoryUsed,
		MemoryTotal: out.MemoryTotal,
		Temperature: out.Temperature,
	}, nil
}
