package model

import (
	"time"
	"unicode/utf8"

	"voiceclone-backend/internal/domain"

	"github.com/google/uuid"
)

type GenerationJobStatus string

const (
	GenerationJobStatusQueued     GenerationJobStatus = "queued"
	GenerationJobStatusProcessing GenerationJobStatus = "processing"
	GenerationJobStatusCompleted  GenerationJobStatus = "completed"
	GenerationJobStatusFailed     GenerationJobStatus = "failed"
)

// GenerationJob is one text-to-speech request and its asynchronous
// lifecycle. CreditsCharged is debited when the job is created and
// credited back exactly once if the job ends failed. VoiceName and
// SampleRef are snapshots so deleting the voice later does not
// invalidate the job or its stored result.
type GenerationJob struct {
	ID             string              `json:"id"`
	AccountID      string              `json:"account_id"`
	VoiceID        string              `json:"voice_id"`
	VoiceName      string              `json:"voice_name"`
	SampleRef      string              `json:"-"`
	Text           string              `json:"text"`
	Language       string              `json:"language"`
	CreditsCharged int64               `json:"credits_charged"`
	Status         GenerationJobStatus `json:"status"`
	AudioURL       string              `json:"audio_url,omitempty"`
	LastError      string              `json:"error,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	StartedAt      *time.Time          `json:"started_at,omitempty"`
	FinishedAt     *time.Time          `json:"finished_at,omitempty"`
}

func NewGenerationJob(accountID string, voice *Voice, text, language string) (*GenerationJob, error) {
	if accountID == "" || voice == nil || text == "" {
		return nil, domain.ErrInvalidArgument
	}
	if language == "" {
		language = "en"
	}
	return &GenerationJob{
		ID:             uuid.NewString(),
		AccountID:      accountID,
		VoiceID:        voice.ID,
		VoiceName:      voice.Name,
		SampleRef:      voice.SampleRef,
		Text:           text,
		Language:       language,
		CreditsCharged: GenerationCost(text),
		Status:         GenerationJobStatusQueued,
		CreatedAt:      time.Now(),
	}, nil
}

// GenerationCost charges one credit per 10 characters, minimum one.
func GenerationCost(text string) int64 {
	cost := int64(utf8.RuneCountInString(text) / 10)
	if cost < 1 {
		cost = 1
	}
	return cost
}

func (j *GenerationJob) Terminal() bool {
	return j.Status == GenerationJobStatusCompleted || j.Status == GenerationJobStatusFailed
}
