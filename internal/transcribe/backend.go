package transcribe

import (
	"context"
	"strings"
)

// Status is the provider's lifecycle state for a transcript.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Utterance is a provider-segmented span of speech. Times are milliseconds.
type Utterance struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker *string `json:"speaker,omitempty"` // nil when the provider gave no label
}

// Word is a single recognized word. Only read when utterances are missing.
type Word struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker *string `json:"speaker,omitempty"`
}

// Transcript is the provider's transcript resource, trimmed to the fields
// this tool reads. The same shape is used for cached transcript files.
type Transcript struct {
	ID         string      `json:"id,omitempty"`
	Status     Status      `json:"status"`
	Error      string      `json:"error,omitempty"`
	AudioURL   string      `json:"audio_url,omitempty"`
	Utterances []Utterance `json:"utterances,omitempty"`
	Words      []Word      `json:"words,omitempty"`
}

// Options is the transcription config sent with every request.
type Options struct {
	SpeakerLabels bool
	FormatText    bool
}

// DefaultOptions requests diarization and formatted text.
var DefaultOptions = Options{SpeakerLabels: true, FormatText: true}

// Backend is a pluggable transcription backend.
// audio is either a local path or an http(s) URL.
type Backend interface {
	Transcribe(ctx context.Context, audio string, opts Options) (Transcript, error)
}

// Speaker returns a pointer to id, for building utterances and words by hand.
func Speaker(id string) *string { return &id }

// IsRemote reports whether audio is an http(s) URL rather than a local path.
func IsRemote(audio string) bool {
	return strings.HasPrefix(audio, "http://") || strings.HasPrefix(audio, "https://")
}
