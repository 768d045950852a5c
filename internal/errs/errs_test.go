package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "missing key",
			err:  &ConfigurationError{Key: "ASSEMBLY_AI_API_KEY", Reason: "missing in environment/.env"},
			want: "configuration error: ASSEMBLY_AI_API_KEY: missing in environment/.env",
		},
		{
			name: "input not found",
			err:  &InputNotFoundError{Path: "talk.m4a"},
			want: "audio file not found: talk.m4a",
		},
		{
			name: "provider status and detail",
			err:  &ProviderFailureError{Status: "error", Detail: "unsupported media"},
			want: "transcription not completed: status=error, error=unsupported media",
		},
		{
			name: "empty transcript",
			err:  &EmptyTranscriptError{},
			want: "no utterances or words returned; check API config or media content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("transcribing: %w", &ProviderFailureError{Err: cause})

	var pf *ProviderFailureError
	assert.True(t, errors.As(err, &pf))
	assert.ErrorIs(t, err, cause)

	var ce *ConfigurationError
	assert.False(t, errors.As(err, &ce))
}
