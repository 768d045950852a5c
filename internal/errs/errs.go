// Package errs holds the terminal failure kinds of a mkdatajs run.
// Every one of them aborts the run with a single message and exit status 1.
package errs

import "fmt"

// ConfigurationError reports a missing secret or an invalid setting.
type ConfigurationError struct {
	Key    string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := "configuration error"
	if e.Key != "" {
		msg += ": " + e.Key
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// InputNotFoundError reports a local audio path that does not exist.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("audio file not found: %s", e.Path)
}

// ProviderFailureError reports a transcription that never reached the
// completed state, or a provider call that failed outright.
type ProviderFailureError struct {
	Status string
	Detail string
	Err    error
}

func (e *ProviderFailureError) Error() string {
	msg := "transcription not completed"
	if e.Status != "" {
		msg += ": status=" + e.Status
	}
	if e.Detail != "" {
		msg += ", error=" + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderFailureError) Unwrap() error { return e.Err }

// EmptyTranscriptError reports a transcript with no utterances and no usable words.
type EmptyTranscriptError struct{}

func (e *EmptyTranscriptError) Error() string {
	return "no utterances or words returned; check API config or media content"
}
