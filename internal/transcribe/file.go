package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileBackend replays a transcript saved by SaveTranscript.
// The audio argument is ignored; the file stands in for the provider.
type FileBackend struct {
	Path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

func (f *FileBackend) Transcribe(_ context.Context, _ string, _ Options) (Transcript, error) {
	return LoadTranscript(f.Path)
}

// LoadTranscript reads a transcript JSON file.
func LoadTranscript(path string) (Transcript, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Transcript{}, fmt.Errorf("read transcript: %w", err)
	}
	var tr Transcript
	if err := json.Unmarshal(b, &tr); err != nil {
		return Transcript{}, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	// Files written by hand often omit the status.
	if tr.Status == "" {
		tr.Status = StatusCompleted
	}
	return tr, nil
}

// SaveTranscript writes tr as indented JSON.
func SaveTranscript(path string, tr Transcript) error {
	b, err := json.MarshalIndent(tr, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	b = append(b, '\n')
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
