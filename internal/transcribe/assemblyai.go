package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/zudsniper/mkdatajs/internal/errs"
)

// AssemblyAI REST backend.
// Local files go through POST /upload first; the transcript is then created
// with POST /transcript and polled via GET /transcript/{id}.
const (
	DefaultAssemblyAIURL = "https://api.assemblyai.com/v2"
	DefaultPollInterval  = 3 * time.Second
)

// AssemblyAIConfig holds configuration for the AssemblyAI backend.
type AssemblyAIConfig struct {
	APIKey       string
	BaseURL      string        // defaults to DefaultAssemblyAIURL
	PollInterval time.Duration // defaults to DefaultPollInterval
	HTTPClient   *http.Client  // defaults to a cleanhttp pooled client
}

type assemblyAIBackend struct {
	apiKey       string
	baseURL      string
	pollInterval time.Duration
	hc           *http.Client
}

func NewAssemblyAIBackend(cfg AssemblyAIConfig) Backend {
	b := &assemblyAIBackend{
		apiKey:       cfg.APIKey,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		pollInterval: cfg.PollInterval,
		hc:           cfg.HTTPClient,
	}
	if b.baseURL == "" {
		b.baseURL = DefaultAssemblyAIURL
	}
	if b.pollInterval <= 0 {
		b.pollInterval = DefaultPollInterval
	}
	if b.hc == nil {
		b.hc = cleanhttp.DefaultPooledClient()
	}
	return b
}

type aaiUploadResp struct {
	UploadURL string `json:"upload_url"`
}

type aaiTranscriptReq struct {
	AudioURL      string `json:"audio_url"`
	SpeakerLabels bool   `json:"speaker_labels"`
	FormatText    bool   `json:"format_text"`
}

func (a *assemblyAIBackend) Transcribe(ctx context.Context, audio string, opts Options) (Transcript, error) {
	audioURL := audio
	if !IsRemote(audio) {
		slog.Info("Uploading audio...", "path", audio)
		u, err := a.upload(ctx, audio)
		if err != nil {
			return Transcript{}, err
		}
		audioURL = u
	}

	var tr Transcript
	body := aaiTranscriptReq{AudioURL: audioURL, SpeakerLabels: opts.SpeakerLabels, FormatText: opts.FormatText}
	if err := a.doJSON(ctx, http.MethodPost, "/transcript", body, &tr); err != nil {
		return Transcript{}, err
	}
	slog.Info("Transcript submitted", "id", tr.ID, "status", tr.Status)

	return a.poll(ctx, tr)
}

func (a *assemblyAIBackend) upload(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/upload", f)
	if err != nil {
		return "", err
	}
	req.ContentLength = fi.Size()
	req.Header.Set("Content-Type", "application/octet-stream")

	var ur aaiUploadResp
	if err := a.do(req, &ur); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	if ur.UploadURL == "" {
		return "", &errs.ProviderFailureError{Detail: "upload returned no upload_url"}
	}
	return ur.UploadURL, nil
}

// poll re-fetches tr until it reaches a terminal status. It does not retry
// failed requests; any HTTP failure ends the run.
func (a *assemblyAIBackend) poll(ctx context.Context, tr Transcript) (Transcript, error) {
	if tr.ID == "" {
		return Transcript{}, &errs.ProviderFailureError{Status: string(tr.Status), Detail: "transcript has no id"}
	}
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	last := tr.Status
	for tr.Status != StatusCompleted && tr.Status != StatusError {
		select {
		case <-ctx.Done():
			return Transcript{}, &errs.ProviderFailureError{Status: string(last), Err: ctx.Err()}
		case <-ticker.C:
		}
		var next Transcript
		if err := a.doJSON(ctx, http.MethodGet, "/transcript/"+tr.ID, nil, &next); err != nil {
			return Transcript{}, err
		}
		tr = next
		if tr.Status != last {
			slog.Info("Transcript status changed", "id", tr.ID, "status", tr.Status)
			last = tr.Status
		}
	}
	return tr, nil
}

func (a *assemblyAIBackend) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.do(req, out)
}

func (a *assemblyAIBackend) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", a.apiKey)
	resp, err := a.hc.Do(req)
	if err != nil {
		return &errs.ProviderFailureError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &errs.ProviderFailureError{
			Detail: fmt.Sprintf("assemblyai http %d: %s", resp.StatusCode, strings.TrimSpace(string(b))),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &errs.ProviderFailureError{Err: fmt.Errorf("decode %s response: %w", req.URL.Path, err)}
	}
	return nil
}
