package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, &Options{Level: slog.LevelInfo, NoColor: true}))

	log.Info("Transcript submitted", "id", "tr_1", "status", "queued")
	log.Debug("hidden")
	log.Error("transcription failed", Err(errors.New("boom")))

	assert.Equal(t,
		"[info] Transcript submitted id=tr_1 status=queued\n"+
			"[error] transcription failed err=boom\n",
		buf.String())
}

func TestHandlerDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, &Options{Level: slog.LevelDebug, NoColor: true}))

	log.Debug("polling", "attempt", 2)
	assert.Equal(t, "[debug] polling attempt=2\n", buf.String())
}

func TestHandlerGroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, &Options{NoColor: true})).
		WithGroup("seg").
		With("run", "a")

	log.Warn("long segment", "chars", 240)
	assert.Equal(t, "[warn] long segment seg.run=a seg.chars=240\n", buf.String())
}

func TestStripANSI(t *testing.T) {
	buf := bytes.NewBufferString("\x1b[34m[info]\x1b[0m hello")
	stripANSI(buf)
	assert.Equal(t, "[info] hello", buf.String())
}
