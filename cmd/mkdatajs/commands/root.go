package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zudsniper/mkdatajs/internal/config"
	"github.com/zudsniper/mkdatajs/internal/errs"
	"github.com/zudsniper/mkdatajs/internal/logger"
	"github.com/zudsniper/mkdatajs/internal/output"
	"github.com/zudsniper/mkdatajs/internal/segment"
	"github.com/zudsniper/mkdatajs/internal/transcribe"
)

type options struct {
	out            string
	envFile        string
	transcript     string
	saveTranscript string
	maxGap         time.Duration
	maxChars       int
	verbose        bool
	noColor        bool
}

// NewRootCommand builds the mkdatajs command. Output that is not the final
// confirmation goes to the command's stderr.
func NewRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "mkdatajs <audio>",
		Short: "Transcribe audio with speaker labels and write a data.js for the player",
		Long: `Transcribe a local audio file or an http(s) URL with AssemblyAI and write
the transcript as a browser script (window.APP_DATA) for the static player.

The API key is read from ASSEMBLY_AI_API_KEY, in the environment or in a .env
file (--env-file, $MKDATAJS_ENV, ~/.mkdatajs.env, ./.env).

Examples:
  mkdatajs talk.m4a
  mkdatajs https://example.com/talk.mp3 -o public/data.js
  mkdatajs talk.m4a --save-transcript raw.json
  mkdatajs talk.m4a --transcript raw.json --max-gap 1s`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), opts)
			return run(cmd, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.out, "out", "o", "data.js", "Output data.js path")
	f.StringVar(&opts.envFile, "env-file", "", "Extra env file to load before the defaults")
	f.StringVar(&opts.transcript, "transcript", "", "Build from a saved transcript JSON instead of calling the provider")
	f.StringVar(&opts.saveTranscript, "save-transcript", "", "Also write the provider transcript JSON to this path")
	f.DurationVar(&opts.maxGap, "max-gap", segment.DefaultMaxGap, "Longest silence merged into one segment (word fallback only)")
	f.IntVar(&opts.maxChars, "max-chars", segment.DefaultMaxChars, "Longest segment text in characters (word fallback only)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output")
	f.BoolVar(&opts.noColor, "no-color", os.Getenv("NO_COLOR") != "", "Disable colored logs")

	return cmd
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func setupLogging(w io.Writer, opts options) {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(logger.NewHandler(w, &logger.Options{
		Level:       level,
		TimeFormat:  time.TimeOnly,
		SrcFileMode: logger.Nop,
		NoColor:     opts.noColor,
	})))
}

func run(cmd *cobra.Command, opts options, audio string) error {
	config.LoadDefaultEnv(opts.envFile)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-gap") {
		cfg.MaxGap = opts.maxGap
	}
	if cmd.Flags().Changed("max-chars") {
		cfg.MaxChars = opts.maxChars
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var be transcribe.Backend
	if opts.transcript != "" {
		be = transcribe.NewFileBackend(opts.transcript)
	} else {
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}
		be = transcribe.NewAssemblyAIBackend(cfg.AssemblyAI())
	}

	if !transcribe.IsRemote(audio) {
		if _, err := os.Stat(audio); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return &errs.InputNotFoundError{Path: audio}
			}
			return fmt.Errorf("checking audio file: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	if opts.transcript != "" {
		slog.Info("Loading saved transcript...", "path", opts.transcript)
	} else {
		slog.Info("Transcribing with speaker labels...", "audio", audio)
	}
	tr, err := be.Transcribe(ctx, audio, transcribe.DefaultOptions)
	if err != nil {
		return err
	}

	if opts.saveTranscript != "" {
		if err := transcribe.SaveTranscript(opts.saveTranscript, tr); err != nil {
			return err
		}
		slog.Info("Saved transcript", "path", opts.saveTranscript)
	}

	if tr.Status != transcribe.StatusCompleted {
		return &errs.ProviderFailureError{Status: string(tr.Status), Detail: tr.Error}
	}
	slog.Debug("Transcript received", "utterances", len(tr.Utterances), "words", len(tr.Words))
	if len(tr.Utterances) == 0 {
		slog.Warn("No utterances returned; grouping words", "max_gap", cfg.MaxGap, "max_chars", cfg.MaxChars)
	}

	segs, err := segment.NewBuilder(cfg.SegmentOptions()).Build(tr)
	if err != nil {
		return err
	}

	if err := output.WriteDataJS(opts.out, output.AudioSource(audio), segs); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[ok] wrote %s with %d segments\n", opts.out, len(segs))
	return nil
}
