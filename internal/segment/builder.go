// Package segment turns a provider transcript into display segments.
//
// Utterances are preferred: each one becomes a segment as-is. When the
// provider returned only words, consecutive words are grouped greedily
// while the speaker stays the same, the silence between them stays within
// Options.MaxGap and the text stays within Options.MaxChars.
package segment

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zudsniper/mkdatajs/internal/diarize"
	"github.com/zudsniper/mkdatajs/internal/errs"
	"github.com/zudsniper/mkdatajs/internal/transcribe"
)

// Word grouping thresholds. These are readability choices for the player UI.
const (
	DefaultMaxGap   = 600 * time.Millisecond
	DefaultMaxChars = 240
)

// Segment is one line of the rendered transcript. Times are seconds.
type Segment struct {
	Start   float64
	End     float64
	Speaker string // "" when there is no speaker signal
	Text    string
}

// Options tunes the word fallback. Utterances are never merged.
type Options struct {
	MaxGap   time.Duration
	MaxChars int
}

func DefaultOptions() Options {
	return Options{MaxGap: DefaultMaxGap, MaxChars: DefaultMaxChars}
}

type Builder struct {
	opts Options
}

// NewBuilder returns a Builder. A non-positive MaxChars means DefaultMaxChars.
func NewBuilder(opts Options) *Builder {
	if opts.MaxChars <= 0 {
		opts.MaxChars = DefaultMaxChars
	}
	return &Builder{opts: opts}
}

// Build converts tr into segments sorted by start time. Speaker numbering
// starts over on every call. It fails with *errs.EmptyTranscriptError when
// no segment has any text.
func (b *Builder) Build(tr transcribe.Transcript) ([]Segment, error) {
	labels := diarize.NewLabeler()

	var segs []Segment
	if len(tr.Utterances) > 0 {
		segs = fromUtterances(tr.Utterances, labels)
	} else {
		segs = b.fromWords(tr.Words, labels)
	}
	if len(segs) == 0 {
		return nil, &errs.EmptyTranscriptError{}
	}

	sort.SliceStable(segs, func(i, j int) bool { return segs[i].Start < segs[j].Start })
	return segs, nil
}

func fromUtterances(utts []transcribe.Utterance, labels *diarize.Labeler) []Segment {
	out := make([]Segment, 0, len(utts))
	for _, u := range utts {
		text := strings.TrimSpace(u.Text)
		if text == "" {
			continue
		}
		out = append(out, newSegment(roundMs(u.Start), roundMs(u.End), text, labels.Label(u.Speaker)))
	}
	return out
}

// group is the open segment of the word pass, kept in whole milliseconds
// so gap comparisons are exact.
type group struct {
	startMs, endMs int64
	text           strings.Builder
	chars          int
	speaker        string
}

func (g *group) segment() Segment {
	return newSegment(g.startMs, g.endMs, g.text.String(), g.speaker)
}

func (b *Builder) fromWords(words []transcribe.Word, labels *diarize.Labeler) []Segment {
	var (
		out      []Segment
		cur      *group
		maxGapMs = b.opts.MaxGap.Milliseconds()
	)
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		speaker := labels.Label(w.Speaker)
		startMs, endMs := roundMs(w.Start), roundMs(w.End)
		n := utf8.RuneCountInString(text)

		if cur != nil &&
			speaker == cur.speaker &&
			startMs-cur.endMs <= maxGapMs &&
			cur.chars+1+n <= b.opts.MaxChars {
			cur.endMs = endMs
			cur.text.WriteByte(' ')
			cur.text.WriteString(text)
			cur.chars += 1 + n
			continue
		}

		if cur != nil {
			out = append(out, cur.segment())
		}
		cur = &group{startMs: startMs, endMs: endMs, speaker: speaker, chars: n}
		cur.text.WriteString(text)
	}
	if cur != nil {
		out = append(out, cur.segment())
	}
	return out
}

func newSegment(startMs, endMs int64, text, speaker string) Segment {
	if endMs < startMs {
		endMs = startMs
	}
	return Segment{
		Start:   float64(startMs) / 1000,
		End:     float64(endMs) / 1000,
		Speaker: speaker,
		Text:    text,
	}
}

// MsToSeconds converts provider milliseconds to seconds at millisecond
// precision. Fractional milliseconds round half away from zero.
func MsToSeconds(ms float64) float64 {
	return float64(roundMs(ms)) / 1000
}

func roundMs(ms float64) int64 {
	return int64(math.Round(ms))
}
