package segment

import (
	"sort"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"pgregory.net/rapid"

	"github.com/zudsniper/mkdatajs/internal/transcribe"
)

var speakerGen = rapid.SampledFrom([]string{"", "A", "B", "C", "SPEAKER_00"})

func drawSpeaker(rt *rapid.T, label string) *string {
	s := speakerGen.Draw(rt, label)
	if s == "" {
		return nil
	}
	return transcribe.Speaker(s)
}

// firstAppearance is the reference numbering the builder must agree with.
func firstAppearance(ids []*string) []string {
	seen := map[string]int{}
	out := make([]string, len(ids))
	for i, id := range ids {
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; !ok {
			seen[*id] = len(seen) + 1
		}
		out[i] = "Speaker " + strconv.Itoa(seen[*id])
	}
	return out
}

func TestUtterancePathProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 40).Draw(rt, "n")
		utts := make([]transcribe.Utterance, n)
		ids := make([]*string, n)
		var at float64
		for i := range utts {
			at += float64(rapid.IntRange(0, 5000).Draw(rt, "gap"))
			dur := float64(rapid.IntRange(0, 8000).Draw(rt, "dur"))
			ids[i] = drawSpeaker(rt, "speaker")
			utts[i] = transcribe.Utterance{
				Start:   at,
				End:     at + dur,
				Text:    " " + rapid.StringMatching(`[a-z]{1,12}`).Draw(rt, "text") + " ",
				Speaker: ids[i],
			}
		}

		segs, err := NewBuilder(DefaultOptions()).Build(transcribe.Transcript{Utterances: utts})
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if len(segs) != n {
			rt.Fatalf("got %d segments for %d utterances", len(segs), n)
		}
		want := firstAppearance(ids)
		for i, s := range segs {
			if s.Text != strings.TrimSpace(utts[i].Text) {
				rt.Fatalf("segment %d text %q, want %q", i, s.Text, strings.TrimSpace(utts[i].Text))
			}
			if s.Speaker != want[i] {
				rt.Fatalf("segment %d speaker %q, want %q", i, s.Speaker, want[i])
			}
			if s.End < s.Start {
				rt.Fatalf("segment %d ends before it starts", i)
			}
		}
	})
}

func TestWordPathProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 120).Draw(rt, "n")
		maxChars := rapid.IntRange(20, 240).Draw(rt, "maxChars")
		words := make([]transcribe.Word, n)
		var texts []string
		var at float64
		for i := range words {
			at += float64(rapid.IntRange(0, 1500).Draw(rt, "gap"))
			text := rapid.StringMatching(`[a-zA-Z']{1,15}`).Draw(rt, "text")
			if rapid.IntRange(0, 9).Draw(rt, "blank") == 0 {
				text = "   "
			} else {
				texts = append(texts, text)
			}
			words[i] = transcribe.Word{Start: at, End: at + 200, Text: text, Speaker: drawSpeaker(rt, "speaker")}
			at += 200
		}

		b := NewBuilder(Options{MaxGap: DefaultMaxGap, MaxChars: maxChars})
		segs, err := b.Build(transcribe.Transcript{Words: words})
		if len(texts) == 0 {
			if err == nil {
				rt.Fatalf("expected an error for an all-blank word list")
			}
			return
		}
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}

		if !sort.SliceIsSorted(segs, func(i, j int) bool { return segs[i].Start < segs[j].Start }) {
			rt.Fatalf("segments not sorted by start")
		}
		joined := make([]string, len(segs))
		for i, s := range segs {
			if s.Text == "" {
				rt.Fatalf("segment %d has empty text", i)
			}
			if utf8.RuneCountInString(s.Text) > maxChars {
				rt.Fatalf("segment %d has %d chars, cap %d", i, utf8.RuneCountInString(s.Text), maxChars)
			}
			joined[i] = s.Text
		}
		if strings.Join(joined, " ") != strings.Join(texts, " ") {
			rt.Fatalf("words lost or reordered")
		}
	})
}
