package diarize

import "strconv"

// Labeler assigns display names to raw provider speaker ids.
// Numbers follow first appearance: the first distinct id seen becomes
// "Speaker 1", the next "Speaker 2", whatever the ids look like.
// A Labeler belongs to one build; create a new one per transcript.
type Labeler struct {
	index map[string]int
	order []string
}

func NewLabeler() *Labeler {
	return &Labeler{index: make(map[string]int)}
}

// Label returns the display name for raw, or "" when raw is nil.
// A nil id does not take a number.
func (l *Labeler) Label(raw *string) string {
	if raw == nil {
		return ""
	}
	n, ok := l.index[*raw]
	if !ok {
		l.order = append(l.order, *raw)
		n = len(l.order)
		l.index[*raw] = n
	}
	return speakerName(n)
}

// Speakers returns the raw ids in the order they were first labeled.
func (l *Labeler) Speakers() []string {
	return append([]string(nil), l.order...)
}

func speakerName(i int) string {
	return "Speaker " + strconv.Itoa(i)
}
