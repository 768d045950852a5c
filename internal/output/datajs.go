package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zudsniper/mkdatajs/internal/segment"
	"github.com/zudsniper/mkdatajs/internal/transcribe"
)

// GlobalName is the variable the player page reads.
const GlobalName = "window.APP_DATA"

// jsEscaper applies all replacements in one pass, so the backslashes it
// inserts before quotes are never escaped again.
var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", " ",
	"\r", " ",
	`"`, `\"`,
)

func jsString(s string) string {
	return `"` + jsEscaper.Replace(s) + `"`
}

func jsNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// AudioSource returns the audioSrc value for ref: URLs are kept as-is and
// local paths are reduced to their file name, which the page resolves
// next to data.js.
func AudioSource(ref string) string {
	if transcribe.IsRemote(ref) {
		return ref
	}
	return filepath.Base(ref)
}

// RenderDataJS renders the player data file. The field names, their order
// and the global name are what the front-end reads; the output is the same
// bytes for the same input.
func RenderDataJS(audioSrc string, segs []segment.Segment) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s = {\n", GlobalName)
	fmt.Fprintf(&b, "  audioSrc: %s,\n", jsString(audioSrc))
	b.WriteString("  transcript: [\n")
	for _, s := range segs {
		speaker := "null"
		if s.Speaker != "" {
			speaker = jsString(s.Speaker)
		}
		fmt.Fprintf(&b, "    { start: %s, end: %s, speaker: %s, text: %s },\n",
			jsNumber(s.Start), jsNumber(s.End), speaker, jsString(s.Text))
	}
	b.WriteString("  ],\n")
	// Reserved for annotations added by hand after generation.
	b.WriteString("  commentary: []\n")
	b.WriteString("};\n")
	return b.Bytes()
}

// WriteDataJS renders the whole file before touching path.
func WriteDataJS(path, audioSrc string, segs []segment.Segment) error {
	if err := os.WriteFile(path, RenderDataJS(audioSrc, segs), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
