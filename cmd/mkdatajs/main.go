// Command mkdatajs transcribes an audio file with speaker labels and writes
// the data.js consumed by the static transcript player.
//
// Usage:
//
//	mkdatajs [flags] <audio path or URL>
//
// Run with --help for the flag list.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/zudsniper/mkdatajs/cmd/mkdatajs/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}
