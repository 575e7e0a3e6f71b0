package main

import (
	"fmt"
	"os"

	"lyricstag/internal/cli"
)

func main() {
	if err := cli.NewSetLyricsCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
