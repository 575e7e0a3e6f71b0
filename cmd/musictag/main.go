package main

import (
	"fmt"
	"os"

	"lyricstag/internal/cli"
)

func main() {
	if err := cli.NewMusicTagCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
