package main

import (
	"os"

	"github.com/robinrj6/FFmpeg-batch/cmd/ffbatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
