package main

import (
	"log"

	"github.com/hydroscope/hydroscope-backend/cmd"
)

// Set at build time through ldflags.
var (
	apiVersion      = "dev"
	segmentWriteKey = ""
)

func main() {
	config := cmd.CompiledConfig{
		Version:         apiVersion,
		SegmentWriteKey: segmentWriteKey,
	}

	if err := cmd.RunServer(config); err != nil {
		log.Fatal(err)
	}
}
