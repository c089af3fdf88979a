// Command mediafixer is a batch media transcoder: it probes files with
// ffprobe, decides per file whether conversion is needed, and runs the
// required ffmpeg jobs across a worker pool with safe temp-file
// replacement.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mediafixer: %v\n", err)
		os.Exit(1)
	}
}
