// Command iris is git-iris's CLI entry point.
package main

import (
	"log/slog"
	"os"

	"github.com/jo-charles/git-iris/internal/cmdiris"
	"github.com/jo-charles/git-iris/internal/logging"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("IRIS_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logging.Init(logging.Options{Level: level})

	code := cmdiris.Execute()
	logging.Teardown()
	os.Exit(code)
}
