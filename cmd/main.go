package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/dasdy/monoframe/cmd/monoframe"
	"github.com/dasdy/monoframe/logging"
	"gitlab.com/greyxor/slogor"
)

func main() {
	// slogor prints everything; ContextHandler does the filtering so that
	// --verbose can lower the level after flags are parsed.
	level := new(slog.LevelVar)

	slog.SetDefault(slog.New(logging.ContextHandler{
		Handler: slogor.NewHandler(os.Stderr,
			slogor.SetLevel(slog.LevelDebug),
			slogor.SetTimeFormat(time.DateTime),
			slogor.ShowSource()),
		Level: level,
	}))

	monoframe.Execute(level)
}
