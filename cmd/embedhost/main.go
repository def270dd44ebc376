package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/embedhost/backend/internal/app"
)

func main() {
	ctx := context.Background()
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		slog.Error("embedhost exited", "command", os.Args[1:], "error", err)
		os.Exit(1)
	}
}
