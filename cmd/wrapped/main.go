package main

import (
	"log/slog"
	"os"
	_ "time/tzdata"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}
