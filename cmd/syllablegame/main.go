package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// @title Syllable Game API
// @version 1.0
// @description Word data and progress statistics for the syllable assembly game

// @host localhost:8080
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
