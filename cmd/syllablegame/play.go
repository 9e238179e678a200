package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/syllablegame/backend/internal/client"
	"github.com/syllablegame/backend/internal/tui"
)

type playConfig struct {
	server     string
	difficulty string
	category   string
	attempts   int
	backoff    time.Duration
	timeout    time.Duration
}

func (c *playConfig) validate() error {
	if c.server == "" {
		return fmt.Errorf("--server is required")
	}
	if c.attempts < 1 {
		return fmt.Errorf("invalid --attempts (must be at least 1): %d", c.attempts)
	}
	if c.backoff < 0 {
		return fmt.Errorf("invalid --backoff (must not be negative): %s", c.backoff)
	}
	return nil
}

func newPlayCmd() *cobra.Command {
	cfg := &playConfig{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal against a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}

			api := client.New(client.Config{
				BaseURL:     cfg.server,
				Timeout:     cfg.timeout,
				MaxAttempts: cfg.attempts,
				BackoffStep: cfg.backoff,
			}, nil)

			return tui.Run(cmd.Context(), api, tui.Options{
				Difficulty: cfg.difficulty,
				Category:   cfg.category,
			})
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&cfg.server, "server", "s", "http://localhost:8080", "game server base URL (env: PHONICS_SERVER)")
	fs.StringVarP(&cfg.difficulty, "difficulty", "d", "easy", "initial difficulty (env: PHONICS_DIFFICULTY)")
	fs.StringVarP(&cfg.category, "category", "c", "", "initial category, empty for any (env: PHONICS_CATEGORY)")
	fs.IntVar(&cfg.attempts, "attempts", 3, "attempts per API call (env: PHONICS_ATTEMPTS)")
	fs.DurationVar(&cfg.backoff, "backoff", 300*time.Millisecond, "linear backoff step between attempts (env: PHONICS_BACKOFF)")
	fs.DurationVar(&cfg.timeout, "timeout", 10*time.Second, "timeout of a single HTTP attempt (env: PHONICS_TIMEOUT)")

	bindEnv(fs)

	return cmd
}
