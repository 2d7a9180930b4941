package modules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"gifts_buyer/pkg/contextx"
	"gifts_buyer/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Runner is any long-lived component that blocks until ctx is done.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a plain function to Runner.
type RunnerFunc func(ctx context.Context) error

func (f RunnerFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Background starts runner in g under name. Cancellation is not an error.
type Background struct {
	Name   string
	Runner Runner
}

func (b Background) Run(ctx context.Context, g *errgroup.Group) {
	if b.Runner == nil {
		return
	}

	g.Go(func() error {
		if err := b.Runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("%s.Run: %w", b.Name, err)
		}

		return nil
	})
}

// Restarting runs Runner again after it fails, waiting Delay between
// attempts. It returns only when ctx is done.
type Restarting struct {
	Name   string
	Runner Runner
	Delay  time.Duration
	Sleep  func(ctx context.Context, d time.Duration) error
}

func (r Restarting) Run(ctx context.Context) error {
	sleep := r.Sleep
	if sleep == nil {
		sleep = contextx.Sleep
	}

	for {
		err := r.Runner.Run(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		logger(ctx).Warn("runner stopped, restarting",
			slog.String(logx.FieldModule, r.Name),
			slog.Duration("delay", r.Delay),
			logx.Error(err),
		)

		if err := sleep(ctx, r.Delay); err != nil {
			return err
		}
	}
}
