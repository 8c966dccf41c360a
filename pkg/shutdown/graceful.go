package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/job-browser/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// Step is one named stage of the shutdown sequence
type Step struct {
	Name string
	Stop func(ctx context.Context) error
}

// Server adapts a Stoppable to a Step
func Server(name string, s Stoppable) Step {
	return Step{Name: name, Stop: s.Shutdown}
}

// Func adapts a plain close function to a Step
func Func(name string, fn func()) Step {
	return Step{Name: name, Stop: func(context.Context) error {
		fn()
		return nil
	}}
}

// Graceful blocks until one of signals arrives, then runs steps in order
func Graceful(signals []os.Signal, timeout time.Duration, log *logging.Logger, steps ...Step) {
	sigCtx, stop := signal.NotifyContext(context.Background(), signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	if err := Run(timeout, log, steps...); err != nil {
		log.Warn("graceful shutdown completed with error", "err", err)
		return
	}
	log.Info("graceful shutdown completed successfully")
}

// Run executes steps in order under a shared deadline. A failing step does not
// stop the ones after it.
func Run(timeout time.Duration, log *logging.Logger, steps ...Step) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	for _, step := range steps {
		if err := step.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", step.Name, err))
			continue
		}
		log.Debug("shutdown step done", "step", step.Name)
	}
	return errors.Join(errs...)
}
