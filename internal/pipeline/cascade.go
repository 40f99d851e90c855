package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Strategy is one step of a cascade: Invoke fetches a raw payload and
// Validate turns it into a typed result.
type Strategy[T any] struct {
	Name     string
	Invoke   func(ctx context.Context) (any, error)
	Validate func(payload any) (T, error)
}

// cascade runs strategies in order and returns the first valid result.
// Every failure advances to the next strategy; none is retried.
type cascade[T any] struct {
	action  Action
	timeout time.Duration
	logger  *zap.Logger
	metrics *Metrics
}

func (c cascade[T]) run(ctx context.Context, strategies []Strategy[T]) (T, string, error) {
	var zero T
	attempts := make([]error, 0, len(strategies))

	for _, s := range strategies {
		payload, err := c.invoke(ctx, s)
		if err != nil {
			err = &TransportError{Strategy: s.Name, Cause: err}
			c.fail(s.Name, outcomeTransport, err)
			attempts = append(attempts, err)
			continue
		}

		result, err := s.Validate(payload)
		if err != nil {
			err = &ShapeValidationError{Strategy: s.Name, Cause: err}
			c.fail(s.Name, outcomeInvalidShape, err)
			attempts = append(attempts, err)
			continue
		}

		c.metrics.observe(c.action, s.Name, outcomeSuccess)
		c.logger.Debug("strategy succeeded",
			zap.String("action", string(c.action)),
			zap.String("strategy", s.Name),
			zap.Int("failed_before", len(attempts)))
		return result, s.Name, nil
	}

	return zero, "", &CascadeExhaustedError{Action: c.action, Attempts: attempts}
}

func (c cascade[T]) invoke(ctx context.Context, s Strategy[T]) (any, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return s.Invoke(ctx)
}

func (c cascade[T]) fail(strategy, outcome string, err error) {
	c.metrics.observe(c.action, strategy, outcome)
	c.logger.Warn("strategy failed",
		zap.String("action", string(c.action)),
		zap.String("strategy", strategy),
		zap.String("outcome", outcome),
		zap.Error(err))
}
