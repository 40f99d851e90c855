package handoff

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Producer publishes snapshots.
type Producer struct {
	store  Store
	logger *zap.Logger
}

// NewProducer creates a Producer over store.
func NewProducer(store Store, logger *zap.Logger) *Producer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Producer{store: store, logger: logger}
}

// Publish validates s and overwrites the slot.
func (p *Producer) Publish(ctx context.Context, s *WorkingSetSnapshot) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	if err := p.store.Save(ctx, data); err != nil {
		return err
	}
	p.logger.Info("published working set",
		zap.String("repository", s.RepositoryReference),
		zap.Int("files", len(s.Files)),
		zap.String("mode", string(s.GenerateMode)))
	return nil
}

// Consumer takes snapshots.
type Consumer struct {
	store  Store
	logger *zap.Logger
}

// NewConsumer creates a Consumer over store.
func NewConsumer(store Store, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{store: store, logger: logger}
}

// Take reads the slot once and clears it. An empty slot returns
// ErrSnapshotMissing. A corrupt slot is cleared and reported.
func (c *Consumer) Take(ctx context.Context) (*WorkingSetSnapshot, error) {
	data, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.store.Clear(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear snapshot slot: %w", err)
	}

	s, err := decode(data)
	if err != nil {
		c.logger.Warn("discarded invalid working set", zap.Error(err))
		return nil, err
	}
	return s, nil
}
