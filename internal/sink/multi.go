package sink

import (
	"context"
	"errors"

	"github.com/wonny/ideagen/internal/contracts"
)

// Multi fans every write out to all sinks in order; the first error wins
type Multi []contracts.Sink

var _ contracts.Sink = Multi(nil)

// WriteOHLC writes to every sink
func (m Multi) WriteOHLC(ctx context.Context, symbol string, points []contracts.OHLCPoint) error {
	for _, s := range m {
		if err := s.WriteOHLC(ctx, symbol, points); err != nil {
			return err
		}
	}
	return nil
}

// WritePayload writes to every sink
func (m Multi) WritePayload(ctx context.Context, payload *contracts.Payload) error {
	for _, s := range m {
		if err := s.WritePayload(ctx, payload); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink that holds resources
func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if c, ok := s.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
