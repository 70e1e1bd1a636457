package telemetry

import (
	"context"
	"time"
)

// NoOp is a recorder that does nothing.
type NoOp struct{}

func (NoOp) ObserveRun(context.Context, string, string, time.Duration) {}

func (NoOp) Close(context.Context) error {
	return nil
}
