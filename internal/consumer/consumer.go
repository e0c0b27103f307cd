// Package consumer contains interface of background event consumers.
package consumer

import (
	"context"

	"github.com/Decentr-net/agora/internal/health"
)

// Consumer consumes events until the context is done.
type Consumer interface {
	health.Pinger

	// Subscribe starts listening to events. Events published after it returns are delivered to Run.
	Subscribe(ctx context.Context) error
	// Run processes events. It subscribes first if Subscribe wasn't called.
	Run(ctx context.Context) error
}
