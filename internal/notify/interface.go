package notify

import "context"

// Sink receives mutation outcome notifications. Implementations must treat
// Publish as fire-and-forget: a failing sink never fails the mutation that
// produced the notification.
type Sink interface {
	Publish(ctx context.Context, n *Notification) error

	// Close releases any underlying connection
	Close() error
}

// Consumer delivers notifications to an out-of-process worker.
type Consumer interface {
	// Consume returns a channel of notifications and a channel of transport
	// errors. Both are closed when the context is cancelled.
	Consume(ctx context.Context) (<-chan *Notification, <-chan error, error)

	Close() error
}
