// Package delivery defines the inbound transport boundary.
package delivery

import "context"

// Delivery is a serving surface the application runs until shutdown.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
