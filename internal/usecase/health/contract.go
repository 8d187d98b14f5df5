package health

import "context"

// Pinger checks availability of one backing collection.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}
