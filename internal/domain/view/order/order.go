// Package order holds the single-key sort configuration of a data view.
package order

import (
	"fmt"

	"github.com/kailas-cloud/wareflow/internal/domain"
)

// Direction is the sort direction.
type Direction string

// Sort direction constants.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// IsValid checks if the direction is asc or desc.
func (d Direction) IsValid() bool {
	return d == Asc || d == Desc
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// Config is an immutable sort configuration. An empty key keeps input order.
type Config struct {
	key       string
	direction Direction
}

// New validates and creates a sort Config.
func New(key string, direction Direction) (Config, error) {
	if !direction.IsValid() {
		return Config{}, fmt.Errorf("%w: sort direction %q must be asc or desc",
			domain.ErrInvalidConfiguration, direction)
	}
	return Config{key: key, direction: direction}, nil
}

// None returns a Config that preserves input order.
func None() Config { return Config{direction: Asc} }

// Key returns the sort key ("" when unsorted).
func (c Config) Key() string { return c.key }

// Direction returns the sort direction.
func (c Config) Direction() Direction {
	if c.direction == "" {
		return Asc
	}
	return c.direction
}

// IsZero reports whether the config sorts nothing.
func (c Config) IsZero() bool { return c.key == "" }

// Toggle returns the config after the caller sorts on key:
// the same key flips direction, a new key resets to ascending.
func (c Config) Toggle(key string) Config {
	if key == c.key && key != "" {
		return Config{key: key, direction: c.Direction().Reverse()}
	}
	return Config{key: key, direction: Asc}
}

func (c Config) String() string {
	if c.IsZero() {
		return "none"
	}
	return c.key + " " + string(c.Direction())
}
