// SPDX-License-Identifier: Apache-2.0

package alloc

import "github.com/rs/zerolog"

// Option represents a configuration option for an allocator variant.
type Option func(*config)

type config struct {
	log zerolog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		log: zerolog.Nop(), // trace is discarded unless a logger is supplied
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger routes the allocate/deallocate trace to l. The trace is an
// observational side channel; its format is not part of the allocator
// contract.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}
