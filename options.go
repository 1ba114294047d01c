package docxscrub

import "log/slog"

type processConfig struct {
	limits    Limits
	workers   int
	overwrite bool
	logger    *slog.Logger
}

type ProcessOption func(*processConfig)

func WithLimits(l Limits) ProcessOption {
	return func(c *processConfig) { c.limits = l }
}

// WithWorkers sets the number of goroutines rewriting text-bearing parts.
// Values below 2 keep the pipeline sequential. Output entry order matches
// input entry order regardless of the worker count.
func WithWorkers(n int) ProcessOption {
	return func(c *processConfig) { c.workers = n }
}

// WithOverwrite allows Process to replace an existing output file.
// Without it, Process fails with ErrOutputExists.
func WithOverwrite(v bool) ProcessOption {
	return func(c *processConfig) { c.overwrite = v }
}

func WithLogger(l *slog.Logger) ProcessOption {
	return func(c *processConfig) { c.logger = l }
}
