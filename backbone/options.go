package backbone

import (
	"runtime"

	"go.uber.org/zap"
)

// Option customizes Classify.
type Option func(*options)

type options struct {
	logger      *zap.Logger
	concurrency int
}

func defaultOptions() options {
	return options{
		logger:      zap.NewNop(),
		concurrency: runtime.GOMAXPROCS(0),
	}
}

// WithLogger sets the logger for step summaries.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConcurrency bounds the number of systems processed at once. Values
// below 1 mean one system at a time.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.concurrency = n
	}
}
