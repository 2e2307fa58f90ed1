package portal

import "log/slog"

// Observer is notified of slot activity. Keys are formatted with %v.
type Observer interface {
	SlotCreated(key string)
	Published(key string)
	Consumed(key string, hit bool)
	SlotsDropped(n int)
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	observer Observer
}

// WithLogger sets the registry logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers a slot observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	o.logger = o.logger.With("component", "portal")
	return o
}
