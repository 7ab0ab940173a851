package aig

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithStrategy sets the steering strategy. Default: StrategyAdditive.
func WithStrategy(s Strategy) Option {
	return func(e *Engine) {
		e.strategy = s
	}
}

// WithAlpha sets the global gain for positive-strength concepts.
// Default: 10.
func WithAlpha(alpha float32) Option {
	return func(e *Engine) {
		e.alpha = alpha
	}
}

// WithBeta sets the global gain for negative-strength (steer-away)
// concepts. Default: 2.
func WithBeta(beta float32) Option {
	return func(e *Engine) {
		e.beta = beta
	}
}

// WithNormalize controls whether steered tensors are rescaled back to the
// input's per-position L2 norm. Default: true. Disabling it lets steering
// amplify or deflate signal magnitude, which can destabilize downstream
// layers.
func WithNormalize(normalize bool) Option {
	return func(e *Engine) {
		e.normalize = normalize
	}
}

// WithLogger sets the engine logger. If nil is passed, logging is disabled.
func WithLogger(logger *Logger) Option {
	return func(e *Engine) {
		if logger == nil {
			logger = NoopLogger()
		}
		e.logger = logger
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(e *Engine) {
		if collector == nil {
			collector = NoopMetricsCollector{}
		}
		e.metrics = collector
	}
}
