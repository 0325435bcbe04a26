package dedupe

// Option applies a configuration option to the InMemoryDeduper.
type Option func(*inMemoryDeduper)

// WithCaseFolding compares names case-insensitively when enabled.
func WithCaseFolding(enabled bool) Option {
	return func(d *inMemoryDeduper) {
		d.fold = enabled
	}
}
