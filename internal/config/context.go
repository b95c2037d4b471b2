package config

import "context"

type ctxKey struct{}
type workDirKey struct{}

// WithConfig returns a new context carrying the effective config.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config from context, or Default() if none is set.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	return Default()
}

// WithWorkDir returns a new context carrying the working directory.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the working directory from context, or "".
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok {
		return dir
	}
	return ""
}
