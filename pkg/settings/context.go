package settings

import (
	"context"
)

type runContextKey struct{}

// IntoContext stores run settings in ctx.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, runContextKey{}, s)
}

// FromContext retrieves run settings from ctx.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(runContextKey{}).(*Run)
	return s, ok && s != nil
}
