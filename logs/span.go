package logs

import (
	"context"
	"crypto/rand"
)

// Span identifies one unit of work, e.g. the compilation of one script file.
type Span string

type spanKey struct{}

var SpanKey spanKey

type NewSpan func(ctx context.Context, parent Span) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, parent Span) (context.Context, Span) {

		if parent == "" {
			if v := ctx.Value(SpanKey); v != nil {
				parent = v.(Span)
			}
		}

		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)

		var args []any
		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.InfoContext(ctx, "new span", args...)

		return ctx, span
	}
}
