// Package ioctx threads output writers through a context, so library code
// can print to whatever stdout/stderr the caller established without
// touching os directly.
package ioctx

import (
	"context"
	"io"
)

type stdoutKey struct{}
type stderrKey struct{}

// StdoutToContext returns a context carrying w as its stdout.
func StdoutToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stdoutKey{}, w)
}

// StdoutFromContext returns the context's stdout, or io.Discard when none
// was established.
func StdoutFromContext(ctx context.Context) io.Writer {
	w, ok := ctx.Value(stdoutKey{}).(io.Writer)
	if !ok {
		return io.Discard
	}
	return w
}

// StderrToContext returns a context carrying w as its stderr.
func StderrToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stderrKey{}, w)
}

// StderrFromContext returns the context's stderr, or io.Discard when none
// was established.
func StderrFromContext(ctx context.Context) io.Writer {
	w, ok := ctx.Value(stderrKey{}).(io.Writer)
	if !ok {
		return io.Discard
	}
	return w
}
