package core

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	t.Parallel()

	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	stored := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Same(t, fallback, Logger(context.Background(), fallback))
	assert.Same(t, stored, Logger(WithLogger(context.Background(), stored), fallback))
	assert.Same(t, slog.Default(), Logger(context.Background(), nil))
	assert.Same(t, fallback, Logger(WithLogger(context.Background(), nil), fallback))
}
