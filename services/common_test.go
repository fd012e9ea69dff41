package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsImageContentType(t *testing.T) {
	for contentType, want := range map[string]bool{
		"image/png":                true,
		"image/jpeg":               true,
		"IMAGE/WEBP":               true,
		"image/heic; quality=high": true,
		"":                         false,
		"text/plain":               false,
		"application/octet-stream": false,
		"imagex/png":               false,
	} {
		assert.Equal(t, want, IsImageContentType(contentType), contentType)
	}
}

func TestWithOptionalTimeout(t *testing.T) {
	ctx, cancel := withOptionalTimeout(context.Background(), 0)
	_, ok := ctx.Deadline()
	cancel()
	assert.False(t, ok)

	ctx, cancel = withOptionalTimeout(context.Background(), time.Second)
	defer cancel()
	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
}

func TestErrorKinds(t *testing.T) {
	assert.Equal(t, "invalid_input", InvalidInput.String())
	assert.Equal(t, "ai_format_error", AIFormatError.String())
	assert.Equal(t, "service_unavailable", ServiceUnavailable.String())
	assert.Equal(t, "upstream_error", UpstreamError.String())

	assert.Equal(t, UpstreamError, KindOf(context.DeadlineExceeded))
	wrapped := AsAppError(context.DeadlineExceeded, "istek zaman aşımına uğradı")
	assert.Equal(t, UpstreamError, wrapped.Kind)
	assert.ErrorIs(t, wrapped, context.DeadlineExceeded)

	original := NewAppError(InvalidInput, "x", nil)
	assert.Same(t, original, AsAppError(original, "y"))
}
