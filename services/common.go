package services

import (
	"context"
	"mime"
	"strings"
	"time"
)

// IsImageContentType reports whether the declared media type belongs to the
// image family. Parameters such as charset are ignored.
func IsImageContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mediaType)), "image/")
}

// withOptionalTimeout bounds ctx by timeout, a zero timeout leaves it as is.
func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
