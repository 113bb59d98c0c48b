package handlers

import (
	"context"
	"net/http"
	"time"
)

// contextWithTimeout derives a request-scoped context so client
// disconnects cancel in-flight model calls.
func contextWithTimeout(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), d)
}
