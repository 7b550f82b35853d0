package middlewares

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey struct{}

var requestIDKey contextKey = contextKey{}

type middleware struct{}

func NewMiddleware() *middleware {
	return &middleware{}
}

// RequestTag assigns every request a uuid and logs method, path and
// duration under it, so concurrent order-creation attempts can be told
// apart in the log.
func (mw *middleware) RequestTag(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))

		log.Printf(
			"[%s] %s %s took %s\n",
			requestID,
			r.Method,
			r.URL.Path,
			time.Since(start),
		)
	})
}

// RequestIDFromContext returns the request id set by RequestTag, or an
// empty string outside a tagged request.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey).(string)
	return requestID
}
