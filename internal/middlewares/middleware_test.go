package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RequestTag(t *testing.T) {
	mw := NewMiddleware()

	var seenID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()

	mw.RequestTag(inner).ServeHTTP(rec, req)

	require.NotEmpty(t, seenID)
	_, err := uuid.Parse(seenID)
	assert.NoError(t, err, "request id should be a uuid, got %q", seenID)
}

func Test_RequestIDFromContext_untagged(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
}
