package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubIDGenerator struct {
	id  string
	err error
}

func (g stubIDGenerator) NewID() (string, error) {
	return g.id, g.err
}

func requestIDEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(requestIDFromContext(r.Context())))
	})
}

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	t.Parallel()

	h := RequestID(stubIDGenerator{id: "generated"}, requestIDEcho())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/months", nil))

	assert.Equal(t, "generated", rr.Header().Get("X-Request-Id"))
	assert.Equal(t, "generated", rr.Body.String())
}

func TestRequestIDReusesWellFormedHeader(t *testing.T) {
	t.Parallel()

	h := RequestID(stubIDGenerator{id: "generated"}, requestIDEcho())
	req := httptest.NewRequest(http.MethodGet, "/v1/months", nil)
	req.Header.Set("X-Request-Id", "edge-42")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "edge-42", rr.Header().Get("X-Request-Id"))
	assert.Equal(t, "edge-42", rr.Body.String())
}

func TestRequestIDReplacesMalformedHeader(t *testing.T) {
	t.Parallel()

	h := RequestID(stubIDGenerator{id: "generated"}, requestIDEcho())
	req := httptest.NewRequest(http.MethodGet, "/v1/months", nil)
	req.Header.Set("X-Request-Id", "bad id<script>")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "generated", rr.Header().Get("X-Request-Id"))
}

func TestRequestIDGeneratorFailureStillServes(t *testing.T) {
	t.Parallel()

	h := RequestID(stubIDGenerator{err: errors.New("entropy")}, requestIDEcho())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/months", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("X-Request-Id"))
	assert.Empty(t, rr.Body.String())
}
