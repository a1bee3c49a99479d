package result

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Result_WriteResponse(t *testing.T) {
	testCases := []struct {
		name         string
		r            Result
		method       string
		expectStatus int
		expectBody   string
		expectHdrs   map[string]string
	}{
		{
			name:         "ok json",
			r:            OK(map[string]string{"direction": "North"}),
			method:       http.MethodGet,
			expectStatus: http.StatusOK,
			expectBody:   `{"direction":"North"}`,
			expectHdrs:   map[string]string{"Content-Type": "application/json"},
		},
		{
			name:         "no content",
			r:            NoContent("user %s logged out", "sk89q"),
			method:       http.MethodDelete,
			expectStatus: http.StatusNoContent,
		},
		{
			name:         "bad request",
			r:            BadRequest("Invalid item amount!"),
			method:       http.MethodPost,
			expectStatus: http.StatusBadRequest,
			expectBody:   `{"error":"Invalid item amount!","status":400}`,
		},
		{
			name:         "unauthorized sets challenge",
			r:            Unauthorized(""),
			method:       http.MethodGet,
			expectStatus: http.StatusUnauthorized,
			expectBody:   `{"error":"You are not authorized to do that","status":401}`,
			expectHdrs:   map[string]string{"WWW-Authenticate": `Bearer realm="CommandBook server", charset="utf-8"`},
		},
		{
			name:         "text error",
			r:            TextErr(http.StatusInternalServerError, "oops", "panic"),
			method:       http.MethodGet,
			expectStatus: http.StatusInternalServerError,
			expectBody:   "oops",
			expectHdrs:   map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		},
		{
			name:         "redirect",
			r:            Redirection("/api/v1/players"),
			method:       http.MethodGet,
			expectStatus: http.StatusPermanentRedirect,
			expectHdrs:   map[string]string{"Location": "/api/v1/players"},
		},
		{
			name:         "head has no body",
			r:            OK(map[string]string{"time": "08:00"}),
			method:       http.MethodHead,
			expectStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			req := httptest.NewRequest(tc.method, "/api/v1/test", nil)
			w := httptest.NewRecorder()

			tc.r.WriteResponse(w, req)

			assert.Equal(tc.expectStatus, w.Code)
			assert.Equal(tc.expectBody, w.Body.String())
			for k, v := range tc.expectHdrs {
				assert.Equal(v, w.Header().Get(k))
			}
		})
	}
}

func Test_Result_WithHeader_doesNotAlias(t *testing.T) {
	assert := assert.New(t)

	base := OK("x").WithHeader("A", "1")
	r1 := base.WithHeader("B", "2")
	r2 := base.WithHeader("C", "3")

	assert.Len(base.hdrs, 1)
	assert.Equal([][2]string{{"A", "1"}, {"B", "2"}}, r1.hdrs)
	assert.Equal([][2]string{{"A", "1"}, {"C", "3"}}, r2.hdrs)
}
