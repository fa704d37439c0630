package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireBearer(t *testing.T) {
	svc := &AuthService{signer: NewTokenSigner([]byte("secret"), time.Hour, "")}
	good, err := svc.signer.Issue(7, "bob", time.Now())
	require.NoError(t, err)

	var seen *Principal
	h := RequireBearer(svc, nil, true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name   string
		header string
		status int
		msg    string
	}{
		{"missing", "", http.StatusUnauthorized, "Authorization header missing or invalid"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Authorization header missing or invalid"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "Authorization header missing or invalid"},
		{"bad token", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"ok", "Bearer " + good, http.StatusNoContent, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, c.status, rec.Code)
			if c.msg != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, c.msg, body["error"])
			}
		})
	}
	require.NotNil(t, seen)
	assert.Equal(t, int64(7), seen.ID)
}
