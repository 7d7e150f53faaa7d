package kit

import (
	"crypto/subtle"
	"net/http"
)

const (
	APIKeyHeader = "X-API-Key"

	unauthorizedMessage = "Unauthorized. Invalid API Key."
)

type UnauthorizedResponse struct {
	Error string `json:"error"`
}

// APIKey rejects every request whose X-API-Key header does not exactly match
// key. An empty key matches nothing.
func APIKey(key string) func(http.Handler) http.Handler {
	want := []byte(key)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(APIKeyHeader)
			if len(want) == 0 || got == "" || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				WriteJSON(w, http.StatusUnauthorized, UnauthorizedResponse{Error: unauthorizedMessage})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
