package callid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	// Header carries the caller id on remote queue requests
	Header      = "X-Queue-Caller"
	maxIDLength = 128
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9_.:-]+$`)

// Middleware stores the caller id of each request in its context and echoes
// it in the response. Missing or malformed ids are replaced by a new UUID.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !IsValid(id) {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// SetHeader copies the caller id from ctx onto req, falling back to fallback
// when ctx carries none or an invalid one. Nothing is set when neither is a
// valid id.
func SetHeader(ctx context.Context, req *http.Request, fallback string) {
	id := FromContext(ctx)
	if !IsValid(id) {
		id = fallback
	}
	if IsValid(id) {
		req.Header.Set(Header, id)
	}
}

// IsValid reports whether id may be used as a caller id as is.
func IsValid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	return validID.MatchString(id)
}
