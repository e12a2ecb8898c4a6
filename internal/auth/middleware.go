package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type contextKey string

const UserKey contextKey = "user"

var (
	ErrMissingToken = errors.New("missing token")
	ErrBadScheme    = errors.New("authorization must use the Bearer scheme")
)

// Authenticate reads the token from the Authorization header, or from the
// token query parameter when there is no header. Browsers cannot set
// headers on a websocket handshake.
func (s *Service) Authenticate(r *http.Request) (*User, error) {
	token := r.URL.Query().Get("token")
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, rest, ok := strings.Cut(h, " ")
		if !ok || scheme != "Bearer" {
			return nil, ErrBadScheme
		}
		token = rest
	}
	if token == "" {
		return nil, ErrMissingToken
	}
	return s.ValidateToken(token)
}

// AuthMiddleware rejects requests without a valid token and stores the
// user in the request context.
func (s *Service) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.Authenticate(r)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, ErrMissingToken) || errors.Is(err, ErrBadScheme) {
				msg = err.Error()
			}
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": msg})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserKey, user)))
	})
}

func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(UserKey).(*User)
	return user
}
