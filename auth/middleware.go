package auth

import (
	"clinic-chat/domain/chat"
	"clinic-chat/errors"
	"context"
	"net/http"
	"strings"
)

type contextKey string

const accountKey contextKey = "account"

// Middleware validates the bearer token of every request and injects the
// authenticated account into the request context. Browsers cannot set headers
// on a websocket handshake, so the token may also come as ?token=.
func (t *Tokens) Middleware(onError func(w http.ResponseWriter, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				onError(w, errors.ErrUnauthenticated)
				return
			}
			account, err := t.ValidateToken(tokenString)
			if err != nil {
				onError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), account)))
		})
	}
}

func WithAccount(ctx context.Context, account chat.Account) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

// AccountFromContext returns the account injected by Middleware.
func AccountFromContext(ctx context.Context) (chat.Account, bool) {
	account, ok := ctx.Value(accountKey).(chat.Account)
	return account, ok
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	return r.URL.Query().Get("token")
}
