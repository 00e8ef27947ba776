package httpx

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/auth"
)

type userIDSetter interface {
	SetUserID(string)
}

// requireAuth ensures the request carries a valid token before invoking the
// handler. Missing and invalid tokens get the same 401; only the log tells
// them apart.
func (r *Router) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		token, err := auth.TokenFromHeader(req.Header.Get(common.AccessTokenHeaderName))
		if err != nil {
			reason := "invalid"
			if errors.Is(err, common.ErrMissingToken) {
				reason = "missing"
			}
			r.metrics.authRejected(reason)
			r.logger.Warn(ctx, "authorization header rejected", "reason", reason, "path", req.URL.Path)
			writeText(w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}

		userID, err := r.tokens.Validate(token)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, common.ErrTokenExpired) {
				reason = "expired"
			}
			r.metrics.authRejected(reason)
			r.logger.Warn(ctx, "token validation failed", "reason", reason, "error", err, "path", req.URL.Path)
			writeText(w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}

		if setter, ok := w.(userIDSetter); ok {
			setter.SetUserID(userID)
		}
		next(w, req.WithContext(auth.WithUserID(ctx, userID)))
	}
}

// ownerID returns the id bound by requireAuth.
func ownerID(req *http.Request) string {
	id, _ := auth.UserIDFromContext(req.Context())
	return id
}
