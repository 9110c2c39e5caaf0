package handlers

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const adminKey ctxKey = "admin_id"

// adminOnly trusts the identity headers set by the API gateway.
func adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing X-User-ID")
			return
		}
		if !strings.EqualFold(strings.TrimSpace(r.Header.Get("X-User-Role")), "admin") {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "admin role required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminKey, userID)))
	})
}

func adminFromContext(ctx context.Context) string {
	id, _ := ctx.Value(adminKey).(string)
	return id
}
