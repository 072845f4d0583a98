package handlers

import (
	"context"
	"net/http"
	"strings"

	"jewelbill/utils"
)

type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth validates the bearer token and places the caller's user id in
// the request context.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeJSON(w, http.StatusUnauthorized, ApiResponse{
				Success: false,
				Message: "Authorization header required",
			})
			return
		}

		token := header
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			token = header[7:]
		}

		userID, err := utils.ParseToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, ApiResponse{
				Success: false,
				Message: "Invalid token",
			})
			return
		}

		next(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
	}
}

func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFrom returns the authenticated user id placed by RequireAuth.
func UserIDFrom(r *http.Request) int64 {
	if id, ok := r.Context().Value(userIDKey).(int64); ok {
		return id
	}
	return 0
}
