package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/theshadowable/iws-sh/internal/auth"
	"github.com/theshadowable/iws-sh/internal/pkg/errors"
	"github.com/theshadowable/iws-sh/internal/pkg/utils"
)

const (
	// CustomerIDKey is the context key for the authenticated customer id
	CustomerIDKey ContextKey = "customerID"
	// RoleKey is the context key for the authenticated role
	RoleKey ContextKey = "role"
)

// AuthMiddleware returns a middleware that validates JWT tokens
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			var tokenStr string

			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					tokenStr = parts[1]
				}
			} else {
				cookie, err := r.Cookie("accessToken")
				if err == nil {
					tokenStr = cookie.Value
				}
			}

			if tokenStr == "" {
				utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
				return
			}

			claims, err := auth.ParseClaims(tokenStr, jwtSecret)
			if err != nil {
				utils.WriteError(w, errors.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), CustomerIDKey, claims.CustomerID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			AddLogField(w, "customer_id", claims.CustomerID)
			AddLogField(w, "role", claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware that restricts a route to the given roles
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := GetRole(r)
			if !allowed[role] {
				utils.WriteError(w, errors.Forbidden("Insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetCustomerID extracts the customer ID from the request context
func GetCustomerID(r *http.Request) (string, bool) {
	customerID, ok := r.Context().Value(CustomerIDKey).(string)
	return customerID, ok
}

// GetRole extracts the role from the request context
func GetRole(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(RoleKey).(string)
	return role, ok
}
