package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt"

	"student-portal/models"
	"student-portal/utils"
)

type contextKey string

const (
	// AdminKey and StudentKey hold the decoded claims of the verified
	// principal in the request context.
	AdminKey   contextKey = "admin"
	StudentKey contextKey = "student"
)

// Policy selects which principal a route accepts.
type Policy int

const (
	AdminOnly Policy = iota
	StudentOnly
)

// Require verifies the bearer token and enforces the role policy. Admin-only
// routes demand isAdmin=true; student-only routes reject admin tokens.
func Require(policy Policy, secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := utils.BearerToken(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Token missing or invalid"})
			return
		}

		claims, err := utils.ParseToken(tokenString, secret)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Authentication failed"})
			return
		}

		isAdmin, _ := claims["isAdmin"].(bool)

		var ctx context.Context
		switch policy {
		case AdminOnly:
			if !isAdmin {
				utils.RespondWithError(w, http.StatusForbidden, models.Error{Message: "Access denied: Not an admin"})
				return
			}
			ctx = context.WithValue(r.Context(), AdminKey, claims)
		case StudentOnly:
			if isAdmin {
				utils.RespondWithError(w, http.StatusForbidden, models.Error{Message: "Access denied: Admins not allowed"})
				return
			}
			ctx = context.WithValue(r.Context(), StudentKey, claims)
		default:
			utils.RespondWithError(w, http.StatusForbidden, models.Error{Message: "Access denied"})
			return
		}

		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin guards admin routes.
func RequireAdmin(secret string, next http.HandlerFunc) http.HandlerFunc {
	return Require(AdminOnly, secret, next)
}

// RequireStudent guards student routes.
func RequireStudent(secret string, next http.HandlerFunc) http.HandlerFunc {
	return Require(StudentOnly, secret, next)
}

// ClaimsFrom returns the claims stored under key, if any.
func ClaimsFrom(r *http.Request, key contextKey) (jwt.MapClaims, bool) {
	claims, ok := r.Context().Value(key).(jwt.MapClaims)
	return claims, ok
}
