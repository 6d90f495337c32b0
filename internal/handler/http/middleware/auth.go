package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified, unrevoked access token.
// It must run after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// PrincipalFromContext reads the caller out of the verified token claims.
func PrincipalFromContext(ctx context.Context) (auth.Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	id, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	username, _ := claims["username"].(string)
	if id == "" || role == "" {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	return auth.Principal{ID: id, Username: username, Role: user.Role(role)}, nil
}

// RawToken returns the bearer token of a verified request and its expiry.
func RawToken(r *http.Request) (string, int64, error) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		return "", 0, auth.ErrInvalidToken
	}
	return jwtauth.TokenFromHeader(r), token.Expiration().Unix(), nil
}
