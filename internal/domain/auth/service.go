package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	LoginWithEmployeeCode(ctx context.Context, req LoginEmployeeCodeRequest) (TokenResponse, error)
	// Logout revokes the presented token until it would have expired.
	Logout(ctx context.Context, token string, expiresAt int64) error
	Me(ctx context.Context, principal Principal) (MeResponse, error)
}
