package auth

import (
	"context"

	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Session(ctx context.Context, p identity.Principal) (SessionResponse, error)
	ChangePassword(ctx context.Context, p identity.Principal, req ChangePasswordRequest) error
}
