package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tandemhr/ess-backend-go/internal/domain/auth"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/domain/user"
	"github.com/tandemhr/ess-backend-go/internal/pkg/jwt"
	"github.com/tandemhr/ess-backend-go/internal/service/permission"
	"github.com/tandemhr/ess-backend-go/internal/service/scope"
)

type AuthServiceImpl struct {
	userRepo     user.UserRepository
	employeeRepo employee.EmployeeRepository
	resolver     *scope.Resolver
	jwtService   jwt.Service
}

func NewAuthService(
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	resolver *scope.Resolver,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
		jwtService:   jwtService,
	}
}

// Login implements auth.AuthService. The identifier is tried as an email
// first, then as an employee code. Lookup failures and wrong passwords
// collapse into the same error so the response does not leak which
// identifiers exist.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.lookup(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	if u.Role == user.RoleEmployee {
		if u.EmployeeID == nil {
			return auth.LoginResponse{}, auth.ErrESSDisabled
		}
		emp, err := s.employeeRepo.GetByID(ctx, *u.EmployeeID)
		if err != nil {
			return auth.LoginResponse{}, err
		}
		if !emp.ESSEnabled {
			return auth.LoginResponse{}, auth.ErrESSDisabled
		}
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.CompanyID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	session, err := s.sessionFor(ctx, u)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{AccessToken: token, ExpiresAt: expiresAt, Session: session}, nil
}

// Session implements auth.AuthService. It rebuilds the capability bundle
// for an already-authenticated principal, so the client can refresh its UI
// gating without a new login.
func (s *AuthServiceImpl) Session(ctx context.Context, p identity.Principal) (auth.SessionResponse, error) {
	u, err := s.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		return auth.SessionResponse{}, err
	}
	return s.sessionFor(ctx, u)
}

// ChangePassword implements auth.AuthService.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, p identity.Principal, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, u.ID, string(hash))
}

func (s *AuthServiceImpl) lookup(ctx context.Context, identifier string) (user.User, error) {
	if strings.Contains(identifier, "@") {
		return s.userRepo.GetByEmail(ctx, identifier)
	}
	return s.userRepo.GetByEmployeeCode(ctx, identifier)
}

func (s *AuthServiceImpl) sessionFor(ctx context.Context, u user.User) (auth.SessionResponse, error) {
	p := identity.Principal{
		UserID: u.ID,
		Role:   u.Role,
	}
	if u.CompanyID != nil {
		p.CompanyID = *u.CompanyID
	}
	if u.EmployeeID != nil {
		p.EmployeeID = *u.EmployeeID
	}

	session := auth.SessionResponse{
		UserID:     u.ID,
		EmployeeID: u.EmployeeID,
		Email:      u.Email,
		Role:       string(u.Role),
		CompanyID:  u.CompanyID,
	}

	// Super-admins without a company override have no scope to resolve;
	// they get the bundle's zero value until a company is selected.
	if p.EffectiveCompanyID() == "" {
		session.Capabilities = identity.Capabilities{ManagedOutlets: []string{}}
		return session, nil
	}

	var emp employee.Employee
	var sc identity.Scope
	var err error
	if p.IsAdmin() {
		sc, err = s.resolver.Resolve(ctx, p)
	} else {
		emp, sc, err = s.resolver.ResolveEmployee(ctx, p)
	}
	if err != nil {
		return auth.SessionResponse{}, err
	}

	session.Capabilities = permission.BuildCapabilities(p, sc, emp)
	return session, nil
}
