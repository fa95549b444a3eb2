package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tandemhr/ess-backend-go/internal/domain/auth"
	"github.com/tandemhr/ess-backend-go/internal/handler/http/response"
	"github.com/tandemhr/ess-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Session(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
	jwtService  jwt.Service
}

func NewAuthHandler(authService auth.AuthService, jwtService jwt.Service) AuthHandler {
	return &AuthHandlerImpl{authService: authService, jwtService: jwtService}
}

// Login implements AuthHandler.
func (h *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Browser clients ride on the cookie; API clients take the token from
	// the body.
	http.SetCookie(w, h.jwtService.SessionCookie(result.AccessToken, result.ExpiresAt))

	response.SuccessWithMessage(w, "Login successful", result)
}

// Logout implements AuthHandler.
func (h *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.jwtService.ClearedSessionCookie())
	response.SuccessWithMessage(w, "Logged out", nil)
}

// Session implements AuthHandler.
func (h *AuthHandlerImpl) Session(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	session, err := h.authService.Session(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, session)
}

// ChangePassword implements AuthHandler.
func (h *AuthHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req auth.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ChangePassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), p, req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Password changed successfully", nil)
}
