package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Invalid email, employee code, or password")
	ErrAccountInactive    = errors.New("Your account has been deactivated")
	ErrESSDisabled        = errors.New("Self-service access is not enabled for your account")
	ErrWrongPassword      = errors.New("Current password is incorrect")
)
