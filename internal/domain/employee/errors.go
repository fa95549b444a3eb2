package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("Employee not found")
	ErrPositionNotFound = errors.New("Position not found")
	ErrESSDisabled      = errors.New("Self-service access disabled for this employee")
)
