package notification

import "context"

type Service interface {
	// Notify writes one notification row for the user and pushes it over
	// SSE. Called inside lifecycle transactions; the row commits or rolls
	// back with the transition, and the push waits for the commit.
	Notify(ctx context.Context, userID string, kind Kind, title, body string, resourceID *string) error
	// NotifyEmployee resolves the employee's account before notifying.
	// Employees without an account are silently skipped.
	NotifyEmployee(ctx context.Context, employeeID string, kind Kind, title, body string, resourceID *string) error
	List(ctx context.Context, userID string, limit, offset int) ([]Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}
