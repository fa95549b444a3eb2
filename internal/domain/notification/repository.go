package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}
