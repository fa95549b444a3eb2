package postgresql

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tandemhr/ess-backend-go/internal/domain/notification"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

// Create implements notification.Repository. The ID is generated here so
// callers can push the same notification over SSE without re-reading.
func (r *notificationRepositoryImpl) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO notifications (id, user_id, kind, title, body, resource_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7)
	`

	_, err := q.Exec(ctx, query, n.ID, n.UserID, n.Kind, n.Title, n.Body, n.ResourceID, n.CreatedAt)
	return err
}

// GetByUserID implements notification.Repository.
func (r *notificationRepositoryImpl) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, user_id, kind, title, body, resource_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Body, &n.ResourceID, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// CountUnread implements notification.Repository.
func (r *notificationRepositoryImpl) CountUnread(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead implements notification.Repository. The user_id guard keeps one
// user from marking another's notifications.
func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, id, userID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead implements notification.Repository.
func (r *notificationRepositoryImpl) MarkAllRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE notifications SET is_read = true WHERE user_id = $1 AND NOT is_read`, userID)
	return err
}
