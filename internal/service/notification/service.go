package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tandemhr/ess-backend-go/internal/domain/notification"
	"github.com/tandemhr/ess-backend-go/internal/domain/user"
	"github.com/tandemhr/ess-backend-go/internal/pkg/sse"
	"github.com/tandemhr/ess-backend-go/internal/repository/postgresql"
)

type ServiceImpl struct {
	notificationRepo notification.Repository
	userRepo         user.UserRepository
	hub              *sse.Hub
}

func NewService(notificationRepo notification.Repository, userRepo user.UserRepository, hub *sse.Hub) notification.Service {
	return &ServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		hub:              hub,
	}
}

// Notify implements notification.Service.
func (s *ServiceImpl) Notify(ctx context.Context, userID string, kind notification.Kind, title, body string, resourceID *string) error {
	n := &notification.Notification{
		UserID:     userID,
		Kind:       kind,
		Title:      title,
		Body:       body,
		ResourceID: resourceID,
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	// The row may still roll back with the caller's transaction; the push
	// waits for the commit.
	postgresql.AfterCommit(ctx, func() {
		s.hub.Publish(userID, sse.Event{
			UserID: userID,
			Event:  "notification",
			Data:   n,
		})
	})

	return nil
}

// NotifyEmployee implements notification.Service.
func (s *ServiceImpl) NotifyEmployee(ctx context.Context, employeeID string, kind notification.Kind, title, body string, resourceID *string) error {
	u, err := s.userRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if err == user.ErrUserNotFound {
			slog.Debug("Notification skipped, employee has no account", "employee_id", employeeID)
			return nil
		}
		return err
	}
	return s.Notify(ctx, u.ID, kind, title, body, resourceID)
}

// List implements notification.Service.
func (s *ServiceImpl) List(ctx context.Context, userID string, limit, offset int) ([]notification.Notification, error) {
	return s.notificationRepo.GetByUserID(ctx, userID, limit, offset)
}

// UnreadCount implements notification.Service.
func (s *ServiceImpl) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead implements notification.Service.
func (s *ServiceImpl) MarkRead(ctx context.Context, id, userID string) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead implements notification.Service.
func (s *ServiceImpl) MarkAllRead(ctx context.Context, userID string) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
