package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
	"github.com/tandemhr/ess-backend-go/internal/domain/leave"
	"github.com/tandemhr/ess-backend-go/internal/domain/notification"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
	"github.com/tandemhr/ess-backend-go/internal/repository/postgresql"
)

const staleApprovalReason = "Auto-rejected: approval window lapsed"

// NewStaleApprovalJob returns the job function that closes pending leave
// requests whose window already ended without a decision. Each flip is its
// own transaction so one bad row does not block the sweep.
func NewStaleApprovalJob(
	db *database.DB,
	requestRepo leave.LeaveRequestRepository,
	notificationSvc notification.Service,
) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		stale, err := requestRepo.GetStalePending(ctx, time.Now())
		if err != nil {
			return err
		}

		for _, request := range stale {
			if err := expireOne(ctx, db, requestRepo, notificationSvc, request); err != nil {
				slog.Error("Stale approval expiry failed", "request_id", request.ID, "error", err)
				continue
			}
			slog.Info("Stale leave request auto-rejected", "request_id", request.ID)
		}
		return nil
	}
}

func expireOne(
	ctx context.Context,
	db *database.DB,
	requestRepo leave.LeaveRequestRepository,
	notificationSvc notification.Service,
	request leave.LeaveRequest,
) error {
	reason := staleApprovalReason
	return postgresql.WithTransaction(ctx, db, func(txCtx context.Context, _ pgx.Tx) error {
		request.Status = approval.StatusRejected
		request.RejectionReason = &reason
		if err := requestRepo.UpdateTransition(txCtx, request); err != nil {
			return err
		}
		return notificationSvc.NotifyEmployee(
			txCtx, request.EmployeeID, notification.KindRequestRejected,
			"Leave request expired", staleApprovalReason, &request.ID,
		)
	})
}
