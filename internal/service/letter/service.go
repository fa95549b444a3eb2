package letter

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/domain/letter"
	"github.com/tandemhr/ess-backend-go/internal/domain/notification"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
	"github.com/tandemhr/ess-backend-go/internal/repository/postgresql"
	"github.com/tandemhr/ess-backend-go/internal/service/permission"
	"github.com/tandemhr/ess-backend-go/internal/service/scope"
)

type ServiceImpl struct {
	tx              postgresql.TxRunner
	letterRepo      letter.Repository
	resolver        *scope.Resolver
	notificationSvc notification.Service

	now func() time.Time
}

func NewService(
	db *database.DB,
	letterRepo letter.Repository,
	resolver *scope.Resolver,
	notificationSvc notification.Service,
) letter.Service {
	return &ServiceImpl{
		tx:              postgresql.NewTxRunner(db),
		letterRepo:      letterRepo,
		resolver:        resolver,
		notificationSvc: notificationSvc,
		now:             time.Now,
	}
}

// Request implements letter.Service.
func (s *ServiceImpl) Request(ctx context.Context, p identity.Principal, req letter.RequestLetterRequest) (letter.LetterResponse, error) {
	if err := req.Validate(); err != nil {
		return letter.LetterResponse{}, err
	}

	emp, sc, err := s.resolver.ResolveEmployee(ctx, p)
	if err != nil {
		return letter.LetterResponse{}, err
	}

	request := letter.LetterRequest{
		CompanyID:  sc.Company.ID,
		EmployeeID: emp.ID,
		Type:       letter.LetterType(req.Type),
		Purpose:    req.Purpose,
		Status:     letter.StatusRequested,
	}
	if err := s.letterRepo.Create(ctx, &request); err != nil {
		return letter.LetterResponse{}, fmt.Errorf("create letter request: %w", err)
	}

	return letter.ToResponse(request), nil
}

// ListOwn implements letter.Service.
func (s *ServiceImpl) ListOwn(ctx context.Context, p identity.Principal) ([]letter.LetterResponse, error) {
	letters, err := s.letterRepo.GetByEmployeeID(ctx, p.EmployeeID)
	if err != nil {
		return nil, err
	}
	return toResponses(letters), nil
}

// ListRequested implements letter.Service.
func (s *ServiceImpl) ListRequested(ctx context.Context, p identity.Principal) ([]letter.LetterResponse, error) {
	if !p.IsAdmin() {
		return nil, permission.Deny("only admins may handle letter requests")
	}
	sc, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	letters, err := s.letterRepo.GetRequestedByCompany(ctx, sc.Company.ID)
	if err != nil {
		return nil, err
	}
	return toResponses(letters), nil
}

// Handle implements letter.Service.
func (s *ServiceImpl) Handle(ctx context.Context, p identity.Principal, letterID string, req letter.HandleLetterRequest) (letter.LetterResponse, error) {
	if err := req.Validate(); err != nil {
		return letter.LetterResponse{}, err
	}
	if !p.IsAdmin() {
		return letter.LetterResponse{}, permission.Deny("only admins may handle letter requests")
	}
	sc, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return letter.LetterResponse{}, err
	}

	var result letter.LetterRequest
	err = s.tx.InTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := s.letterRepo.GetByID(ctx, letterID)
		if err != nil {
			return err
		}
		if request.CompanyID != sc.Company.ID {
			return letter.ErrLetterNotFound
		}

		now := s.now()
		request.HandledBy = &p.UserID
		request.HandledAt = &now
		if req.Issue {
			request.Status = letter.StatusIssued
			request.DocumentURL = req.DocumentURL
		} else {
			request.Status = letter.StatusDeclined
			request.DeclineReason = req.DeclineReason
		}

		if err := s.letterRepo.UpdateHandled(ctx, request); err != nil {
			return err
		}
		result = *request

		body := fmt.Sprintf("Your %s letter has been issued.", request.Type)
		if !req.Issue {
			body = fmt.Sprintf("Your %s letter request was declined.", request.Type)
		}
		return s.notificationSvc.NotifyEmployee(ctx, request.EmployeeID,
			notification.KindLetterHandled, "Letter request handled", body, &request.ID)
	})
	if err != nil {
		return letter.LetterResponse{}, err
	}

	return letter.ToResponse(result), nil
}

func toResponses(letters []letter.LetterRequest) []letter.LetterResponse {
	responses := make([]letter.LetterResponse, 0, len(letters))
	for _, l := range letters {
		responses = append(responses, letter.ToResponse(l))
	}
	return responses
}
