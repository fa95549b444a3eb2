package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/letter"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

const letterColumns = `
	l.id, l.company_id, l.employee_id, l.letter_type, l.purpose, l.status,
	l.document_url, l.decline_reason, l.handled_by, l.handled_at,
	l.created_at, l.updated_at, e.full_name`

type letterRepositoryImpl struct {
	db *database.DB
}

func NewLetterRepository(db *database.DB) letter.Repository {
	return &letterRepositoryImpl{db: db}
}

func scanLetter(row pgx.Row) (letter.LetterRequest, error) {
	var l letter.LetterRequest
	err := row.Scan(
		&l.ID, &l.CompanyID, &l.EmployeeID, &l.Type, &l.Purpose, &l.Status,
		&l.DocumentURL, &l.DeclineReason, &l.HandledBy, &l.HandledAt,
		&l.CreatedAt, &l.UpdatedAt, &l.EmployeeName,
	)
	return l, err
}

// Create implements letter.Repository.
func (r *letterRepositoryImpl) Create(ctx context.Context, l *letter.LetterRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO letter_requests (
			id, company_id, employee_id, letter_type, purpose, status
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5
		)
		RETURNING id, created_at, updated_at
	`

	return q.QueryRow(ctx, query,
		l.CompanyID, l.EmployeeID, l.Type, l.Purpose, l.Status,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

// GetByID implements letter.Repository.
func (r *letterRepositoryImpl) GetByID(ctx context.Context, id string) (*letter.LetterRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + letterColumns + `
		FROM letter_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	l, err := scanLetter(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, letter.ErrLetterNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *letterRepositoryImpl) queryLetters(ctx context.Context, query string, args ...interface{}) ([]letter.LetterRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var letters []letter.LetterRequest
	for rows.Next() {
		l, err := scanLetter(rows)
		if err != nil {
			return nil, err
		}
		letters = append(letters, l)
	}

	return letters, rows.Err()
}

// GetByEmployeeID implements letter.Repository.
func (r *letterRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]letter.LetterRequest, error) {
	query := `
		SELECT ` + letterColumns + `
		FROM letter_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.employee_id = $1
		ORDER BY l.created_at DESC
	`
	return r.queryLetters(ctx, query, employeeID)
}

// GetRequestedByCompany implements letter.Repository.
func (r *letterRepositoryImpl) GetRequestedByCompany(ctx context.Context, companyID string) ([]letter.LetterRequest, error) {
	query := `
		SELECT ` + letterColumns + `
		FROM letter_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.company_id = $1 AND l.status = 'requested'
		ORDER BY l.created_at
	`
	return r.queryLetters(ctx, query, companyID)
}

// UpdateHandled implements letter.Repository. The status guard keeps a
// letter from being handled twice.
func (r *letterRepositoryImpl) UpdateHandled(ctx context.Context, l *letter.LetterRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE letter_requests
		SET status = $1,
			document_url = $2,
			decline_reason = $3,
			handled_by = $4,
			handled_at = NOW(),
			updated_at = NOW()
		WHERE id = $5 AND status = 'requested'
		RETURNING handled_at
	`

	err := q.QueryRow(ctx, query,
		l.Status, l.DocumentURL, l.DeclineReason, l.HandledBy, l.ID,
	).Scan(&l.HandledAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return letter.ErrAlreadyHandled
		}
		return err
	}
	return nil
}
