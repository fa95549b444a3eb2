package postgresql

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/user"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.EmployeeID, &u.Email, &u.PasswordHash,
		&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, employee_id, email, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, employee_id, email, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE LOWER(email) = $1
	`

	u, err := scanUser(q.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// GetByEmployeeCode implements user.UserRepository. Employee codes are
// unique per company; a code shared across companies resolves to the most
// recently created account.
func (r *userRepositoryImpl) GetByEmployeeCode(ctx context.Context, employeeCode string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT u.id, u.company_id, u.employee_id, u.email, u.password_hash, u.role, u.is_active, u.created_at, u.updated_at
		FROM users u
		JOIN employees e ON e.id = u.employee_id
		WHERE LOWER(e.employee_code) = $1
		ORDER BY u.created_at DESC
		LIMIT 1
	`

	u, err := scanUser(q.QueryRow(ctx, query, strings.ToLower(employeeCode)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, passwordHash, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return user.ErrUserNotFound
		}
		return err
	}
	return nil
}

// GetByEmployeeID implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, employee_id, email, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE employee_id = $1
	`

	u, err := scanUser(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
