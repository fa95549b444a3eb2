package postgresql

import (
	"context"
	"time"

	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

type publicHolidayRepositoryImpl struct {
	db *database.DB
}

func NewPublicHolidayRepository(db *database.DB) company.PublicHolidayRepository {
	return &publicHolidayRepositoryImpl{db: db}
}

// GetByDateRange implements company.PublicHolidayRepository. Global rows
// (company_id IS NULL) apply to every company.
func (p *publicHolidayRepositoryImpl) GetByDateRange(ctx context.Context, companyID string, from, to time.Time) ([]company.PublicHoliday, error) {
	q := GetQuerier(ctx, p.db)
	query := `
		SELECT id, company_id, holiday_date, name
		FROM public_holidays
		WHERE (company_id = $1 OR company_id IS NULL)
		  AND holiday_date BETWEEN $2 AND $3
		ORDER BY holiday_date
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []company.PublicHoliday
	for rows.Next() {
		var h company.PublicHoliday
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Date, &h.Name); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}
