package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"delivery-date-service/internal/civil"
	"delivery-date-service/internal/domain"
	perr "delivery-date-service/internal/platform/errors"
	"delivery-date-service/internal/platform/obs"
)

// Postgres-backed implementation of the HolidayRepository port.
type PostgresHolidayRepository struct{ DB *sql.DB }

func NewPostgresHolidayRepository(db *sql.DB) *PostgresHolidayRepository {
	return &PostgresHolidayRepository{DB: db}
}

// Return the tenant's holidays dated within year, ordered by date.
func (s *PostgresHolidayRepository) ListByYear(ctx context.Context, tenantID string, year int) (_ []domain.Holiday, err error) {
	defer obs.Time(ctx, "holiday.repo.ListByYear")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres holiday repository: DB is nil")
	}

	q := `
	SELECT holiday_date::text, name, is_lunar, is_substitute
	FROM holidays
	WHERE tenant_id = $1
		AND holiday_date >= $2::date
		AND holiday_date < $3::date
	ORDER BY holiday_date;
	`
	from := civil.NewDate(year, time.January, 1)
	to := civil.NewDate(year+1, time.January, 1)

	rows, err := s.DB.QueryContext(ctx, q, tenantID, from.String(), to.String())
	if err != nil {
		return nil, perr.FromPostgresf(err, "list holidays: query holidays table")
	}
	defer rows.Close()

	out := make([]domain.Holiday, 0, 24)
	for rows.Next() {
		var (
			date string
			h    domain.Holiday
		)
		if err := rows.Scan(&date, &h.Name, &h.Lunar, &h.Substitute); err != nil {
			return nil, fmt.Errorf("list holidays: scan row: %w", err)
		}
		if h.Date, err = civil.ParseDate(date); err != nil {
			return nil, fmt.Errorf("list holidays: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list holidays: row iteration: %w", err)
	}

	return out, nil
}

// Insert holidays for a tenant. Dates the tenant already has are left untouched.
func (s *PostgresHolidayRepository) InsertMany(ctx context.Context, tenantID string, holidays []domain.Holiday) (_ int, err error) {
	defer obs.Time(ctx, "holiday.repo.InsertMany")(&err)

	if s.DB == nil {
		return 0, errors.New("postgres holiday repository: DB is nil")
	}
	if tenantID == "" {
		return 0, perr.InvalidArgf("insert holidays: tenant must not be empty")
	}
	if len(holidays) == 0 {
		return 0, nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("insert holidays: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO holidays (tenant_id, holiday_date, name, is_lunar, is_substitute)
	VALUES ($1, $2::date, $3, $4, $5)
	ON CONFLICT (tenant_id, holiday_date) DO NOTHING;
	`)
	if err != nil {
		return 0, fmt.Errorf("insert holidays: db prepare: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, h := range holidays {
		res, err := stmt.ExecContext(ctx, tenantID, h.Date.String(), h.Name, h.Lunar, h.Substitute)
		if err != nil {
			return 0, perr.FromPostgresf(err, "insert holiday tenant=%q date=%s", tenantID, h.Date)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("insert holidays: commit: %w", err)
	}
	return inserted, nil
}
