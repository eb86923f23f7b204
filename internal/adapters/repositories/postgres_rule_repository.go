package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"delivery-date-service/internal/civil"
	"delivery-date-service/internal/domain"
	perr "delivery-date-service/internal/platform/errors"
	"delivery-date-service/internal/platform/obs"
)

// Postgres-backed implementation of the RuleRepository port.
type PostgresRuleRepository struct{ DB *sql.DB }

func NewPostgresRuleRepository(db *sql.DB) *PostgresRuleRepository {
	return &PostgresRuleRepository{DB: db}
}

const selectRuleColumns = `
	SELECT
		tenant_id,
		region,
		cutoff_tiers,
		overflow_lead_days,
		overflow_label,
		working_weekdays,
		closed_dates,
		exclude_holidays,
		active
	FROM delivery_rules
`

// Return the active rule for tenant and region.
func (s *PostgresRuleRepository) FindActive(ctx context.Context, tenantID, region string) (_ *domain.DeliveryRule, err error) {
	defer obs.Time(ctx, "rule.repo.FindActive")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres rule repository: DB is nil")
	}

	query := selectRuleColumns + `
	WHERE tenant_id = $1
		AND region = $2
		AND active
	LIMIT 1;
	`
	row := s.DB.QueryRowContext(ctx, query, tenantID, region)

	rule, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, perr.Wrapf(domain.ErrRuleNotFound, perr.ErrorCodeNotFound, "find rule tenant=%q region=%q", tenantID, region)
	}
	if err != nil {
		return nil, perr.FromPostgresf(err, "find rule: query delivery_rules")
	}

	return &rule, nil
}

// Return every active rule ordered by tenant and region.
func (s *PostgresRuleRepository) ListActive(ctx context.Context) (_ []domain.DeliveryRule, err error) {
	defer obs.Time(ctx, "rule.repo.ListActive")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres rule repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, selectRuleColumns+`
	WHERE active
	ORDER BY tenant_id, region;
	`)
	if err != nil {
		return nil, perr.FromPostgresf(err, "list rules: query delivery_rules")
	}
	defer rows.Close()

	rules := make([]domain.DeliveryRule, 0, 16)
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("list rules: scan row: %w", err)
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rules: row iteration: %w", err)
	}

	return rules, nil
}

// Store rules. An active rule replaces the active rule for its tenant and region.
func (s *PostgresRuleRepository) Upsert(ctx context.Context, rules ...domain.DeliveryRule) (err error) {
	defer obs.Time(ctx, "rule.repo.Upsert")(&err)

	if s.DB == nil {
		return errors.New("postgres rule repository: DB is nil")
	}
	if len(rules) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert rules: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO delivery_rules (
		tenant_id, region, cutoff_tiers, overflow_lead_days, overflow_label,
		working_weekdays, closed_dates, exclude_holidays, active
	)
	VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7::jsonb, $8, $9)
	ON CONFLICT (tenant_id, region) WHERE active DO UPDATE
	SET cutoff_tiers = EXCLUDED.cutoff_tiers,
		overflow_lead_days = EXCLUDED.overflow_lead_days,
		overflow_label = EXCLUDED.overflow_label,
		working_weekdays = EXCLUDED.working_weekdays,
		closed_dates = EXCLUDED.closed_dates,
		exclude_holidays = EXCLUDED.exclude_holidays,
		updated_at = now();
	`)
	if err != nil {
		return fmt.Errorf("upsert rules: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range rules {
		tiers, err := json.Marshal(r.Tiers)
		if err != nil {
			return fmt.Errorf("upsert rules: encode tiers: %w", err)
		}
		closed := r.ClosedDates
		if closed == nil {
			closed = []civil.Date{}
		}
		closedJSON, err := json.Marshal(closed)
		if err != nil {
			return fmt.Errorf("upsert rules: encode closed dates: %w", err)
		}

		if _, err := stmt.ExecContext(ctx,
			r.TenantID, r.Region, string(tiers), r.Overflow.LeadDays, r.Overflow.Label,
			int(r.WorkingWeekdays), string(closedJSON), r.ExcludeHolidays, r.Active,
		); err != nil {
			return perr.FromPostgresf(err, "upsert rule tenant=%q region=%q", r.TenantID, r.Region)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert rules: commit: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (domain.DeliveryRule, error) {
	var (
		r          domain.DeliveryRule
		tiersJSON  []byte
		closedJSON []byte
		weekdays   int
	)
	if err := row.Scan(
		&r.TenantID,
		&r.Region,
		&tiersJSON,
		&r.Overflow.LeadDays,
		&r.Overflow.Label,
		&weekdays,
		&closedJSON,
		&r.ExcludeHolidays,
		&r.Active,
	); err != nil {
		return domain.DeliveryRule{}, err
	}

	if err := json.Unmarshal(tiersJSON, &r.Tiers); err != nil {
		return domain.DeliveryRule{}, fmt.Errorf("decode cutoff_tiers: %w", err)
	}
	if len(closedJSON) > 0 {
		if err := json.Unmarshal(closedJSON, &r.ClosedDates); err != nil {
			return domain.DeliveryRule{}, fmt.Errorf("decode closed_dates: %w", err)
		}
	}
	r.WorkingWeekdays = domain.WeekdaySet(weekdays)

	return r, nil
}
