package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"delivery-date-service/internal/domain"
)

// Initialize the Postgres schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRulesQuery := `
	CREATE TABLE IF NOT EXISTS delivery_rules (
		rule_id BIGSERIAL PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		region TEXT NOT NULL,
		cutoff_tiers JSONB NOT NULL,
		overflow_lead_days INTEGER NOT NULL DEFAULT 0 CHECK (overflow_lead_days >= 0),
		overflow_label TEXT NOT NULL DEFAULT '',
		working_weekdays SMALLINT NOT NULL CHECK (working_weekdays BETWEEN 1 AND 127),
		closed_dates JSONB NOT NULL DEFAULT '[]'::jsonb,
		exclude_holidays BOOLEAN NOT NULL DEFAULT TRUE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createActiveRuleIndexQuery := `
	CREATE UNIQUE INDEX IF NOT EXISTS ux_delivery_rules_active
	ON delivery_rules(tenant_id, region) WHERE active;
	`

	createHolidaysQuery := `
	CREATE TABLE IF NOT EXISTS holidays (
		tenant_id TEXT NOT NULL,
		holiday_date DATE NOT NULL,
		name TEXT NOT NULL,
		is_lunar BOOLEAN NOT NULL DEFAULT FALSE,
		is_substitute BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (tenant_id, holiday_date)
	);
	`

	statements := []string{
		createRulesQuery,
		createActiveRuleIndexQuery,
		createHolidaysQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Read rule documents from a JSON file.
func LoadRulesJSON(jsonPath string) ([]domain.DeliveryRule, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: read %q: %w", jsonPath, err)
	}

	var docs []RuleDoc
	if err := json.Unmarshal(bytes, &docs); err != nil {
		return nil, fmt.Errorf("load rules: parse json: %w", err)
	}

	return ParseRuleDocs(docs)
}

// Populate delivery_rules from a JSON file. An active rule replaces the
// current active rule for the same tenant and region.
func SeedRulesFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	rules, err := LoadRulesJSON(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed rules: %w", err)
	}
	if err := NewPostgresRuleRepository(db).Upsert(ctx, rules...); err != nil {
		return 0, fmt.Errorf("seed rules: %w", err)
	}
	return len(rules), nil
}
