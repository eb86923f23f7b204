// Command dbtool prepares the Postgres store used by the server.
//
// Commands:
//
//	init                                   create tables and indexes
//	seed-rules -file rules.json            upsert delivery rules from a JSON file
//	generate-holidays -year N -tenants a,b store the generated calendar per tenant
//	list-rules                             print the active rules
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"delivery-date-service/internal/adapters/repositories"
	"delivery-date-service/internal/civil"
	"delivery-date-service/internal/holiday"
	"delivery-date-service/internal/platform/config"
	"delivery-date-service/internal/platform/db"
	"delivery-date-service/internal/platform/logger"
	"delivery-date-service/internal/ports"
	"delivery-date-service/internal/services"

	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()
	logger.Init(logger.FromEnv())
	log := logger.Named("dbtool")
	if envErr != nil {
		log.Debug().Msg("no .env file found (using environment variables)")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "init":
		err = withDB(ctx, func(conn *sql.DB) error { return initSchema(ctx, conn) })
	case "seed-rules":
		err = seedRules(ctx, args)
	case "generate-holidays":
		err = generateHolidays(ctx, args)
	case "list-rules":
		err = withDB(ctx, func(conn *sql.DB) error { return listRules(ctx, conn) })
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("dbtool failed")
	}
}

func printUsage() {
	fmt.Println("Usage: dbtool <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init                                    create tables and indexes")
	fmt.Println("  seed-rules -file rules.json             upsert delivery rules")
	fmt.Println("  generate-holidays -year N -tenants a,b  store generated holidays per tenant")
	fmt.Println("  list-rules                              print active rules as JSON")
	fmt.Println()
	fmt.Println("Environment: DATABASE_URL (required), PG_MAX_CONNS, PG_PING_TIMEOUT, LOG_LEVEL")
}

func withDB(ctx context.Context, fn func(*sql.DB) error) error {
	cfg := config.New()
	conn, err := db.Open(ctx, cfg.MustString("DATABASE_URL"), db.OptionsFromConf(cfg))
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}

func initSchema(ctx context.Context, conn *sql.DB) error {
	log := logger.Named("dbtool")
	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Info().Msg("schema ready")
	return nil
}

func seedRules(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seed-rules", flag.ExitOnError)
	file := fs.String("file", config.Get("SEED_PATH", "data/seeds/rules.json"), "JSON rule file")
	_ = fs.Parse(args)

	return withDB(ctx, func(conn *sql.DB) error {
		if err := initSchema(ctx, conn); err != nil {
			return err
		}
		n, err := repositories.SeedRulesFromJSON(ctx, conn, *file)
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		logger.Named("dbtool").Info().Str("file", *file).Int("rules", n).Msg("rules seeded")
		return nil
	})
}

func generateHolidays(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate-holidays", flag.ExitOnError)
	year := fs.Int("year", time.Now().In(civil.Zone).Year(), "calendar year")
	tenants := fs.String("tenants", config.Get("HOLIDAY_TENANTS", ""), "comma separated tenant ids; empty means every tenant with an active rule")
	concurrency := fs.Int("concurrency", 4, "parallel tenant inserts")
	_ = fs.Parse(args)

	return withDB(ctx, func(conn *sql.DB) error {
		ids := config.SplitCSV(*tenants)
		if len(ids) == 0 {
			var err error
			if ids, err = activeTenants(ctx, repositories.NewPostgresRuleRepository(conn)); err != nil {
				return err
			}
		}

		res, err := services.GenerateHolidays(ctx, services.GenerateHolidaysRequest{
			Year:        *year,
			Tenants:     ids,
			Concurrency: *concurrency,
		}, holiday.New(), repositories.NewPostgresHolidayRepository(conn))
		total := 0
		for _, n := range res {
			total += n
		}
		logger.Named("dbtool").Info().Int("year", *year).Int("tenants", len(res)).Int("inserted", total).Msg("holiday generation done")
		return err
	})
}

func activeTenants(ctx context.Context, rules ports.RuleLister) ([]string, error) {
	active, err := rules.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	for _, r := range active {
		if !seen[r.TenantID] {
			seen[r.TenantID] = true
			out = append(out, r.TenantID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func listRules(ctx context.Context, conn *sql.DB) error {
	rules, err := repositories.NewPostgresRuleRepository(conn).ListActive(ctx)
	if err != nil {
		return err
	}
	docs := make([]repositories.RuleDoc, 0, len(rules))
	for _, r := range rules {
		docs = append(docs, repositories.DocFromDomain(r))
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}
