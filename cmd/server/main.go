package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"delivery-date-service/internal/adapters/cache"
	"delivery-date-service/internal/adapters/repositories"
	"delivery-date-service/internal/api"
	"delivery-date-service/internal/api/handlers"
	"delivery-date-service/internal/holiday"
	"delivery-date-service/internal/platform/config"
	"delivery-date-service/internal/platform/db"
	"delivery-date-service/internal/platform/logger"
	"delivery-date-service/internal/ports"
	"delivery-date-service/internal/services"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or a YAML rule file) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()
	logger.Init(logger.FromEnv())
	log := logger.Named("server")
	if envErr != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.New()); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg config.Conf) error {
	log := logger.Named("server")
	gen := holiday.New()

	var (
		ruleRepo    ports.RuleRepository
		holidayRepo ports.HolidayRepository
		ruleFile    *repositories.YAMLRuleRepository
	)

	if url := cfg.MayString("DATABASE_URL", ""); url != "" {
		conn, err := db.Open(ctx, url, db.OptionsFromConf(cfg))
		if err != nil {
			return err
		}
		defer conn.Close()
		ruleRepo = repositories.NewPostgresRuleRepository(conn)
		holidayRepo = repositories.NewPostgresHolidayRepository(conn)
		log.Info().Msg("rules and holidays from postgres")
	} else {
		path := cfg.MayString("RULES_PATH", "data/rules.yaml")
		f, err := repositories.NewYAMLRuleRepository(path)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		ruleRepo, ruleFile = f, f
		log.Info().Str("path", path).Int("rules", f.Len()).Msg("rules from file, generated holidays")
	}

	resolver := services.NewRuleResolver(ruleRepo, cache.NewMemoryRuleCache())
	provider := services.NewHolidayProvider(holidayRepo, gen, cache.NewMemoryHolidayCache())
	calc := services.NewDeliveryDateCalculator(resolver, services.NewBusinessDays(provider))

	if ruleFile != nil && cfg.MayBool("RULES_WATCH", true) {
		ruleFile.OnChange(resolver.ClearCache)
		if err := ruleFile.Watch(ctx); err != nil {
			return err
		}
	}

	router := api.NewRouter(api.Deps{
		Calc:        calc,
		Holidays:    gen,
		Caches:      []handlers.CacheClearer{resolver, provider},
		SlowRequest: cfg.MayDuration("HTTP_SLOW_REQUEST", 500*time.Millisecond),
	})

	port := cfg.MayString("PORT", "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.MayDuration("SHUTDOWN_TIMEOUT", 10*time.Second))
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
