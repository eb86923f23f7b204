package obs

import (
	"context"
	"time"

	"delivery-date-service/internal/platform/logger"
)

// Time logs the duration of op when the returned func runs. Use as
//
//	defer obs.Time(ctx, "rule.repo.FindActive")(&err)
func Time(ctx context.Context, op string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)
		log := logger.C(ctx)

		if errp != nil && *errp != nil {
			log.Warn().Str("op", op).Dur("dur", dur).Err(*errp).Msg("op failed")
			return
		}
		log.Debug().Str("op", op).Dur("dur", dur).Msg("op done")
	}
}
