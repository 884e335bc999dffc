package app

import (
	"context"
	"time"

	"shipping-allocation-engine/internal/logx"
)

const defaultZoneRefreshInterval = time.Minute

type zoneRefresher interface {
	Refresh(ctx context.Context) error
}

// startZoneRefreshLoop loads the coverage snapshot right away and then
// reloads it every interval until ctx is done. A failed reload keeps the
// previous snapshot.
func startZoneRefreshLoop(ctx context.Context, logger logx.Logger, svc zoneRefresher, interval time.Duration) {
	if svc == nil {
		return
	}
	if interval <= 0 {
		interval = defaultZoneRefreshInterval
	}
	go func() {
		refresh := func() {
			if err := svc.Refresh(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("zone snapshot refresh failed", logx.Err(err))
			}
		}
		refresh()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refresh()
			}
		}
	}()
}
