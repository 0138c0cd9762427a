package app

import (
	"context"
	"strings"

	"github.com/peer-network/peer-token/service/config"
	"github.com/peer-network/peer-token/service/metrics"
	log "github.com/sirupsen/logrus"
)

func poller(app *App) {
	ctx := context.Background()

	ticker := app.clock.NewTicker(app.cfg.StatsPollInterval)
	defer ticker.Stop()

	pollStats(ctx, app)

	for {
		select {
		case <-app.quit:
			return
		case <-ticker.Chan():
			pollStats(ctx, app)
		}
	}
}

func pollStats(ctx context.Context, app *App) {
	handlePollerError(app.logger, config.ConfigurableLoopDistributionStats, handleDistributionStats(ctx, app.db))
	handlePollerError(app.logger, config.ConfigurableLoopMintGateStats, handleMintGateStats(ctx, app.db))
}

func handlePollerError(logger *log.Logger, loop config.ConfigurableLoop, err error) {
	// Ignore db lock errors, print others
	if err != nil && !strings.Contains(err.Error(), "could not obtain lock on row") {
		logger.WithFields(log.Fields{"loop": loop}).WithError(err).Error("Poller error")
	}
}

func handleDistributionStats(ctx context.Context, db Store) error {
	open, err := db.WithContext(ctx).CountOpenDistributions()
	if err != nil {
		return err
	}
	metrics.OpenDistributions.Set(float64(open))
	return nil
}

func handleMintGateStats(ctx context.Context, db Store) error {
	gates, err := db.WithContext(ctx).CountMintGates()
	if err != nil {
		return err
	}
	metrics.MintGates.Set(float64(gates))
	return nil
}
