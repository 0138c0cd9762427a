package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/peer-network/peer-token/service/common"
	"github.com/peer-network/peer-token/service/config"
	perrors "github.com/peer-network/peer-token/service/errors"
	"github.com/peer-network/peer-token/service/metrics"
	"github.com/peer-network/peer-token/service/transfers"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type App struct {
	cfg    *config.Config
	logger *log.Logger
	db     Store
	clock  clockwork.Clock
	quit   chan bool
	wg     *sync.WaitGroup
}

func New(cfg *config.Config, logger *log.Logger, db Store, clock clockwork.Clock, poll bool) (*App, error) {
	if cfg == nil {
		return nil, &perrors.NilConfigError{}
	}

	if logger == nil {
		logger = log.New()
	}

	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	quit := make(chan bool)
	wg := &sync.WaitGroup{}
	app := &App{cfg, logger, db, clock, quit, wg}

	if poll {
		wg.Add(1)
		go func() {
			defer wg.Done()
			poller(app)
		}()
	}

	return app, nil
}

func (app *App) Close() {
	close(app.quit)
	app.wg.Wait()
}

// InitDistribution opens a new distribution and returns it with its ID set.
func (app *App) InitDistribution(ctx context.Context, authority, source common.Identity, totalWeight uint64, recipientCount uint16) (dist *Distribution, err error) {
	defer func() { metrics.Observe("init_distribution", err) }()

	logger := app.logger.WithFields(log.Fields{
		"method":         "InitDistribution",
		"authority":      authority,
		"source":         source,
		"totalWeight":    totalWeight,
		"recipientCount": recipientCount,
	})

	dist, err = NewDistribution(authority, source, totalWeight, recipientCount, app.clock.Now())
	if err != nil {
		logger.WithError(err).Warn("Rejected distribution")
		return nil, err
	}

	if recipientCount > app.cfg.MaxRecipients {
		err = fmt.Errorf("%d recipients, at most %d allowed: %w", recipientCount, app.cfg.MaxRecipients, perrors.ErrTooManyRecipients)
		logger.WithError(err).Warn("Rejected distribution")
		return nil, err
	}

	if err := app.db.WithContext(ctx).InsertDistribution(dist); err != nil {
		return nil, err
	}

	logger.WithField("distID", dist.ID).Info("Distribution opened")

	return dist, nil
}

func (app *App) ListDistributions(ctx context.Context, limit, offset int) ([]Distribution, error) {
	opt := app.listOptions(limit, offset)

	distributions, err := app.db.WithContext(ctx).ListDistributions(opt)
	if err != nil {
		return nil, err
	}

	return distributions, nil
}

func (app *App) GetDistribution(ctx context.Context, id uuid.UUID) (*Distribution, error) {
	return app.db.WithContext(ctx).GetDistribution(id)
}

func (app *App) ListDistributionTransfers(ctx context.Context, id uuid.UUID, limit, offset int) ([]transfers.StorableTransfer, error) {
	store := app.db.WithContext(ctx)

	if _, err := store.GetDistribution(id); err != nil {
		return nil, err
	}

	return store.ListTransfers(id, app.listOptions(limit, offset))
}

// GetDistributionTransfer returns one journal entry of the distribution.
// Entries of other distributions and mints are reported as not found.
func (app *App) GetDistributionTransfer(ctx context.Context, id, transferID uuid.UUID) (*transfers.StorableTransfer, error) {
	t, err := app.db.WithContext(ctx).GetTransfer(transferID)
	if err != nil {
		return nil, err
	}

	if t.DistributionID == nil || *t.DistributionID != id {
		return nil, gorm.ErrRecordNotFound
	}

	return t, nil
}

// ExecuteDistribution pays one recipient its share of the source account's
// current balance. The debit, the credit and the record update commit together.
func (app *App) ExecuteDistribution(ctx context.Context, id uuid.UUID, caller common.Identity, share RecipientShare) (payout *Payout, err error) {
	defer func() { metrics.Observe("execute_distribution", err) }()

	logger := app.logger.WithFields(log.Fields{
		"method":      "ExecuteDistribution",
		"distID":      id,
		"destination": share.Destination,
		"weight":      share.Weight,
	})

	if err := share.Validate(); err != nil {
		logger.WithError(err).Warn("Rejected payout")
		return nil, err
	}

	err = app.db.WithContext(ctx).Transaction(func(tx Store) error {
		dist, err := tx.GetDistributionForUpdate(id)
		if err != nil {
			return err
		}

		balance, err := tx.Balance(dist.SourceAccount)
		if err != nil {
			return err
		}

		alloc, err := dist.Allocate(caller, share, balance)
		if err != nil {
			return err
		}

		if app.cfg.GuardRepeatPayouts {
			paid, err := tx.HasPayout(dist.ID, share.Destination)
			if err != nil {
				return err
			}
			if paid {
				return perrors.ErrRecipientAlreadyPaid
			}
		}

		if err := tx.Debit(dist.SourceAccount, alloc.Amount); err != nil {
			return err
		}

		if err := tx.Credit(share.Destination, alloc.Amount); err != nil {
			return err
		}

		if err := dist.RecordPayout(alloc.Amount); err != nil {
			return err
		}

		if err := tx.UpdateDistribution(dist); err != nil {
			return err
		}

		t := transfers.NewPayout(dist.ID, dist.SourceAccount, share.Destination, alloc.Amount, share.Weight, alloc.Percentage, app.clock.Now())
		if err := tx.InsertTransfer(t); err != nil {
			return err
		}

		payout = &Payout{
			DistributionID: dist.ID,
			Destination:    share.Destination,
			Weight:         share.Weight,
			Percentage:     alloc.Percentage,
			Amount:         alloc.Amount,
		}

		return nil
	})

	if err != nil {
		logger.WithError(err).Warn("Payout failed")
		return nil, err
	}

	metrics.TokensTransferredTotal.WithLabelValues(string(common.TransferKindPayout)).Add(float64(payout.Amount))

	logger.WithFields(log.Fields{
		"percentage": payout.Percentage,
		"amount":     payout.Amount,
	}).Info("Payout executed")

	return payout, nil
}

// FinalizeDistribution closes a distribution, after which no payout succeeds.
func (app *App) FinalizeDistribution(ctx context.Context, id uuid.UUID, caller common.Identity) (err error) {
	defer func() { metrics.Observe("finalize_distribution", err) }()

	logger := app.logger.WithFields(log.Fields{
		"method": "FinalizeDistribution",
		"distID": id,
	})

	err = app.db.WithContext(ctx).Transaction(func(tx Store) error {
		dist, err := tx.GetDistributionForUpdate(id)
		if err != nil {
			return err
		}

		if err := dist.Finalize(caller, app.clock.Now()); err != nil {
			return err
		}

		return tx.UpdateDistribution(dist)
	})

	if err != nil {
		logger.WithError(err).Warn("Finalize failed")
		return err
	}

	logger.Info("Distribution finalized")

	return nil
}

// DailyMint credits amount to the authority's own account at most once per day.
func (app *App) DailyMint(ctx context.Context, authority common.Identity, amount uint64) (gate *MintGateRecord, err error) {
	defer func() { metrics.Observe("daily_mint", err) }()

	logger := app.logger.WithFields(log.Fields{
		"method":    "DailyMint",
		"authority": authority,
		"amount":    amount,
	})

	if authority.IsEmpty() {
		return nil, perrors.ErrInvalidAuthority
	}

	if amount == 0 {
		logger.Warn("Rejected zero amount mint")
		return nil, perrors.ErrInvalidTransferAmount
	}

	if amount > common.MaxColumnUint {
		logger.Warn("Rejected oversized mint")
		return nil, fmt.Errorf("mint amount exceeds %d: %w", common.MaxColumnUint, perrors.ErrInvalidTransferAmount)
	}

	now := app.clock.Now()

	err = app.db.WithContext(ctx).Transaction(func(tx Store) error {
		g, err := tx.GetMintGateForUpdate(authority)
		if err != nil {
			return err
		}

		if err := g.RecordMint(now); err != nil {
			return err
		}

		if err := tx.UpdateMintGate(g); err != nil {
			return err
		}

		if err := tx.Credit(authority, amount); err != nil {
			return err
		}

		if err := tx.InsertTransfer(transfers.NewMint(authority, amount, now)); err != nil {
			return err
		}

		gate = g

		return nil
	})

	if err != nil {
		logger.WithError(err).Warn("Mint failed")
		return nil, err
	}

	metrics.TokensTransferredTotal.WithLabelValues(string(common.TransferKindMint)).Add(float64(amount))

	logger.WithFields(log.Fields{
		"day":        gate.LastMintDay,
		"totalMints": gate.TotalMints,
	}).Info("Daily mint complete")

	return gate, nil
}

// CanMintToday is a pre-flight check only, DailyMint decides under lock.
func (app *App) CanMintToday(ctx context.Context, authority common.Identity) (bool, error) {
	status, err := app.GetMintStatus(ctx, authority)
	if err != nil {
		return false, err
	}
	return status.CanMintToday, nil
}

func (app *App) GetMintStatus(ctx context.Context, authority common.Identity) (*MintStatus, error) {
	gate, err := app.db.WithContext(ctx).GetMintGate(authority)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		gate = &MintGateRecord{Authority: authority}
	} else if err != nil {
		return nil, err
	}

	status := gate.Status(app.clock.Now())
	return &status, nil
}

func (app *App) GetBalance(ctx context.Context, account common.Identity) (uint64, error) {
	return app.db.WithContext(ctx).Balance(account)
}

func (app *App) listOptions(limit, offset int) ListOptions {
	if limit == 0 && app.cfg.ListLimit > 0 {
		limit = app.cfg.ListLimit
	}
	return ParseListOptions(limit, offset)
}
