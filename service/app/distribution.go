package app

import (
	"math"
	"time"

	"github.com/peer-network/peer-token/service/common"
	"github.com/peer-network/peer-token/service/config"
	perrors "github.com/peer-network/peer-token/service/errors"
)

// NewDistribution opens a batch against a committed total weight.
func NewDistribution(authority, source common.Identity, totalWeight uint64, recipientCount uint16, createdAt time.Time) (*Distribution, error) {
	dist := &Distribution{
		CreatedAt:      createdAt,
		Authority:      authority,
		SourceAccount:  source,
		TotalWeight:    totalWeight,
		RecipientCount: recipientCount,
	}

	if err := dist.Validate(config.MaxRecipientsLimit); err != nil {
		return nil, err
	}

	return dist, nil
}

func (dist Distribution) State() common.DistributionState {
	switch {
	case dist.TotalWeight == 0:
		return common.DistributionStateUninitialized
	case dist.Finalized:
		return common.DistributionStateFinalized
	default:
		return common.DistributionStateOpen
	}
}

// Allocate sizes the payout for one recipient given the current source balance.
// It does not mutate the distribution and performs no I/O.
func (dist Distribution) Allocate(caller common.Identity, share RecipientShare, sourceBalance uint64) (Allocation, error) {
	if dist.Finalized {
		return Allocation{}, perrors.ErrDistributionAlreadyFinalized
	}

	if caller != dist.Authority {
		return Allocation{}, perrors.ErrInvalidAuthority
	}

	if share.Weight == 0 || share.Weight > dist.TotalWeight {
		return Allocation{}, perrors.ErrInvalidGemCount
	}

	pct, err := PercentageOf(share.Weight, dist.TotalWeight)
	if err != nil {
		return Allocation{}, err
	}

	amount, err := AmountForPercentage(sourceBalance, pct)
	if err != nil {
		return Allocation{}, err
	}

	if amount == 0 {
		return Allocation{}, perrors.ErrInsufficientAmount
	}

	if amount > sourceBalance {
		return Allocation{}, perrors.ErrInsufficientFunds
	}

	return Allocation{Percentage: pct, Amount: amount}, nil
}

// RecordPayout bumps the informational running totals.
func (dist *Distribution) RecordPayout(amount uint64) error {
	if amount > common.MaxColumnUint || dist.Paid > common.MaxColumnUint-amount || dist.Payouts == math.MaxUint32 {
		return perrors.ErrMathOverflow
	}

	dist.Paid += amount
	dist.Payouts++

	return nil
}

// Finalize closes the batch. A failed call leaves the distribution unchanged.
func (dist *Distribution) Finalize(caller common.Identity, at time.Time) error {
	if caller != dist.Authority {
		return perrors.ErrInvalidAuthority
	}

	if dist.Finalized {
		return perrors.ErrDistributionAlreadyFinalized
	}

	dist.Finalized = true
	dist.FinalizedAt = &at

	return nil
}
