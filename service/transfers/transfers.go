package transfers

import (
	"time"

	"github.com/google/uuid"
	"github.com/peer-network/peer-token/service/common"
)

// StorableTransfer is one debit/credit pair applied to the ledger.
// Mints have no source and no distribution.
type StorableTransfer struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;size:36"`
	CreatedAt time.Time `gorm:"column:created_at;index"`

	Kind           common.TransferKind `gorm:"column:kind;size:16;not null;index"`
	DistributionID *uuid.UUID          `gorm:"column:distribution_id;size:36;index"`
	Source         *common.Identity    `gorm:"column:source;size:32"`
	Destination    common.Identity     `gorm:"column:destination;size:32;not null"`
	Amount         uint64              `gorm:"column:amount;not null"`

	// Payout only
	Weight     uint64 `gorm:"column:weight"`
	Percentage uint8  `gorm:"column:percentage"`
}

// NewPayout journals a distribution payout from the pooled source account.
func NewPayout(distributionID uuid.UUID, source, destination common.Identity, amount, weight uint64, percentage uint8, at time.Time) *StorableTransfer {
	return &StorableTransfer{
		CreatedAt:      at,
		Kind:           common.TransferKindPayout,
		DistributionID: &distributionID,
		Source:         &source,
		Destination:    destination,
		Amount:         amount,
		Weight:         weight,
		Percentage:     percentage,
	}
}

// NewMint journals a daily mint credited to the authority's own account.
func NewMint(authority common.Identity, amount uint64, at time.Time) *StorableTransfer {
	return &StorableTransfer{
		CreatedAt:   at,
		Kind:        common.TransferKindMint,
		Destination: authority,
		Amount:      amount,
	}
}
