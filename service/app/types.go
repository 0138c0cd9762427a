package app

import (
	"time"

	"github.com/google/uuid"
	"github.com/peer-network/peer-token/service/common"
	"gorm.io/gorm"
)

type Distribution struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;size:36"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Authority      common.Identity `gorm:"column:authority;size:32;not null;index"` // Only identity allowed to execute and finalize
	SourceAccount  common.Identity `gorm:"column:source_account;size:32;not null"`  // Pooled balance the payouts are taken from
	TotalWeight    uint64          `gorm:"column:total_weight;not null"`            // Sum of all recipient weights, committed at init
	RecipientCount uint16          `gorm:"column:recipient_count;not null"`         // Informational, capped
	Finalized      bool            `gorm:"column:finalized;not null;index"`
	FinalizedAt    *time.Time      `gorm:"column:finalized_at"`

	// Running totals, informational only
	Paid    uint64 `gorm:"column:paid;not null"`
	Payouts uint32 `gorm:"column:payouts;not null"`
}

// RecipientShare is supplied with each execute call and never stored.
type RecipientShare struct {
	Destination common.Identity
	Weight      uint64
}

// Allocation is the outcome of sizing one recipient's payout.
type Allocation struct {
	Percentage uint8
	Amount     uint64
}

type Payout struct {
	DistributionID uuid.UUID
	Destination    common.Identity
	Weight         uint64
	Percentage     uint8
	Amount         uint64
}

// Account is the balance record of the ledger store.
type Account struct {
	Identity  common.Identity `gorm:"column:identity;primaryKey;size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Balance uint64 `gorm:"column:balance;not null"`
}

func (Distribution) TableName() string {
	return "distributions"
}

func (d *Distribution) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (Account) TableName() string {
	return "accounts"
}
