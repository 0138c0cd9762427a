package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/peer-network/peer-token/service/common"
	"github.com/peer-network/peer-token/service/transfers"
)

// Store is the ledger store. Every method runs against the store it was
// called on, so methods called on the Store handed to Transaction's callback
// commit or roll back together.
type Store interface {
	WithContext(ctx context.Context) Store

	// Run fn as one atomic unit
	Transaction(fn func(tx Store) error) error

	// Insert distribution
	InsertDistribution(*Distribution) error

	// Update distribution
	UpdateDistribution(*Distribution) error

	// List distributions
	ListDistributions(ListOptions) ([]Distribution, error)

	// Get distribution
	GetDistribution(id uuid.UUID) (*Distribution, error)

	// Get distribution and hold it for the rest of the transaction
	GetDistributionForUpdate(id uuid.UUID) (*Distribution, error)

	CountOpenDistributions() (int64, error)

	// Get mint gate, gorm.ErrRecordNotFound if the authority never minted
	GetMintGate(authority common.Identity) (*MintGateRecord, error)

	// Get or lazily create the mint gate and hold it for the rest of the transaction
	GetMintGateForUpdate(authority common.Identity) (*MintGateRecord, error)

	UpdateMintGate(*MintGateRecord) error

	CountMintGates() (int64, error)

	// Balance of an account, zero for unknown accounts
	Balance(account common.Identity) (uint64, error)

	// Debit fails with ErrInsufficientFunds if the balance is too low
	Debit(account common.Identity, amount uint64) error

	// Credit creates the account if needed
	Credit(account common.Identity, amount uint64) error

	InsertTransfer(*transfers.StorableTransfer) error

	GetTransfer(id uuid.UUID) (*transfers.StorableTransfer, error)

	ListTransfers(distributionID uuid.UUID, opt ListOptions) ([]transfers.StorableTransfer, error)

	HasPayout(distributionID uuid.UUID, destination common.Identity) (bool, error)
}

type ListOptions struct {
	Limit  int
	Offset int
}

const DefaultLimit = 1000

func ParseListOptions(limit, offset int) ListOptions {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 {
		limit = -1
		offset = 0
	}
	if offset < 0 {
		offset = 0
	}
	return ListOptions{Limit: limit, Offset: offset}
}
