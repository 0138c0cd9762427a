package app

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/peer-network/peer-token/service/common"
	perrors "github.com/peer-network/peer-token/service/errors"
	"github.com/peer-network/peer-token/service/transfers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormStoreBalances(t *testing.T) {
	store := getTestStore(t)

	assert.Equal(t, uint64(0), balanceOf(t, store, recipient1))

	err := store.Debit(recipient1, 1)
	assert.True(t, errors.Is(err, perrors.ErrInsufficientFunds))

	require.NoError(t, store.Credit(recipient1, 100))
	require.NoError(t, store.Credit(recipient1, 50))
	assert.Equal(t, uint64(150), balanceOf(t, store, recipient1))

	err = store.Debit(recipient1, 151)
	assert.True(t, errors.Is(err, perrors.ErrInsufficientFunds))

	require.NoError(t, store.Debit(recipient1, 150))
	assert.Equal(t, uint64(0), balanceOf(t, store, recipient1))
}

func TestGormStoreBalanceBounds(t *testing.T) {
	store := getTestStore(t)

	err := store.Credit(recipient1, math.MaxUint64)
	assert.True(t, errors.Is(err, perrors.ErrMathOverflow))
	assert.Equal(t, uint64(0), balanceOf(t, store, recipient1))

	require.NoError(t, store.Credit(recipient1, common.MaxColumnUint))
	assert.Equal(t, common.MaxColumnUint, balanceOf(t, store, recipient1))

	err = store.Credit(recipient1, 1)
	assert.True(t, errors.Is(err, perrors.ErrMathOverflow))
	assert.Equal(t, common.MaxColumnUint, balanceOf(t, store, recipient1))

	err = store.Debit(recipient1, math.MaxUint64)
	assert.True(t, errors.Is(err, perrors.ErrInsufficientFunds))

	require.NoError(t, store.Debit(recipient1, common.MaxColumnUint))
	assert.Equal(t, uint64(0), balanceOf(t, store, recipient1))
}

// A second writer that lost the race to create a row keeps the first row.
func TestGormStoreInsertIfMissing(t *testing.T) {
	store := getTestStore(t)

	require.NoError(t, store.insertIfMissing(&Account{Identity: recipient1, Balance: 5}))
	require.NoError(t, store.insertIfMissing(&Account{Identity: recipient1}))
	assert.Equal(t, uint64(5), balanceOf(t, store, recipient1))

	require.NoError(t, store.Credit(recipient1, 10))
	assert.Equal(t, uint64(15), balanceOf(t, store, recipient1))

	gate := &MintGateRecord{Authority: authorityA}
	require.NoError(t, gate.RecordMint(testStart))
	require.NoError(t, store.insertIfMissing(gate))

	locked, err := store.GetMintGateForUpdate(authorityA)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), locked.TotalMints)
	assert.False(t, locked.CanMint(DayOf(testStart)))
}

func TestGormStoreTransactionRollsBack(t *testing.T) {
	store := getTestStore(t)
	fund(t, store, poolSource, 100)

	errAbort := errors.New("abort")
	err := store.Transaction(func(tx Store) error {
		if err := tx.Debit(poolSource, 60); err != nil {
			return err
		}
		if err := tx.Credit(recipient1, 60); err != nil {
			return err
		}
		return errAbort
	})
	assert.True(t, errors.Is(err, errAbort))

	assert.Equal(t, uint64(100), balanceOf(t, store, poolSource))
	assert.Equal(t, uint64(0), balanceOf(t, store, recipient1))
}

func TestGormStoreDistributions(t *testing.T) {
	store := getTestStore(t)

	dist, err := NewDistribution(authorityA, poolSource, 1000, 2, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, store.InsertDistribution(dist))

	stored, err := store.GetDistributionForUpdate(dist.ID)
	require.NoError(t, err)
	assert.Equal(t, authorityA, stored.Authority)
	assert.Equal(t, poolSource, stored.SourceAccount)
	assert.Equal(t, uint64(1000), stored.TotalWeight)
	assert.Equal(t, uint16(2), stored.RecipientCount)
	assert.False(t, stored.Finalized)

	require.NoError(t, stored.Finalize(authorityA, time.Now()))
	require.NoError(t, store.UpdateDistribution(stored))

	open, err := store.CountOpenDistributions()
	require.NoError(t, err)
	assert.Equal(t, int64(0), open)

	_, err = store.GetDistribution([16]byte{7})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestGormStoreMintGates(t *testing.T) {
	store := getTestStore(t)

	_, err := store.GetMintGate(authorityA)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	gate, err := store.GetMintGateForUpdate(authorityA)
	require.NoError(t, err)
	assert.Equal(t, authorityA, gate.Authority)
	assert.Equal(t, uint64(0), gate.TotalMints)

	require.NoError(t, gate.RecordMint(testStart))
	require.NoError(t, store.UpdateMintGate(gate))

	again, err := store.GetMintGateForUpdate(authorityA)
	require.NoError(t, err)
	assert.Equal(t, DayOf(testStart), again.LastMintDay)
	assert.Equal(t, uint64(1), again.TotalMints)
}

func TestGormStoreTransfers(t *testing.T) {
	store := getTestStore(t)

	dist, err := NewDistribution(authorityA, poolSource, 10, 1, testStart)
	require.NoError(t, err)
	require.NoError(t, store.InsertDistribution(dist))

	paid, err := store.HasPayout(dist.ID, recipient1)
	require.NoError(t, err)
	assert.False(t, paid)

	require.NoError(t, store.InsertTransfer(transfers.NewPayout(dist.ID, poolSource, recipient1, 5, 5, 50, testStart)))
	require.NoError(t, store.InsertTransfer(transfers.NewMint(authorityA, 99, testStart)))

	paid, err = store.HasPayout(dist.ID, recipient1)
	require.NoError(t, err)
	assert.True(t, paid)

	paid, err = store.HasPayout(dist.ID, recipient2)
	require.NoError(t, err)
	assert.False(t, paid)

	list, err := store.ListTransfers(dist.ID, ParseListOptions(0, 0))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, common.TransferKindPayout, list[0].Kind)
	require.NotNil(t, list[0].Source)
	assert.Equal(t, poolSource, *list[0].Source)
}

func TestParseListOptions(t *testing.T) {
	assert.Equal(t, ListOptions{Limit: DefaultLimit, Offset: 0}, ParseListOptions(0, 0))
	assert.Equal(t, ListOptions{Limit: -1, Offset: 0}, ParseListOptions(-5, 10))
	assert.Equal(t, ListOptions{Limit: 10, Offset: 0}, ParseListOptions(10, -1))
}
