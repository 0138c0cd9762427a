package app

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/peer-network/peer-token/service/common"
	perrors "github.com/peer-network/peer-token/service/errors"
	"github.com/peer-network/peer-token/service/transfers"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Distribution{}, &MintGateRecord{}, &Account{}); err != nil {
		return err
	}
	return transfers.Migrate(db)
}

func (s *GormStore) WithContext(ctx context.Context) Store {
	return &GormStore{s.db.WithContext(ctx)}
}

func (s *GormStore) Transaction(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{tx})
	})
}

// forUpdate locks selected rows until the surrounding transaction ends.
func (s *GormStore) forUpdate() *gorm.DB {
	if common.SupportsRowLocks(s.db) {
		return s.db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return s.db
}

// Insert distribution
func (s *GormStore) InsertDistribution(d *Distribution) error {
	return s.db.Omit(clause.Associations).Create(d).Error
}

// Update distribution
func (s *GormStore) UpdateDistribution(d *Distribution) error {
	return s.db.Omit(clause.Associations).Save(d).Error
}

// List distributions
func (s *GormStore) ListDistributions(opt ListOptions) ([]Distribution, error) {
	list := []Distribution{}
	if err := s.db.Order("created_at desc").Limit(opt.Limit).Offset(opt.Offset).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Get distribution
func (s *GormStore) GetDistribution(id uuid.UUID) (*Distribution, error) {
	distribution := Distribution{}
	if err := s.db.First(&distribution, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &distribution, nil
}

func (s *GormStore) GetDistributionForUpdate(id uuid.UUID) (*Distribution, error) {
	distribution := Distribution{}
	if err := s.forUpdate().First(&distribution, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &distribution, nil
}

func (s *GormStore) CountOpenDistributions() (int64, error) {
	var count int64
	err := s.db.Model(&Distribution{}).Where("finalized = ?", false).Count(&count).Error
	return count, err
}

func (s *GormStore) GetMintGate(authority common.Identity) (*MintGateRecord, error) {
	gate := MintGateRecord{}
	if err := s.db.First(&gate, "authority = ?", authority).Error; err != nil {
		return nil, err
	}
	return &gate, nil
}

func (s *GormStore) GetMintGateForUpdate(authority common.Identity) (*MintGateRecord, error) {
	if err := s.insertIfMissing(&MintGateRecord{Authority: authority}); err != nil {
		return nil, err
	}

	gate := MintGateRecord{}
	if err := s.forUpdate().First(&gate, "authority = ?", authority).Error; err != nil {
		return nil, err
	}
	return &gate, nil
}

func (s *GormStore) UpdateMintGate(gate *MintGateRecord) error {
	return s.db.Save(gate).Error
}

func (s *GormStore) CountMintGates() (int64, error) {
	var count int64
	err := s.db.Model(&MintGateRecord{}).Where("total_mints > ?", 0).Count(&count).Error
	return count, err
}

func (s *GormStore) Balance(account common.Identity) (uint64, error) {
	acc := Account{}
	err := s.db.First(&acc, "identity = ?", account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (s *GormStore) Debit(account common.Identity, amount uint64) error {
	acc := Account{}
	err := s.forUpdate().First(&acc, "identity = ?", account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return perrors.ErrInsufficientFunds
	}
	if err != nil {
		return err
	}

	if acc.Balance < amount {
		return perrors.ErrInsufficientFunds
	}

	return s.db.Model(&Account{}).
		Where("identity = ?", account).
		Update("balance", acc.Balance-amount).Error
}

func (s *GormStore) Credit(account common.Identity, amount uint64) error {
	if amount > common.MaxColumnUint {
		return perrors.ErrMathOverflow
	}

	if err := s.insertIfMissing(&Account{Identity: account}); err != nil {
		return err
	}

	acc := Account{}
	if err := s.forUpdate().First(&acc, "identity = ?", account).Error; err != nil {
		return err
	}

	if acc.Balance > common.MaxColumnUint-amount {
		return perrors.ErrMathOverflow
	}

	return s.db.Model(&Account{}).
		Where("identity = ?", account).
		Update("balance", acc.Balance+amount).Error
}

// insertIfMissing creates the row unless its primary key already exists.
// Concurrent first writers both succeed and then serialize on the row lock.
func (s *GormStore) insertIfMissing(value interface{}) error {
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(value).Error
}

func (s *GormStore) InsertTransfer(t *transfers.StorableTransfer) error {
	return transfers.Insert(s.db, t)
}

func (s *GormStore) GetTransfer(id uuid.UUID) (*transfers.StorableTransfer, error) {
	return transfers.GetTransfer(s.db, id)
}

func (s *GormStore) ListTransfers(distributionID uuid.UUID, opt ListOptions) ([]transfers.StorableTransfer, error) {
	return transfers.ListByDistribution(s.db, distributionID, opt.Limit, opt.Offset)
}

func (s *GormStore) HasPayout(distributionID uuid.UUID, destination common.Identity) (bool, error) {
	return transfers.HasPayout(s.db, distributionID, destination)
}
