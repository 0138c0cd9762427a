package transfers

import (
	"github.com/google/uuid"
	"github.com/peer-network/peer-token/service/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&StorableTransfer{})
}

func (StorableTransfer) TableName() string {
	return "transfers"
}

func (t *StorableTransfer) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func Insert(db *gorm.DB, t *StorableTransfer) error {
	return db.Omit(clause.Associations).Create(t).Error
}

func GetTransfer(db *gorm.DB, id uuid.UUID) (*StorableTransfer, error) {
	t := StorableTransfer{}
	if err := db.First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func ListByDistribution(db *gorm.DB, distributionID uuid.UUID, limit, offset int) ([]StorableTransfer, error) {
	list := []StorableTransfer{}
	err := db.Order("created_at asc").
		Where("distribution_id = ?", distributionID).
		Limit(limit).Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// HasPayout reports whether destination already received a payout in the distribution.
func HasPayout(db *gorm.DB, distributionID uuid.UUID, destination common.Identity) (bool, error) {
	var count int64
	err := db.Model(&StorableTransfer{}).
		Where("kind = ? AND distribution_id = ? AND destination = ?", common.TransferKindPayout, distributionID, destination).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
