package app

import (
	"time"

	"github.com/peer-network/peer-token/service/common"
	perrors "github.com/peer-network/peer-token/service/errors"
)

const SecondsPerDay = 86400

// MintGateRecord tracks the daily mint of one authority.
// LastMintDay zero means the authority never minted.
type MintGateRecord struct {
	Authority common.Identity `gorm:"column:authority;primaryKey;size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time

	LastMintDay       uint64 `gorm:"column:last_mint_day;not null"`
	LastMintTimestamp int64  `gorm:"column:last_mint_timestamp;not null"`
	TotalMints        uint64 `gorm:"column:total_mints;not null"`
}

type MintStatus struct {
	Authority         common.Identity `json:"authority"`
	CanMintToday      bool            `json:"canMintToday"`
	CurrentDay        uint64          `json:"currentDay"`
	LastMintDay       uint64          `json:"lastMintDay"`
	LastMintTimestamp int64           `json:"lastMintTimestamp"`
	TotalMints        uint64          `json:"totalMints"`
}

func (MintGateRecord) TableName() string {
	return "mint_gates"
}

// DayOf returns the number of whole days since the unix epoch.
func DayOf(t time.Time) uint64 {
	s := t.Unix()
	if s < 0 {
		return 0
	}
	return uint64(s) / SecondsPerDay
}

// CanMint reports whether a mint on the given day passes the gate.
func (r MintGateRecord) CanMint(day uint64) bool {
	return day > r.LastMintDay
}

// RecordMint advances the gate to now's day or fails without touching the record.
func (r *MintGateRecord) RecordMint(now time.Time) error {
	day := DayOf(now)

	if !r.CanMint(day) {
		return perrors.ErrAlreadyMintedToday
	}

	if r.TotalMints >= common.MaxColumnUint {
		return perrors.ErrMathOverflow
	}

	r.LastMintDay = day
	r.LastMintTimestamp = now.Unix()
	r.TotalMints++

	return nil
}

func (r MintGateRecord) Status(now time.Time) MintStatus {
	day := DayOf(now)
	return MintStatus{
		Authority:         r.Authority,
		CanMintToday:      r.CanMint(day),
		CurrentDay:        day,
		LastMintDay:       r.LastMintDay,
		LastMintTimestamp: r.LastMintTimestamp,
		TotalMints:        r.TotalMints,
	}
}
