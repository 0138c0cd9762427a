package app

import (
	"errors"
	"testing"
	"time"

	perrors "github.com/peer-network/peer-token/service/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf(t *testing.T) {
	assert.Equal(t, uint64(0), DayOf(time.Unix(0, 0)))
	assert.Equal(t, uint64(0), DayOf(time.Unix(SecondsPerDay-1, 0)))
	assert.Equal(t, uint64(1), DayOf(time.Unix(SecondsPerDay, 0)))
	assert.Equal(t, uint64(0), DayOf(time.Unix(-5, 0)))
	assert.Equal(t, uint64(20744), DayOf(time.Date(2026, 10, 18, 23, 59, 59, 0, time.UTC)))
}

func TestMintGateOncePerDay(t *testing.T) {
	day := uint64(20744)
	start := time.Unix(int64(day)*SecondsPerDay+3600, 0)

	gate := MintGateRecord{Authority: authorityA, LastMintDay: day, LastMintTimestamp: start.Unix(), TotalMints: 4}

	err := gate.RecordMint(start.Add(time.Hour))
	assert.True(t, errors.Is(err, perrors.ErrAlreadyMintedToday))
	assert.Equal(t, day, gate.LastMintDay)
	assert.Equal(t, uint64(4), gate.TotalMints)

	next := start.Add(24 * time.Hour)
	require.NoError(t, gate.RecordMint(next))
	assert.Equal(t, day+1, gate.LastMintDay)
	assert.Equal(t, next.Unix(), gate.LastMintTimestamp)
	assert.Equal(t, uint64(5), gate.TotalMints)
}

func TestMintGateFreshRecord(t *testing.T) {
	gate := MintGateRecord{Authority: authorityA}

	assert.True(t, gate.CanMint(1))
	require.NoError(t, gate.RecordMint(time.Unix(SecondsPerDay*2, 0)))
	assert.Equal(t, uint64(2), gate.LastMintDay)
	assert.Equal(t, uint64(1), gate.TotalMints)
}

func TestMintGateRejectsClockGoingBack(t *testing.T) {
	gate := MintGateRecord{LastMintDay: 100}
	assert.False(t, gate.CanMint(99))
	assert.False(t, gate.CanMint(100))
	assert.True(t, gate.CanMint(101))
}

func TestMintGateStatus(t *testing.T) {
	now := time.Unix(SecondsPerDay*10+5, 0)
	gate := MintGateRecord{Authority: authorityA, LastMintDay: 10, LastMintTimestamp: now.Unix() - 1, TotalMints: 3}

	status := gate.Status(now)
	assert.False(t, status.CanMintToday)
	assert.Equal(t, uint64(10), status.CurrentDay)
	assert.Equal(t, uint64(3), status.TotalMints)

	status = gate.Status(now.Add(24 * time.Hour))
	assert.True(t, status.CanMintToday)
}
