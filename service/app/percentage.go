package app

import (
	"math"

	"github.com/holiman/uint256"
	perrors "github.com/peer-network/peer-token/service/errors"
)

// All percentage math runs in 256 bit so that u64 * 100 always fits,
// the multiplications are still overflow checked.

var hundred = uint256.NewInt(100)

// PercentageOf returns floor(part * 100 / total).
// Callers must pass part <= total for the result to be in [0, 100].
func PercentageOf(part, total uint64) (uint8, error) {
	if total == 0 {
		return 0, perrors.ErrDivisionByZero
	}

	scaled, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(part), hundred)
	if overflow {
		return 0, perrors.ErrMathOverflow
	}

	pct, err := checkedDiv(scaled, uint256.NewInt(total))
	if err != nil {
		return 0, err
	}

	if !pct.IsUint64() || pct.Uint64() > math.MaxUint8 {
		return 0, perrors.ErrInvalidPercentage
	}

	return uint8(pct.Uint64()), nil
}

// AmountForPercentage returns floor(balance * percentage / 100).
func AmountForPercentage(balance uint64, percentage uint8) (uint64, error) {
	scaled, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(balance), uint256.NewInt(uint64(percentage)))
	if overflow {
		return 0, perrors.ErrMathOverflow
	}

	amount, err := checkedDiv(scaled, hundred)
	if err != nil {
		return 0, err
	}

	if !amount.IsUint64() {
		return 0, perrors.ErrMathOverflow
	}

	return amount.Uint64(), nil
}

func checkedDiv(x, y *uint256.Int) (*uint256.Int, error) {
	if y.IsZero() {
		return nil, perrors.ErrDivisionByZero
	}
	return new(uint256.Int).Div(x, y), nil
}
