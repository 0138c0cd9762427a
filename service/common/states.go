package common

import "fmt"

type DistributionState uint
type TransferKind string

const (
	DistributionStateUninitialized DistributionState = iota
	DistributionStateOpen
	DistributionStateFinalized
)

func (s DistributionState) String() string {
	switch s {
	case DistributionStateUninitialized:
		return "uninitialized"
	case DistributionStateOpen:
		return "open"
	case DistributionStateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("unknown(%d)", uint(s))
	}
}

func (s DistributionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

const (
	TransferKindMint   TransferKind = "mint"
	TransferKindPayout TransferKind = "payout"
)

func (s *DistributionState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "uninitialized":
		*s = DistributionStateUninitialized
	case "open":
		*s = DistributionStateOpen
	case "finalized":
		*s = DistributionStateFinalized
	default:
		return fmt.Errorf("unknown distribution state %q", string(text))
	}
	return nil
}
