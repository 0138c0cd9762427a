package app

import (
	"fmt"

	"github.com/peer-network/peer-token/service/common"
	perrors "github.com/peer-network/peer-token/service/errors"
)

func (dist Distribution) Validate(maxRecipients uint16) error {
	if dist.Authority.IsEmpty() {
		return perrors.ErrInvalidAuthority
	}

	if dist.SourceAccount.IsEmpty() {
		return perrors.ErrInvalidSourceAccount
	}

	if dist.RecipientCount == 0 {
		return perrors.ErrNoRecipients
	}

	if dist.TotalWeight == 0 {
		return perrors.ErrInvalidWeightTotal
	}

	if dist.TotalWeight > common.MaxColumnUint {
		return fmt.Errorf("total weight %d exceeds %d: %w", dist.TotalWeight, common.MaxColumnUint, perrors.ErrInvalidWeightTotal)
	}

	if dist.RecipientCount > maxRecipients {
		return fmt.Errorf("%d recipients, at most %d allowed: %w", dist.RecipientCount, maxRecipients, perrors.ErrTooManyRecipients)
	}

	return nil
}

func (share RecipientShare) Validate() error {
	if share.Destination.IsEmpty() {
		return perrors.ErrInvalidDestination
	}

	if share.Weight == 0 {
		return perrors.ErrInvalidGemCount
	}

	return nil
}
