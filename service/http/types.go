package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/peer-network/peer-token/service/app"
	"github.com/peer-network/peer-token/service/common"
	"github.com/peer-network/peer-token/service/transfers"
)

type ReqInitDistribution struct {
	Authority      common.Identity `json:"authority"`
	SourceAccount  common.Identity `json:"sourceAccount"`
	TotalWeight    uint64          `json:"totalWeight"`
	RecipientCount uint16          `json:"recipientCount"`
}

type ResInitDistribution struct {
	ID uuid.UUID `json:"distID"`
}

type ReqExecuteDistribution struct {
	Authority   common.Identity `json:"authority"`
	Destination common.Identity `json:"destination"`
	Weight      uint64          `json:"weight"`
}

type ResExecuteDistribution struct {
	ID          uuid.UUID       `json:"distID"`
	Destination common.Identity `json:"destination"`
	Weight      uint64          `json:"weight"`
	Percentage  uint8           `json:"percentage"`
	Amount      uint64          `json:"amount"`
}

type ReqFinalizeDistribution struct {
	Authority common.Identity `json:"authority"`
}

type ResGetDistribution struct {
	ID             uuid.UUID                `json:"distID"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
	Authority      common.Identity          `json:"authority"`
	SourceAccount  common.Identity          `json:"sourceAccount"`
	TotalWeight    uint64                   `json:"totalWeight"`
	RecipientCount uint16                   `json:"recipientCount"`
	State          common.DistributionState `json:"state"`
	Finalized      bool                     `json:"finalized"`
	FinalizedAt    *time.Time               `json:"finalizedAt,omitempty"`
	Paid           uint64                   `json:"paid"`
	Payouts        uint32                   `json:"payouts"`
}

type ResTransfer struct {
	ID          uuid.UUID           `json:"id"`
	CreatedAt   time.Time           `json:"createdAt"`
	Kind        common.TransferKind `json:"kind"`
	Source      *common.Identity    `json:"source,omitempty"`
	Destination common.Identity     `json:"destination"`
	Amount      uint64              `json:"amount"`
	Weight      uint64              `json:"weight,omitempty"`
	Percentage  uint8               `json:"percentage,omitempty"`
}

type ReqDailyMint struct {
	Authority common.Identity `json:"authority"`
	Amount    uint64          `json:"amount"`
}

type ResDailyMint struct {
	Authority   common.Identity `json:"authority"`
	Amount      uint64          `json:"amount"`
	LastMintDay uint64          `json:"lastMintDay"`
	TotalMints  uint64          `json:"totalMints"`
}

type ResAccount struct {
	Identity common.Identity `json:"identity"`
	Balance  uint64          `json:"balance"`
}

type ResError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func ResGetDistributionFromApp(d *app.Distribution) ResGetDistribution {
	return ResGetDistribution{
		ID:             d.ID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		Authority:      d.Authority,
		SourceAccount:  d.SourceAccount,
		TotalWeight:    d.TotalWeight,
		RecipientCount: d.RecipientCount,
		State:          d.State(),
		Finalized:      d.Finalized,
		FinalizedAt:    d.FinalizedAt,
		Paid:           d.Paid,
		Payouts:        d.Payouts,
	}
}

func ResDistributionListFromApp(dd []app.Distribution) []ResGetDistribution {
	res := make([]ResGetDistribution, len(dd))
	for i := range dd {
		res[i] = ResGetDistributionFromApp(&dd[i])
	}
	return res
}

func ResExecuteDistributionFromApp(p *app.Payout) ResExecuteDistribution {
	return ResExecuteDistribution{
		ID:          p.DistributionID,
		Destination: p.Destination,
		Weight:      p.Weight,
		Percentage:  p.Percentage,
		Amount:      p.Amount,
	}
}

func ResTransferFromApp(t *transfers.StorableTransfer) ResTransfer {
	return ResTransfer{
		ID:          t.ID,
		CreatedAt:   t.CreatedAt,
		Kind:        t.Kind,
		Source:      t.Source,
		Destination: t.Destination,
		Amount:      t.Amount,
		Weight:      t.Weight,
		Percentage:  t.Percentage,
	}
}

func ResTransferListFromApp(tt []transfers.StorableTransfer) []ResTransfer {
	res := make([]ResTransfer, len(tt))
	for i := range tt {
		res[i] = ResTransferFromApp(&tt[i])
	}
	return res
}

func (r ReqExecuteDistribution) ToApp() app.RecipientShare {
	return app.RecipientShare{
		Destination: r.Destination,
		Weight:      r.Weight,
	}
}
