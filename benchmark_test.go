package main

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/peer-network/peer-token/service/common"
	token_http "github.com/peer-network/peer-token/service/http"
)

// Each iteration is one day: a mint followed by a single payout.
func benchmarkMintAndExecute(recipients uint16, b *testing.B) {
	cfg := getTestCfg(b)
	clock := clockwork.NewFakeClock()
	server := getTestServer(b, cfg, clock, false)

	mint := token_http.ReqDailyMint{
		Authority: common.MustIdentityFromString(companyKey),
		Amount:    1000,
	}

	created := token_http.ResInitDistribution{}
	doRequest(b, server, "POST", "/v1/distributions", map[string]interface{}{
		"authority":      companyKey,
		"sourceAccount":  companyKey,
		"totalWeight":    uint64(recipients),
		"recipientCount": recipients,
	}, http.StatusCreated, &created)

	path := fmt.Sprintf("/v1/distributions/%s/execute", created.ID)

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		clock.Advance(24 * time.Hour)
		doRequest(b, server, "POST", "/v1/mint", mint, http.StatusOK, nil)
		doRequest(b, server, "POST", path, map[string]interface{}{
			"authority":   companyKey,
			"destination": user1Key,
			"weight":      1,
		}, http.StatusOK, nil)
	}
}

func BenchmarkMintAndExecute1Recipient(b *testing.B)    { benchmarkMintAndExecute(1, b) }
func BenchmarkMintAndExecute10Recipients(b *testing.B)  { benchmarkMintAndExecute(10, b) }
func BenchmarkMintAndExecute100Recipients(b *testing.B) { benchmarkMintAndExecute(100, b) }
