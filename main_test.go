package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/peer-network/peer-token/service/common"
	token_http "github.com/peer-network/peer-token/service/http"
)

const (
	companyKey = "5YNmS1R9nNSCDzb5a7mMJ1dwK9uHeAAF4CYuH1FLM6e3"
	user1Key   = "ES8snGH1j1SxYMZMzjt9NTXzZmkazzN9omikHP5NmPZ4"
	user2Key   = "6aR8Atv9Nnad3cHJBYUgjm5TdMByHjUDX4KD63TJ28RW"
)

func doRequest(t testing.TB, server *token_http.Server, method, path string, body interface{}, wantStatus int, res interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()

	server.Server.Handler.ServeHTTP(rr, req)

	// Check the status code is what we expect.
	if status := rr.Code; status != wantStatus {
		t.Fatalf("%s %s returned wrong status code: got %v want %v, body: %s", method, path, status, wantStatus, rr.Body)
	}

	if res != nil {
		if err := json.NewDecoder(rr.Body).Decode(res); err != nil {
			t.Fatal(err)
		}
	}
}

// Mint into the company account once a day for two days and distribute
// the pool to two recipients.
func TestMintAndDistribute(t *testing.T) {
	cfg := getTestCfg(t)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC))
	server := getTestServer(t, cfg, clock, false)

	mint := token_http.ReqDailyMint{
		Authority: common.MustIdentityFromString(companyKey),
		Amount:    400,
	}

	doRequest(t, server, "POST", "/v1/mint", mint, http.StatusOK, nil)
	doRequest(t, server, "POST", "/v1/mint", mint, http.StatusConflict, nil)

	clock.Advance(24 * time.Hour)

	minted := token_http.ResDailyMint{}
	doRequest(t, server, "POST", "/v1/mint", mint, http.StatusOK, &minted)
	AssertEqual(t, minted.TotalMints, uint64(2))

	account := token_http.ResAccount{}
	doRequest(t, server, "GET", "/v1/accounts/"+companyKey, nil, http.StatusOK, &account)
	AssertEqual(t, account.Balance, uint64(800))

	created := token_http.ResInitDistribution{}
	doRequest(t, server, "POST", "/v1/distributions", map[string]interface{}{
		"authority":      companyKey,
		"sourceAccount":  companyKey,
		"totalWeight":    1000,
		"recipientCount": 2,
	}, http.StatusCreated, &created)

	base := fmt.Sprintf("/v1/distributions/%s", created.ID)

	payout := token_http.ResExecuteDistribution{}
	doRequest(t, server, "POST", base+"/execute", map[string]interface{}{
		"authority":   companyKey,
		"destination": user1Key,
		"weight":      250,
	}, http.StatusOK, &payout)
	AssertEqual(t, payout.Percentage, uint8(25))
	AssertEqual(t, payout.Amount, uint64(200))

	doRequest(t, server, "POST", base+"/execute", map[string]interface{}{
		"authority":   user1Key,
		"destination": user2Key,
		"weight":      750,
	}, http.StatusForbidden, nil)

	doRequest(t, server, "POST", base+"/execute", map[string]interface{}{
		"authority":   companyKey,
		"destination": user2Key,
		"weight":      750,
	}, http.StatusOK, &payout)
	AssertEqual(t, payout.Percentage, uint8(75))
	AssertEqual(t, payout.Amount, uint64(450))

	doRequest(t, server, "POST", base+"/finalize", map[string]interface{}{"authority": companyKey}, http.StatusOK, nil)

	doRequest(t, server, "POST", base+"/execute", map[string]interface{}{
		"authority":   companyKey,
		"destination": user2Key,
		"weight":      1,
	}, http.StatusConflict, nil)

	doRequest(t, server, "GET", "/v1/accounts/"+companyKey, nil, http.StatusOK, &account)
	AssertEqual(t, account.Balance, uint64(150))

	doRequest(t, server, "GET", "/v1/accounts/"+user1Key, nil, http.StatusOK, &account)
	AssertEqual(t, account.Balance, uint64(200))

	doRequest(t, server, "GET", "/v1/accounts/"+user2Key, nil, http.StatusOK, &account)
	AssertEqual(t, account.Balance, uint64(450))

	dist := token_http.ResGetDistribution{}
	doRequest(t, server, "GET", base, nil, http.StatusOK, &dist)
	AssertEqual(t, dist.Finalized, true)
	AssertEqual(t, dist.Paid, uint64(650))
	AssertEqual(t, dist.Payouts, uint32(2))
}
