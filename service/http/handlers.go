package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/peer-network/peer-token/service/app"
	"github.com/peer-network/peer-token/service/common"
	log "github.com/sirupsen/logrus"
)

// Open a distribution
func HandleInitDistribution(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		var reqData ReqInitDistribution

		if err := decodeBody(r, &reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		dist, err := app.InitDistribution(r.Context(), reqData.Authority, reqData.SourceAccount, reqData.TotalWeight, reqData.RecipientCount)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusCreated, ResInitDistribution{ID: dist.ID})
	}
}

// List distributions
func HandleListDistributions(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		limit, offset := parsePaging(r)

		list, err := app.ListDistributions(r.Context(), limit, offset)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResDistributionListFromApp(list))
	}
}

// Get distribution details
func HandleGetDistribution(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		id, err := distributionID(r)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		dist, err := app.GetDistribution(r.Context(), id)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResGetDistributionFromApp(dist))
	}
}

// Pay one recipient
func HandleExecuteDistribution(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		id, err := distributionID(r)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		var reqData ReqExecuteDistribution

		if err := decodeBody(r, &reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		payout, err := app.ExecuteDistribution(r.Context(), id, reqData.Authority, reqData.ToApp())
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResExecuteDistributionFromApp(payout))
	}
}

// Close a distribution
func HandleFinalizeDistribution(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		id, err := distributionID(r)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		var reqData ReqFinalizeDistribution

		if err := decodeBody(r, &reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		if err := app.FinalizeDistribution(r.Context(), id, reqData.Authority); err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, "Ok")
	}
}

// List the payouts of a distribution
func HandleListDistributionTransfers(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		id, err := distributionID(r)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		limit, offset := parsePaging(r)

		list, err := app.ListDistributionTransfers(r.Context(), id, limit, offset)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResTransferListFromApp(list))
	}
}

// Get a single payout of a distribution
func HandleGetDistributionTransfer(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		id, err := distributionID(r)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		transferID, err := uuid.Parse(mux.Vars(r)["transferID"])
		if err != nil {
			handleError(rw, logger, badRequest(err))
			return
		}

		t, err := app.GetDistributionTransfer(r.Context(), id, transferID)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResTransferFromApp(t))
	}
}

// Daily mint
func HandleDailyMint(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		var reqData ReqDailyMint

		if err := decodeBody(r, &reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		gate, err := app.DailyMint(r.Context(), reqData.Authority, reqData.Amount)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResDailyMint{
			Authority:   gate.Authority,
			Amount:      reqData.Amount,
			LastMintDay: gate.LastMintDay,
			TotalMints:  gate.TotalMints,
		})
	}
}

// Mint status, including whether the authority can mint today
func HandleGetMintStatus(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		authority, err := identityVar(r, "authority")
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		status, err := app.GetMintStatus(r.Context(), authority)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, status)
	}
}

// Account balance
func HandleGetAccount(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		identity, err := identityVar(r, "identity")
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		balance, err := app.GetBalance(r.Context(), identity)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResAccount{Identity: identity, Balance: balance})
	}
}

func HandleHealthReady() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
	}
}

func distributionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, badRequest(err)
	}
	return id, nil
}

func identityVar(r *http.Request, name string) (common.Identity, error) {
	id, err := common.IdentityFromString(mux.Vars(r)[name])
	if err != nil {
		return common.Identity{}, badRequest(err)
	}
	return id, nil
}

func parsePaging(r *http.Request) (int, int) {
	limit, err := strconv.Atoi(r.FormValue("limit"))
	if err != nil {
		limit = 0
	}

	offset, err := strconv.Atoi(r.FormValue("offset"))
	if err != nil {
		offset = 0
	}

	return limit, offset
}
