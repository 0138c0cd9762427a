package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/peer-network/peer-token/service/app"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func NewRouter(logger *log.Logger, app *app.App) http.Handler {
	r := mux.NewRouter()

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Catch the api version
	rv := r.PathPrefix("/{apiVersion}").Subrouter()

	rv.HandleFunc("/health/ready", HandleHealthReady()).Methods(http.MethodGet)

	rv.HandleFunc("/distributions", HandleInitDistribution(logger, app)).Methods(http.MethodPost)
	rv.HandleFunc("/distributions", HandleListDistributions(logger, app)).Methods(http.MethodGet)
	rv.HandleFunc("/distributions/{id}", HandleGetDistribution(logger, app)).Methods(http.MethodGet)
	rv.HandleFunc("/distributions/{id}/execute", HandleExecuteDistribution(logger, app)).Methods(http.MethodPost)
	rv.HandleFunc("/distributions/{id}/finalize", HandleFinalizeDistribution(logger, app)).Methods(http.MethodPost)
	rv.HandleFunc("/distributions/{id}/transfers", HandleListDistributionTransfers(logger, app)).Methods(http.MethodGet)
	rv.HandleFunc("/distributions/{id}/transfers/{transferID}", HandleGetDistributionTransfer(logger, app)).Methods(http.MethodGet)

	rv.HandleFunc("/mint", HandleDailyMint(logger, app)).Methods(http.MethodPost)
	rv.HandleFunc("/mint/{authority}", HandleGetMintStatus(logger, app)).Methods(http.MethodGet)

	rv.HandleFunc("/accounts/{identity}", HandleGetAccount(logger, app)).Methods(http.MethodGet)

	// Use middleware
	h := UseCors(r)
	h = UseLogging(logger.Writer(), h)
	h = UseCompress(h)
	h = UseJson(h)

	return h
}
