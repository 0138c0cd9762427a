package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "peer_token_build_info",
			Help: "Build information of the peer token service",
		},
		[]string{"version", "commit", "date"},
	)

	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peer_token_operations_total",
			Help: "Total number of ledger operations by outcome",
		},
		[]string{"operation", "status"},
	)

	TokensTransferredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peer_token_tokens_transferred_total",
			Help: "Total base units moved by kind (mint or payout)",
		},
		[]string{"kind"},
	)

	OpenDistributions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "peer_token_open_distributions",
			Help: "Number of distributions that have not been finalized",
		},
	)

	MintGates = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "peer_token_mint_gates",
			Help: "Number of authorities that have minted at least once",
		},
	)
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Observe records the outcome of a single operation.
func Observe(operation string, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	OperationsTotal.WithLabelValues(operation, status).Inc()
}
