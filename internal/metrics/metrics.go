// Package metrics exposes the client's Prometheus counters.
//
// The teacher repo never imports prometheus directly; the retrieval
// pack's runZeroInc-conniver repo does, wrapping a domain collector
// (pkg/exporter/exporter.go) around per-connection TCP statistics. We
// borrow that same "wrap a domain counter as a Prometheus metric"
// shape, but at the granularity prometheus/client_golang's promauto
// helpers are built for: plain CounterVecs registered once at package
// init, incremented from the dispatch loop.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PacketsDecodedTotal counts successfully decoded typed packets by
	// phase name and numeric id.
	PacketsDecodedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcclient_packets_decoded_total",
		Help: "Typed packets successfully decoded, by phase and packet id.",
	}, []string{"phase", "id"})

	// UnknownPacketsTotal counts packets skipped via raw length because
	// no typed decoder is registered for (phase, id).
	UnknownPacketsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcclient_unknown_packets_total",
		Help: "Packets skipped raw because no decoder is registered for the phase/id pair.",
	}, []string{"phase", "id"})

	// KeepAliveReflectedTotal counts inbound keep-alive packets that were
	// echoed back to the server.
	KeepAliveReflectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcclient_keepalive_reflected_total",
		Help: "Inbound keep-alive packets echoed back to the server, by phase.",
	}, []string{"phase"})

	// DecodeErrorsTotal counts fatal codec errors encountered while
	// dispatching, by phase.
	DecodeErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcclient_decode_errors_total",
		Help: "Fatal decode errors encountered during dispatch, by phase.",
	}, []string{"phase"})
)
