// Package metrics holds Prometheus instruments that are used across the
// router.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveDomains = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_domains",
			Help: "Number of domain matches currently cached in memory.",
		})

	DomainMatchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "domain_match_total",
			Help: "Cumulative number of hosts successfully matched to a domain.",
		})

	DomainMatchErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "domain_match_errors_total",
			Help: "Cumulative number of domain match failures.",
		})

	DomainEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "domain_evict_total",
			Help: "Cumulative number of domain matches evicted from the cache.",
		})

	RequestsPreparedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "requests_prepared_total",
			Help: "Cumulative number of requests run through the preparation pipeline.",
		})

	RequestsNotFoundTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "requests_not_found_total",
			Help: "Cumulative number of requests frozen with the 404 flag set.",
		})

	RequestsRedirectTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "requests_redirect_total",
			Help: "Cumulative number of requests frozen with redirect intent.",
		})

	InternalRedirectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "internal_redirects_total",
			Help: "Cumulative number of internal-redirect hops followed during preparation.",
		})
)

func init() {
	prometheus.MustRegister(
		ActiveDomains,
		DomainMatchTotal,
		DomainMatchErrorsTotal,
		DomainEvictTotal,
		RequestsPreparedTotal,
		RequestsNotFoundTotal,
		RequestsRedirectTotal,
		InternalRedirectsTotal,
	)
}
