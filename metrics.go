package rolecreds

import (
	multierror "github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
)

// Results recorded on role_credentials_refresh_total.
const (
	refreshSuccess    = "success"
	refreshFailure    = "failure"
	refreshUnresolved = "unresolved"
)

type metrics struct {
	refreshes *prometheus.CounterVec
	expiry    prometheus.Gauge
}

func newMetrics() *metrics {
	return &metrics{
		refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "role_credentials_refresh_total",
				Help: "Role assumption attempts by result.",
			},
			[]string{"result"},
		),
		expiry: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "role_credentials_expiry_timestamp_seconds",
				Help: "Expiry of the cached role credentials as a Unix timestamp.",
			},
		),
	}
}

func (m *metrics) register(reg prometheus.Registerer) (errs error) {
	for _, c := range []prometheus.Collector{m.refreshes, m.expiry} {
		if err := reg.Register(c); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}
