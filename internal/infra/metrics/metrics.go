package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScrapesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitemint_scrapes_total",
		Help: "Extraction pipeline runs by outcome.",
	}, []string{"outcome"})

	SavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitemint_saves_total",
		Help: "Site configuration saves by outcome.",
	}, []string{"outcome"})

	DeploysTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitemint_deploys_total",
		Help: "Deployment trigger runs by outcome.",
	}, []string{"outcome"})

	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitemint_renders_total",
		Help: "Public tenant page renders by outcome.",
	}, []string{"outcome"})
)

const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
	OutcomeRefused  = "refused"
)
