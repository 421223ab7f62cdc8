package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatpush_events_total",
		Help: "Fan-out events by overall outcome.",
	}, []string{"status"})

	dispatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatpush_dispatches_total",
		Help: "Per-recipient dispatches by outcome.",
	}, []string{"status"})
)
