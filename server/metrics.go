package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "spaceteam",
		Subsystem: "server",
		Name:      "sessions",
		Help:      "Number of connected websocket sessions",
	})

	framesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spaceteam",
		Subsystem: "server",
		Name:      "frames",
		Help:      "Counts outbound frames by delivery result and malformed inbound frames",
	}, []string{"result"})

	eventsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spaceteam",
		Subsystem: "server",
		Name:      "events",
		Help:      "Counts inbound events per event name and outcome",
	}, []string{"event", "outcome"})
)
