package match

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lifecycleCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spaceteam",
		Subsystem: "match",
		Name:      "lifecycle",
		Help:      "Counts match lifecycle transitions",
	}, []string{"event"})

	instructionsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spaceteam",
		Subsystem: "match",
		Name:      "instructions",
		Help:      "Counts instruction outcomes and useless control actions",
	}, []string{"outcome"})

	specialsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spaceteam",
		Subsystem: "match",
		Name:      "specials_cleared",
		Help:      "Counts special events cleared by the whole crew",
	}, []string{"kind"})

	levelsReached = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "spaceteam",
		Subsystem: "match",
		Name:      "levels_reached",
		Help:      "Level a match was on when it ended in a game over",
		Buckets:   prometheus.LinearBuckets(0, 1, 15),
	})
)
