package reader

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// strategyAttempts counts strategy executions, labeled by strategy name.
	strategyAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readpage_strategy_attempts_total",
		Help: "The total number of retrieval strategy attempts.",
	}, []string{"strategy"})
	// strategySuccesses counts strategy executions yielding usable content.
	strategySuccesses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readpage_strategy_successes_total",
		Help: "The total number of strategy attempts that produced content.",
	}, []string{"strategy"})
	// cacheHits counts reads served from the result cache.
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readpage_cache_hits_total",
		Help: "The total number of reads served from the in-memory cache.",
	})
	// readsExhausted counts reads where every strategy came back absent.
	readsExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readpage_reads_exhausted_total",
		Help: "The total number of reads that exhausted all strategies.",
	})
)
