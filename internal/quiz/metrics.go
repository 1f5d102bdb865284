package quiz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeQuestion = "question"
	outcomeGameOver = "game_over"
)

var turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "trivia",
	Subsystem: "quiz",
	Name:      "turns_total",
	Help:      "Quiz turns served, by outcome.",
}, []string{"outcome"})
