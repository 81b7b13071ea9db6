package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Redemption outcomes recorded on the public form path.
const (
	OutcomeSuccess      = "success"
	OutcomeNotFound     = "not_found"
	OutcomeInactive     = "inactive"
	OutcomeExpired      = "expired"
	OutcomeLimitReached = "limit_reached"
)

var (
	// RedemptionsTotal counts redemption attempts by outcome.
	RedemptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discipled_token_redemptions_total",
		Help: "Form token redemption attempts by outcome.",
	}, []string{"outcome"})

	// SubmissionsTotal counts stored status-update submissions.
	SubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discipled_submissions_total",
		Help: "Status-update submissions stored.",
	})

	// TokensIssuedTotal counts tokens created by operators.
	TokensIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discipled_tokens_issued_total",
		Help: "Form tokens issued by operators.",
	})
)
