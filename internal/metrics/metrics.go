// Package metrics объявляет счётчики Prometheus сервиса.
// Счётчики регистрируются в реестре по умолчанию и отдаются через /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vtv"

var (
	// AuthAttempts — попытки входа по исходу (ok, unknown_email, bad_credential, awaiting_approval, suspended).
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	// Registrations — успешные регистрации по выбранному тарифу.
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Successful signups by chosen plan.",
	}, []string{"plan"})

	// AccountDecisions — решения администратора (validated, renewed, rejected).
	AccountDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_decisions_total",
		Help:      "Admin decisions on accounts.",
	}, []string{"decision"})

	// RenewalRequests — запросы продления по тарифу.
	RenewalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "renewal_requests_total",
		Help:      "Client renewal requests by plan.",
	}, []string{"plan"})

	// Playbacks — запросы воспроизведения (allowed, denied).
	Playbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "playbacks_total",
		Help:      "Playback authorization results.",
	}, []string{"result"})

	// ImageEdits — вызовы внешнего редактора изображений по результату.
	ImageEdits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_edits_total",
		Help:      "External image edit calls by result.",
	}, []string{"result"})
)
