package models

import "time"

// EventType — тип события жизненного цикла аккаунта.
type EventType string

const (
	EventRegistered       EventType = "registered"
	EventValidated        EventType = "validated"
	EventRenewalRequested EventType = "renewal_requested"
	EventRenewed          EventType = "renewed"
	EventRejected         EventType = "rejected"
)

// AccountEvent публикуется в брокер после каждого успешного изменения аккаунта.
type AccountEvent struct {
	Type       EventType  `json:"type"`
	AccountID  string     `json:"account_id"`
	Email      string     `json:"email"`
	Status     Status     `json:"status"`
	Plan       Plan       `json:"plan,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewAccountEvent собирает событие из текущего состояния аккаунта.
func NewAccountEvent(t EventType, acc *Account, at time.Time) AccountEvent {
	ev := AccountEvent{
		Type:       t,
		AccountID:  acc.ID,
		Email:      acc.Email,
		Status:     acc.Status,
		OccurredAt: at,
	}
	switch {
	case t == EventRenewalRequested && acc.PendingRenewalPlan != nil:
		ev.Plan = *acc.PendingRenewalPlan
	case acc.Subscription != nil:
		ev.Plan = acc.Subscription.Plan
	}
	if acc.Subscription != nil {
		exp := acc.Subscription.ExpiresAt
		ev.ExpiresAt = &exp
	}
	return ev
}
