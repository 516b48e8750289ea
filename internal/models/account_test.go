package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_CloneIsDeep(t *testing.T) {
	pending := PlanPremium
	orig := &Account{
		ID:                 "a1",
		Email:              "client@vtv.com",
		Role:               RoleClient,
		Status:             StatusActive,
		Subscription:       &SubscriptionTerm{Plan: PlanBasic, ExpiresAt: time.Now()},
		PendingRenewalPlan: &pending,
	}

	c := orig.Clone()
	require.NotNil(t, c)
	c.Subscription.Plan = PlanStandard
	*c.PendingRenewalPlan = PlanBasic

	assert.Equal(t, PlanBasic, orig.Subscription.Plan)
	assert.Equal(t, PlanPremium, *orig.PendingRenewalPlan)
	assert.Nil(t, (*Account)(nil).Clone())
}

func TestPlan_Valid(t *testing.T) {
	tests := []struct {
		plan Plan
		want bool
	}{
		{PlanBasic, true},
		{PlanStandard, true},
		{PlanPremium, true},
		{Plan("GOLD"), false},
		{Plan(""), false},
		{Plan("basic"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.plan.Valid())
		})
	}
}

func TestPlanPrices(t *testing.T) {
	prices := PlanPrices()
	require.Len(t, prices, 3)
	assert.Equal(t, 5000, prices[0].Price)
	assert.Equal(t, 10500, prices[1].Price)
	assert.Equal(t, 15000, prices[2].Price)
	assert.Equal(t, "Standard", PlanStandard.Label())

	prices[0].Price = 1
	assert.Equal(t, 5000, PlanPrices()[0].Price)
}

func TestNewAccountEvent_UsesPendingPlanForRenewalRequest(t *testing.T) {
	pending := PlanPremium
	exp := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	acc := &Account{
		ID:                 "a1",
		Email:              "client@vtv.com",
		Status:             StatusActive,
		Subscription:       &SubscriptionTerm{Plan: PlanBasic, ExpiresAt: exp},
		PendingRenewalPlan: &pending,
	}

	ev := NewAccountEvent(EventRenewalRequested, acc, exp)
	assert.Equal(t, PlanPremium, ev.Plan)
	require.NotNil(t, ev.ExpiresAt)
	assert.Equal(t, exp, *ev.ExpiresAt)

	ev = NewAccountEvent(EventValidated, acc, exp)
	assert.Equal(t, PlanBasic, ev.Plan)
}
