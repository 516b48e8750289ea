// Package models содержит доменные структуры сервиса: учётные записи,
// тарифы, элементы каталога и события жизненного цикла аккаунта.
package models

import "time"

// Role определяет роль учётной записи.
type Role string

const (
	// RoleAdmin — администратор, проходит мимо проверок подписки.
	RoleAdmin Role = "ADMIN"
	// RoleClient — обычный клиент сервиса.
	RoleClient Role = "CLIENT"
)

// Status определяет состояние учётной записи.
type Status string

const (
	// StatusPending — аккаунт ожидает подтверждения администратором.
	StatusPending Status = "PENDING"
	// StatusActive — аккаунт подтверждён.
	StatusActive Status = "ACTIVE"
	// StatusExpired — аккаунт с истёкшей подпиской (встречается только в начальных данных).
	StatusExpired Status = "EXPIRED"
	// StatusBanned — аккаунт заблокирован, конечное состояние.
	StatusBanned Status = "BANNED"
)

// SubscriptionTerm описывает текущий тариф и дату окончания подписки.
type SubscriptionTerm struct {
	Plan      Plan      `json:"plan"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Account представляет учётную запись пользователя.
type Account struct {
	ID                 string            `json:"id"`
	Email              string            `json:"email"`
	PasswordHash       string            `json:"-"`
	Phone              string            `json:"phone,omitempty"`
	Name               string            `json:"name,omitempty"`
	Role               Role              `json:"role"`
	Status             Status            `json:"status"`
	Subscription       *SubscriptionTerm `json:"subscription,omitempty"`
	PendingRenewalPlan *Plan             `json:"pending_renewal_plan,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

// IsAdmin сообщает, является ли аккаунт администратором.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Clone возвращает глубокую копию аккаунта.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.Subscription != nil {
		term := *a.Subscription
		c.Subscription = &term
	}
	if a.PendingRenewalPlan != nil {
		plan := *a.PendingRenewalPlan
		c.PendingRenewalPlan = &plan
	}
	return &c
}
