package entitlement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/vtv-streaming/internal/lib/password"
	"github.com/magabrotheeeer/vtv-streaming/internal/models"
)

// AdminID — идентификатор единственного аккаунта администратора.
const AdminID = "admin"

// SeedOptions задаёт начальные данные.
type SeedOptions struct {
	AdminEmail string
	AdminPIN   string
	// DemoAccounts добавляет три демонстрационных клиента:
	// активный, истекший и ожидающий подтверждения.
	DemoAccounts bool
}

type demoAccount struct {
	id, email, name, phone string
	status                 models.Status
	plan                   models.Plan
	expiresIn              time.Duration
}

const demoPassword = "123"

var demoAccounts = []demoAccount{
	{id: "user-active", email: "client@vtv.com", name: "Client Fidèle", phone: "+24100000001",
		status: models.StatusActive, plan: models.PlanPremium, expiresIn: 15 * 24 * time.Hour},
	{id: "user-expired", email: "expired@vtv.com", name: "Client Expiré", phone: "+24100000002",
		status: models.StatusExpired, plan: models.PlanBasic, expiresIn: -5 * 24 * time.Hour},
	{id: "user-pending", email: "nouveau@vtv.com", name: "Nouveau Venu", phone: "+24100000003",
		status: models.StatusPending, plan: models.PlanStandard},
}

// Seed создаёт аккаунт администратора и, по желанию, демонстрационных клиентов.
// Вызывается один раз при старте на пустом хранилище.
func (m *Manager) Seed(ctx context.Context, opts SeedOptions) error {
	const op = "entitlement.Seed"

	if opts.AdminEmail == "" || opts.AdminPIN == "" {
		return fmt.Errorf("%s: admin credentials: %w", op, ErrMissingField)
	}

	now := m.now()
	hash, err := password.HashWithCost(opts.AdminPIN, m.hashCost)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	admin := models.Account{
		ID:           AdminID,
		Email:        opts.AdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Status:       models.StatusActive,
		CreatedAt:    now,
	}
	if err := m.repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !opts.DemoAccounts {
		return nil
	}

	demoHash, err := password.HashWithCost(demoPassword, m.hashCost)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, d := range demoAccounts {
		acc := models.Account{
			ID:           d.id,
			Email:        d.email,
			PasswordHash: demoHash,
			Phone:        d.phone,
			Name:         d.name,
			Role:         models.RoleClient,
			Status:       d.status,
			Subscription: &models.SubscriptionTerm{
				Plan:      d.plan,
				ExpiresAt: now.Add(d.expiresIn),
			},
			CreatedAt: now,
		}
		if err := m.repo.Create(ctx, acc); err != nil {
			return fmt.Errorf("%s: demo account %s: %w", op, d.email, err)
		}
	}

	m.log.Info("demo accounts seeded", slog.Int("count", len(demoAccounts)))
	return nil
}
