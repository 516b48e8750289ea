// Package entitlement управляет жизненным циклом учётных записей и
// вычисляет право аккаунта на просмотр контента.
//
// Manager владеет коллекцией аккаунтов через AccountRepository; все изменения
// статуса и условий подписки проходят только через его методы.
package entitlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/vtv-streaming/internal/lib/password"
	"github.com/magabrotheeeer/vtv-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/vtv-streaming/internal/metrics"
	"github.com/magabrotheeeer/vtv-streaming/internal/models"
	"github.com/magabrotheeeer/vtv-streaming/internal/storage"
)

// TermDays — срок подписки после подтверждения администратором.
const TermDays = 30

const defaultName = "Utilisateur"

// AccountRepository описывает хранилище аккаунтов.
type AccountRepository interface {
	// Create сохраняет аккаунт; storage.ErrEmailTaken, если email занят.
	Create(ctx context.Context, acc models.Account) error
	// Get возвращает аккаунт по ID; storage.ErrNotFound, если его нет.
	Get(ctx context.Context, id string) (*models.Account, error)
	// GetByEmail возвращает аккаунт по точному совпадению email.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// Update атомарно применяет fn к аккаунту.
	Update(ctx context.Context, id string, fn func(*models.Account) error) (*models.Account, error)
	// List возвращает все аккаунты в порядке создания.
	List(ctx context.Context) ([]*models.Account, error)
}

// EventPublisher отправляет события аккаунтов во внешнюю шину.
type EventPublisher interface {
	Publish(ctx context.Context, ev models.AccountEvent) error
}

// Manager реализует правила входа, регистрации, продления и решений администратора.
type Manager struct {
	repo     AccountRepository
	events   EventPublisher
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
	hashCost int
}

// Option настраивает Manager.
type Option func(*Manager)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithEvents включает публикацию событий аккаунтов.
func WithEvents(p EventPublisher) Option {
	return func(m *Manager) { m.events = p }
}

// WithIDGenerator подменяет генератор идентификаторов новых аккаунтов.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) { m.newID = gen }
}

// WithHashCost задаёт стоимость bcrypt для новых паролей.
func WithHashCost(cost int) Option {
	return func(m *Manager) { m.hashCost = cost }
}

// NewManager создаёт Manager поверх хранилища аккаунтов.
func NewManager(repo AccountRepository, log *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		repo:     repo,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
		hashCost: password.DefaultCost,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Authenticate проверяет email и пароль.
//
// Администратор входит при любом статусе. Заблокированный клиент получает
// ErrSuspended независимо от правильности пароля, ожидающий подтверждения —
// ErrAwaitingApproval. Клиенты со статусом ACTIVE и EXPIRED входят, даже если
// подписка истекла: им нужен доступ к продлению.
func (m *Manager) Authenticate(ctx context.Context, email, credential string) (*models.Account, error) {
	const op = "entitlement.Authenticate"

	acc, err := m.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			metrics.AuthAttempts.WithLabelValues("unknown_email").Inc()
			return nil, fmt.Errorf("%s: %w", op, ErrUnknownEmail)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !acc.IsAdmin() && acc.Status == models.StatusBanned {
		metrics.AuthAttempts.WithLabelValues("suspended").Inc()
		return nil, fmt.Errorf("%s: %w", op, ErrSuspended)
	}

	if err := password.Compare(acc.PasswordHash, credential); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			metrics.AuthAttempts.WithLabelValues("bad_credential").Inc()
			return nil, fmt.Errorf("%s: %w", op, ErrBadCredential)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !acc.IsAdmin() && acc.Status == models.StatusPending {
		metrics.AuthAttempts.WithLabelValues("awaiting_approval").Inc()
		return nil, fmt.Errorf("%s: %w", op, ErrAwaitingApproval)
	}

	metrics.AuthAttempts.WithLabelValues("ok").Inc()
	return acc, nil
}

// Register создаёт клиентский аккаунт в статусе PENDING.
// Подписка сразу помечена как истекшая: доступ появится после подтверждения.
func (m *Manager) Register(ctx context.Context, email, credential, phone string, plan models.Plan) (*models.Account, error) {
	const op = "entitlement.Register"

	if isBlank(email) || isBlank(credential) || isBlank(phone) || plan == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingField)
	}
	if !plan.Valid() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidPlan)
	}

	if _, err := m.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.HashWithCost(credential, m.hashCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := m.now()
	acc := models.Account{
		ID:           m.newID(),
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		Name:         defaultName,
		Role:         models.RoleClient,
		Status:       models.StatusPending,
		Subscription: &models.SubscriptionTerm{
			Plan:      plan,
			ExpiresAt: now,
		},
		CreatedAt: now,
	}
	if err := m.repo.Create(ctx, acc); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.log.Info("account registered", sl.AccountID(acc.ID), slog.String("plan", string(plan)))
	metrics.Registrations.WithLabelValues(string(plan)).Inc()
	m.publish(ctx, models.EventRegistered, &acc)
	return acc.Clone(), nil
}

// IsEntitled сообщает, есть ли у аккаунта действующая подписка прямо сейчас:
// статус ACTIVE и текущий момент раньше даты окончания. Результат не кешируется.
func (m *Manager) IsEntitled(acc *models.Account) bool {
	if acc == nil || acc.Status != models.StatusActive || acc.Subscription == nil {
		return false
	}
	return m.now().Before(acc.Subscription.ExpiresAt)
}

// HasAccess — единственное правило доступа к воспроизведению:
// администратор проходит всегда, остальные только с действующей подпиской.
func (m *Manager) HasAccess(acc *models.Account) bool {
	if acc == nil {
		return false
	}
	return acc.IsAdmin() || m.IsEntitled(acc)
}

// DaysRemaining возвращает число оставшихся дней с округлением вверх:
// любой неполный день считается целым. Для истекших дат возвращает 0.
func (m *Manager) DaysRemaining(expiresAt time.Time) int {
	left := expiresAt.Sub(m.now())
	if left <= 0 {
		return 0
	}
	const day = 24 * time.Hour
	days := left / day
	if left%day != 0 {
		days++
	}
	return int(days)
}

// RequestRenewal записывает желаемый тариф продления. Статус и текущая
// подписка не меняются; повторный вызов перезаписывает тариф.
func (m *Manager) RequestRenewal(ctx context.Context, accountID string, plan models.Plan) (*models.Account, error) {
	const op = "entitlement.RequestRenewal"

	if !plan.Valid() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidPlan)
	}

	acc, err := m.repo.Update(ctx, accountID, func(a *models.Account) error {
		if a.IsAdmin() {
			return ErrAdminAccount
		}
		if a.Status == models.StatusBanned {
			return ErrSuspended
		}
		p := plan
		a.PendingRenewalPlan = &p
		return nil
	})
	if err != nil {
		return nil, m.wrapAdminErr(op, err)
	}

	m.log.Info("renewal requested", sl.AccountID(acc.ID), slog.String("plan", string(plan)))
	metrics.RenewalRequests.WithLabelValues(string(plan)).Inc()
	m.publish(ctx, models.EventRenewalRequested, acc)
	return acc, nil
}

// ValidateApproval подтверждает регистрацию (isRenewal=false) или оплату
// продления (isRenewal=true). Аккаунт становится ACTIVE на TermDays дней
// от текущего момента, запрос продления очищается.
//
// Тариф: при продлении берётся запрошенный, если он есть, иначе сохраняется
// текущий (BASIC, если тарифа нет). Заблокированный аккаунт не меняется.
func (m *Manager) ValidateApproval(ctx context.Context, accountID string, isRenewal bool) (*models.Account, error) {
	const op = "entitlement.ValidateApproval"

	now := m.now()
	acc, err := m.repo.Update(ctx, accountID, func(a *models.Account) error {
		if a.IsAdmin() {
			return ErrAdminAccount
		}
		if a.Status == models.StatusBanned {
			return ErrAccountBanned
		}

		plan := models.PlanBasic
		if a.Subscription != nil && a.Subscription.Plan != "" {
			plan = a.Subscription.Plan
		}
		if isRenewal && a.PendingRenewalPlan != nil {
			plan = *a.PendingRenewalPlan
		}

		a.Status = models.StatusActive
		a.Subscription = &models.SubscriptionTerm{
			Plan:      plan,
			ExpiresAt: now.AddDate(0, 0, TermDays),
		}
		a.PendingRenewalPlan = nil
		return nil
	})
	if err != nil {
		return nil, m.wrapAdminErr(op, err)
	}

	evType, decision := models.EventValidated, "validated"
	if isRenewal {
		evType, decision = models.EventRenewed, "renewed"
	}
	m.log.Info("account approved",
		sl.AccountID(acc.ID),
		slog.Bool("renewal", isRenewal),
		slog.String("plan", string(acc.Subscription.Plan)),
		slog.Time("expires_at", acc.Subscription.ExpiresAt),
	)
	metrics.AccountDecisions.WithLabelValues(decision).Inc()
	m.publish(ctx, evType, acc)
	return acc, nil
}

// RejectAccount блокирует аккаунт. Из статуса BANNED выхода нет.
func (m *Manager) RejectAccount(ctx context.Context, accountID string) (*models.Account, error) {
	const op = "entitlement.RejectAccount"

	acc, err := m.repo.Update(ctx, accountID, func(a *models.Account) error {
		if a.IsAdmin() {
			return ErrAdminAccount
		}
		a.Status = models.StatusBanned
		return nil
	})
	if err != nil {
		return nil, m.wrapAdminErr(op, err)
	}

	m.log.Info("account rejected", sl.AccountID(acc.ID))
	metrics.AccountDecisions.WithLabelValues("rejected").Inc()
	m.publish(ctx, models.EventRejected, acc)
	return acc, nil
}

// Account возвращает аккаунт по идентификатору.
func (m *Manager) Account(ctx context.Context, accountID string) (*models.Account, error) {
	const op = "entitlement.Account"
	acc, err := m.repo.Get(ctx, accountID)
	if err != nil {
		return nil, m.wrapAdminErr(op, err)
	}
	return acc, nil
}

// PendingSignups возвращает клиентов, ожидающих подтверждения регистрации.
func (m *Manager) PendingSignups(ctx context.Context) ([]*models.Account, error) {
	return m.filter(ctx, "entitlement.PendingSignups", func(a *models.Account) bool {
		return !a.IsAdmin() && a.Status == models.StatusPending
	})
}

// RenewalRequests возвращает клиентов с неподтверждённым запросом продления.
func (m *Manager) RenewalRequests(ctx context.Context) ([]*models.Account, error) {
	return m.filter(ctx, "entitlement.RenewalRequests", func(a *models.Account) bool {
		return !a.IsAdmin() && a.PendingRenewalPlan != nil
	})
}

// Clients возвращает все клиентские аккаунты.
func (m *Manager) Clients(ctx context.Context) ([]*models.Account, error) {
	return m.filter(ctx, "entitlement.Clients", func(a *models.Account) bool {
		return a.Role == models.RoleClient
	})
}

func (m *Manager) filter(ctx context.Context, op string, keep func(*models.Account) bool) ([]*models.Account, error) {
	all, err := m.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result := make([]*models.Account, 0, len(all))
	for _, a := range all {
		if keep(a) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *Manager) wrapAdminErr(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrAccountNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (m *Manager) publish(ctx context.Context, t models.EventType, acc *models.Account) {
	if m.events == nil {
		return
	}
	if err := m.events.Publish(ctx, models.NewAccountEvent(t, acc, m.now())); err != nil {
		m.log.Warn("failed to publish account event",
			sl.AccountID(acc.ID),
			slog.String("type", string(t)),
			sl.Err(err),
		)
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
