// Package memory реализует хранилища в памяти процесса: аккаунты и каталог.
// Состояние живёт, пока жив процесс; наружу отдаются только копии записей.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/magabrotheeeer/vtv-streaming/internal/models"
	"github.com/magabrotheeeer/vtv-streaming/internal/storage"
)

// Accounts хранит учётные записи в порядке создания с индексом по email.
type Accounts struct {
	mu      sync.RWMutex
	byID    map[string]*models.Account
	byEmail map[string]string
	order   []string
}

// NewAccounts создаёт пустое хранилище аккаунтов.
func NewAccounts() *Accounts {
	return &Accounts{
		byID:    make(map[string]*models.Account),
		byEmail: make(map[string]string),
	}
}

// Create сохраняет новый аккаунт. Проверка уникальности email и вставка атомарны.
func (s *Accounts) Create(ctx context.Context, acc models.Account) error {
	const op = "storage.memory.Accounts.Create"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[acc.Email]; ok {
		return fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
	}
	if _, ok := s.byID[acc.ID]; ok {
		return fmt.Errorf("%s: %w", op, storage.ErrDuplicateID)
	}
	s.byID[acc.ID] = acc.Clone()
	s.byEmail[acc.Email] = acc.ID
	s.order = append(s.order, acc.ID)
	return nil
}

// Get возвращает аккаунт по идентификатору.
func (s *Accounts) Get(ctx context.Context, id string) (*models.Account, error) {
	const op = "storage.memory.Accounts.Get"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return acc.Clone(), nil
}

// GetByEmail возвращает аккаунт по точному совпадению email.
func (s *Accounts) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.memory.Accounts.GetByEmail"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return s.byID[id].Clone(), nil
}

// Update применяет fn к копии аккаунта и сохраняет результат, только если fn
// вернула nil. При ошибке хранилище не меняется.
// Email и роль, изменённые внутри fn, игнорируются.
func (s *Accounts) Update(ctx context.Context, id string, fn func(*models.Account) error) (*models.Account, error) {
	const op = "storage.memory.Accounts.Update"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	next := cur.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.ID = cur.ID
	next.Email = cur.Email
	next.Role = cur.Role
	s.byID[id] = next
	return next.Clone(), nil
}

// List возвращает копии всех аккаунтов в порядке создания.
func (s *Accounts) List(ctx context.Context) ([]*models.Account, error) {
	const op = "storage.memory.Accounts.List"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Account, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.byID[id].Clone())
	}
	return result, nil
}
