package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/magabrotheeeer/vtv-streaming/internal/models"
	"github.com/magabrotheeeer/vtv-streaming/internal/storage"
)

// Contents хранит каталог; новые элементы идут первыми.
type Contents struct {
	mu    sync.RWMutex
	items []*models.ContentItem
}

// NewContents создаёт каталог с начальными элементами в заданном порядке.
func NewContents(initial ...models.ContentItem) *Contents {
	c := &Contents{}
	for i := range initial {
		c.items = append(c.items, initial[i].Clone())
	}
	return c
}

// Add публикует элемент в начало каталога.
func (c *Contents) Add(ctx context.Context, item models.ContentItem) error {
	const op = "storage.memory.Contents.Add"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range c.items {
		if it.ID == item.ID {
			return fmt.Errorf("%s: %w", op, storage.ErrDuplicateID)
		}
	}
	c.items = append([]*models.ContentItem{item.Clone()}, c.items...)
	return nil
}

// Get возвращает элемент каталога по идентификатору.
func (c *Contents) Get(ctx context.Context, id string) (*models.ContentItem, error) {
	const op = "storage.memory.Contents.Get"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, it := range c.items {
		if it.ID == id {
			return it.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

// List возвращает копию каталога.
func (c *Contents) List(ctx context.Context) ([]*models.ContentItem, error) {
	const op = "storage.memory.Contents.List"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*models.ContentItem, 0, len(c.items))
	for _, it := range c.items {
		result = append(result, it.Clone())
	}
	return result, nil
}
