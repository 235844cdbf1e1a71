package content

import (
	"context"
	"fmt"

	contentRepo "clinicdesk/database/repository/content"
)

// ErrNotFound is returned when a content record does not exist.
var ErrNotFound = contentRepo.ErrNotFound

// Collection serves CRUD for one content type.
type Collection[T any] struct {
	Name string
	repo contentRepo.ContentRepository[T]
}

func NewCollection[T any](name string, repo contentRepo.ContentRepository[T]) *Collection[T] {
	return &Collection[T]{Name: name, repo: repo}
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	items, err := c.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("List %s: %w", c.Name, err)
	}
	return items, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	item, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("Get %s: %w", c.Name, err)
	}
	return item, nil
}

func (c *Collection[T]) Create(ctx context.Context, item T) (*T, error) {
	id, err := c.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("Create %s: %w", c.Name, err)
	}
	return c.Get(ctx, id)
}

func (c *Collection[T]) Update(ctx context.Context, id string, item T) (*T, error) {
	if err := c.repo.Update(ctx, id, item); err != nil {
		return nil, fmt.Errorf("Update %s: %w", c.Name, err)
	}
	return c.Get(ctx, id)
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("Delete %s: %w", c.Name, err)
	}
	return nil
}
