package shoppinglist

import "context"

type Repository interface {
	Create(ctx context.Context, l *List) (*List, error)
	Update(ctx context.Context, l *List) (*List, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*List, error)
	List(ctx context.Context) ([]*List, error)
}
