package postgres

import (
	"context"
	"database/sql"
	"errors"

	domlist "example.com/shopping-list/internal/domain/shoppinglist"
)

type ShoppingListRepository struct {
	db *sql.DB
}

func NewShoppingListRepository(db *sql.DB) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

func (r *ShoppingListRepository) Create(ctx context.Context, l *domlist.List) (*domlist.List, error) {
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO shopping_lists (name, notes)
        VALUES ($1, $2)
        RETURNING id
    `, l.Name, l.Notes).Scan(&l.ID)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *ShoppingListRepository) Update(ctx context.Context, l *domlist.List) (*domlist.List, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE shopping_lists SET name = $1, notes = $2
        WHERE id = $3
    `, l.Name, l.Notes, l.ID)
	if err != nil {
		return nil, err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, domlist.ErrListNotFound
	}
	return l, nil
}

func (r *ShoppingListRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shopping_lists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domlist.ErrListNotFound
	}
	return nil
}

func (r *ShoppingListRepository) GetByID(ctx context.Context, id int64) (*domlist.List, error) {
	var l domlist.List
	err := r.db.QueryRowContext(ctx, `
        SELECT id, name, notes
        FROM shopping_lists
        WHERE id = $1
    `, id).Scan(&l.ID, &l.Name, &l.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domlist.ErrListNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *ShoppingListRepository) List(ctx context.Context) ([]*domlist.List, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, notes FROM shopping_lists ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*domlist.List
	for rows.Next() {
		var l domlist.List
		if err := rows.Scan(&l.ID, &l.Name, &l.Notes); err != nil {
			return nil, err
		}
		lists = append(lists, &l)
	}
	return lists, rows.Err()
}
