package postgres

import (
	"context"
	"database/sql"
	"errors"

	domproduct "example.com/shopping-list/internal/domain/product"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO products (list_id, name, quantity, price, store, category, notes, checked)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `, p.ListID, p.Name, p.Quantity, nullPrice(p.Price), p.Store, p.Category, p.Notes, p.Checked).Scan(&p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE products
        SET list_id = $1, name = $2, quantity = $3, price = $4, store = $5, category = $6, notes = $7, checked = $8
        WHERE id = $9
    `, p.ListID, p.Name, p.Quantity, nullPrice(p.Price), p.Store, p.Category, p.Notes, p.Checked, p.ID)
	if err != nil {
		return nil, err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, domproduct.ErrProductNotFound
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, list_id, name, quantity, price, store, category, notes, checked
        FROM products WHERE id = $1
    `, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domproduct.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, list_id, name, quantity, price, store, category, notes, checked
        FROM products
        ORDER BY id ASC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domproduct.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProduct(s interface{ Scan(dest ...any) error }) (*domproduct.Product, error) {
	var (
		p     domproduct.Product
		price sql.NullFloat64
	)
	if err := s.Scan(&p.ID, &p.ListID, &p.Name, &p.Quantity, &price, &p.Store, &p.Category, &p.Notes, &p.Checked); err != nil {
		return nil, err
	}
	if price.Valid {
		p.Price = &price.Float64
	}
	return &p, nil
}

func nullPrice(price *float64) sql.NullFloat64 {
	if price == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *price, Valid: true}
}
