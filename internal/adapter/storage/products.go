package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/domain"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/port"
)

var _ port.ProductsRepository = (*ProductsRepository)(nil)

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

func (r ProductsRepository) List(
	ctx context.Context, q domain.ProductQuery,
) (domain.ProductPage, error) {
	const op = "ProductsRepository.List"

	if err := ctx.Err(); err != nil {
		return domain.ProductPage{}, fmt.Errorf("%s: %w", op, err)
	}

	where := `
		WHERE ($1 = '' OR product_name ILIKE '%' || $1 || '%')
		AND ($2 = '' OR category = $2)`

	var total int64
	err := r.sqldb.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products`+where,
		q.Search, q.Category,
	).Scan(&total)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("%s: failed to count: %w", op, err)
	}

	query := `
		SELECT id, product_name, category, description,
			price, stock_quantity, supplier
		FROM products` + where + `
		ORDER BY id ASC
		LIMIT $3 OFFSET $4;`

	rows, err := r.sqldb.QueryContext(ctx,
		query, q.Search, q.Category, q.Size, q.Page*q.Size,
	)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("%s: failed to query: %w", op, err)
	}
	defer rows.Close()

	var content []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID, &p.ProductName, &p.Category, &p.Description,
			&p.Price, &p.StockQuantity, &p.Supplier,
		)
		if err != nil {
			return domain.ProductPage{}, fmt.Errorf("%s: failed to scan: %w", op, err)
		}
		content = append(content, p)
	}
	if err := rows.Err(); err != nil {
		return domain.ProductPage{}, fmt.Errorf("%s: %w", op, err)
	}

	totalPages := int(total) / q.Size
	if int(total)%q.Size != 0 {
		totalPages++
	}

	return domain.ProductPage{
		Content:       content,
		TotalPages:    totalPages,
		TotalElements: total,
		Number:        q.Page,
		Size:          q.Size,
	}, nil
}

func (r ProductsRepository) Get(
	ctx context.Context, id int64,
) (domain.Product, error) {
	const op = "ProductsRepository.Get"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT id, product_name, category, description,
			price, stock_quantity, supplier
		FROM products WHERE id = $1;`

	var p domain.Product
	err := r.sqldb.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.ProductName, &p.Category, &p.Description,
		&p.Price, &p.StockQuantity, &p.Supplier,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) Create(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.Create"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO products (
			product_name, category, description,
			price, stock_quantity, supplier
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;`

	err := r.sqldb.QueryRowContext(ctx, query,
		p.ProductName, p.Category, p.Description,
		p.Price, p.StockQuantity, p.Supplier,
	).Scan(&p.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: failed to insert: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) Update(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.Update"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE products SET
			product_name = $2,
			category = $3,
			description = $4,
			price = $5,
			stock_quantity = $6,
			supplier = $7
		WHERE id = $1;`

	res, err := r.sqldb.ExecContext(ctx, query,
		p.ID, p.ProductName, p.Category, p.Description,
		p.Price, p.StockQuantity, p.Supplier,
	)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: failed to update: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return p, nil
}

func (r ProductsRepository) Delete(ctx context.Context, id int64) error {
	const op = "ProductsRepository.Delete"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.sqldb.ExecContext(ctx,
		`DELETE FROM products WHERE id = $1;`, id,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to delete: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func (r ProductsRepository) Count(
	ctx context.Context, category string,
) (int64, error) {
	const op = "ProductsRepository.Count"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var n int64
	err := r.sqldb.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE ($1 = '' OR category = $1);`,
		category,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to count: %w", op, err)
	}
	return n, nil
}
