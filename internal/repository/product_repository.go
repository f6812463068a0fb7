package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Yusufakmalov/MY-MEAT/internal/domain"
)

// ErrProductNotFound is returned when no product has the requested code.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository reads the meat catalog.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByCode(ctx context.Context, code string) (domain.Product, error)
}

type productRepository struct {
	db      *sqlx.DB
	timeout time.Duration
	log     *slog.Logger
}

// NewProductRepository creates a new SQL-backed catalog repository.
func NewProductRepository(db *sqlx.DB, timeout time.Duration, log *slog.Logger) ProductRepository {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &productRepository{
		db:      db,
		timeout: timeout,
		log:     log,
	}
}

// List returns every product ordered by code. The meat table is owned by the catalog
// admin tooling, so only the documented columns are relied on.
func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	const query = `
		SELECT code, name, price, image, amount
		FROM meat
		ORDER BY code
	`

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		if r.log != nil {
			r.log.Error("failed to list products", slog.Any("error", err))
		}
		return nil, fmt.Errorf("select products: %w", err)
	}

	products := make([]domain.Product, len(rows))
	for i, row := range rows {
		products[i] = row.toDomain()
	}
	return products, nil
}

// FindByCode returns the product with the given code or ErrProductNotFound.
func (r *productRepository) FindByCode(ctx context.Context, code string) (domain.Product, error) {
	const query = `
		SELECT code, name, price, image, amount
		FROM meat
		WHERE code = $1
	`

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var row productRow
	if err := r.db.GetContext(ctx, &row, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, ErrProductNotFound
		}
		if r.log != nil {
			r.log.Error("failed to fetch product", slog.String("code", code), slog.Any("error", err))
		}
		return domain.Product{}, fmt.Errorf("select product by code: %w", err)
	}

	return row.toDomain(), nil
}

type productRow struct {
	Code   string         `db:"code"`
	Name   string         `db:"name"`
	Price  float64        `db:"price"`
	Image  sql.NullString `db:"image"`
	Amount string         `db:"amount"`
}

func (r productRow) toDomain() domain.Product {
	return domain.Product{
		Code:   r.Code,
		Name:   r.Name,
		Price:  r.Price,
		Image:  r.Image.String,
		Amount: r.Amount,
	}
}
