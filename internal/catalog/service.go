// Package catalog exposes the product list to the menu.
package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Yusufakmalov/MY-MEAT/internal/domain"
	apperrors "github.com/Yusufakmalov/MY-MEAT/internal/errors"
	"github.com/Yusufakmalov/MY-MEAT/internal/repository"
	"github.com/Yusufakmalov/MY-MEAT/pkg/metrics"
)

// Service reads products and degrades to an empty catalog when the store fails.
type Service struct {
	repo repository.ProductRepository
	log  *slog.Logger
}

// NewService constructs a new Service instance.
func NewService(repo repository.ProductRepository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, log: log}
}

// Products returns every product, or an empty slice if the store is unavailable.
func (s *Service) Products(ctx context.Context) []domain.Product {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("catalog unavailable", slog.Any("error", apperrors.NewDatabaseError(err)))
		return []domain.Product{}
	}

	metrics.SetCatalogProducts(len(products))
	return products
}

// Find returns the product with code. Store failures are reported as not found.
func (s *Service) Find(ctx context.Context, code string) (domain.Product, bool) {
	product, err := s.repo.FindByCode(ctx, code)
	if err == nil {
		return product, true
	}

	if !errors.Is(err, repository.ErrProductNotFound) {
		s.log.Error("product lookup failed",
			slog.String("code", code),
			slog.Any("error", apperrors.NewDatabaseError(err)),
		)
	}
	return domain.Product{}, false
}
