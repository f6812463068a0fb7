package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Yusufakmalov/MY-MEAT/internal/domain"
	"github.com/Yusufakmalov/MY-MEAT/internal/repository"
)

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Error(1)
}

func (m *mockProductRepository) FindByCode(ctx context.Context, code string) (domain.Product, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.Product), args.Error(1)
}

func newTestService(repo repository.ProductRepository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_Products(t *testing.T) {
	beef := domain.Product{Code: "beef", Name: "Mol", Price: 98000, Amount: "kg"}

	t.Run("returns store rows", func(t *testing.T) {
		repo := new(mockProductRepository)
		repo.On("List", mock.Anything).Return([]domain.Product{beef}, nil).Once()

		assert.Equal(t, []domain.Product{beef}, newTestService(repo).Products(context.Background()))
		repo.AssertExpectations(t)
	})

	t.Run("store failure degrades to empty", func(t *testing.T) {
		repo := new(mockProductRepository)
		repo.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()

		products := newTestService(repo).Products(context.Background())
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})
}

func TestService_Find(t *testing.T) {
	beef := domain.Product{Code: "beef", Name: "Mol", Price: 98000, Amount: "kg"}

	repo := new(mockProductRepository)
	repo.On("FindByCode", mock.Anything, "beef").Return(beef, nil)
	repo.On("FindByCode", mock.Anything, "pork").Return(domain.Product{}, repository.ErrProductNotFound)
	repo.On("FindByCode", mock.Anything, "lamb").Return(domain.Product{}, errors.New("timeout"))

	s := newTestService(repo)

	product, ok := s.Find(context.Background(), "beef")
	assert.True(t, ok)
	assert.Equal(t, beef, product)

	_, ok = s.Find(context.Background(), "pork")
	assert.False(t, ok)

	_, ok = s.Find(context.Background(), "lamb")
	assert.False(t, ok)
}
