package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	telebot "gopkg.in/telebot.v3"

	"github.com/Yusufakmalov/MY-MEAT/internal/domain"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateIfAbsent(ctx context.Context, u *domain.User) (bool, error) {
	args := m.Called(ctx, u)
	return args.Bool(0), args.Error(1)
}

func newTestService(repo *mockUserRepository) *Service {
	s := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestService_Register(t *testing.T) {
	sender := &telebot.User{ID: 42, FirstName: "Ali", LastName: "Valiyev", Username: "ali"}

	t.Run("maps sender fields", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.TelegramID == 42 &&
				u.FirstName == "Ali" &&
				u.LastName == "Valiyev" &&
				u.Username == "ali" &&
				u.IsSubscribed &&
				u.CreatedAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
		})).Return(true, nil).Once()

		newTestService(repo).Register(context.Background(), sender, true)
		repo.AssertExpectations(t)
	})

	t.Run("repeat registration is a no-op", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(true, nil).Once()
		repo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, nil).Once()

		s := newTestService(repo)
		s.Register(context.Background(), sender, false)
		s.Register(context.Background(), sender, true)

		repo.AssertNumberOfCalls(t, "CreateIfAbsent", 2)
	})

	t.Run("store failure is swallowed", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, errors.New("connection refused")).Once()

		assert.NotPanics(t, func() {
			newTestService(repo).Register(context.Background(), sender, true)
		})
		repo.AssertExpectations(t)
	})

	t.Run("nil sender", func(t *testing.T) {
		repo := new(mockUserRepository)

		newTestService(repo).Register(context.Background(), nil, true)
		repo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
	})
}
