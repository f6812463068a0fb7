package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yusufakmalov/MY-MEAT/internal/domain"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// Temp tables live per connection.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		`CREATE TEMP TABLE users (
			id BIGSERIAL PRIMARY KEY,
			tg_id BIGINT NOT NULL UNIQUE,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			username TEXT NOT NULL DEFAULT '',
			is_subscribed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TEMP TABLE meat (
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			price NUMERIC(14, 2) NOT NULL,
			image TEXT,
			amount TEXT NOT NULL DEFAULT 'kg'
		)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	return db
}

func TestUserRepository_CreateIfAbsent(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db, time.Second, nil)
	ctx := context.Background()

	first := &domain.User{TelegramID: 42, FirstName: "Ali", Username: "ali", IsSubscribed: true, CreatedAt: time.Now().UTC()}
	inserted, err := repo.CreateIfAbsent(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)

	second := &domain.User{TelegramID: 42, FirstName: "Vali", Username: "vali", CreatedAt: time.Now().UTC()}
	inserted, err = repo.CreateIfAbsent(ctx, second)
	require.NoError(t, err)
	assert.False(t, inserted)

	var stored struct {
		FirstName    string `db:"first_name"`
		IsSubscribed bool   `db:"is_subscribed"`
		Count        int    `db:"count"`
	}
	require.NoError(t, db.Get(&stored, `SELECT first_name, is_subscribed, COUNT(*) OVER () AS count FROM users WHERE tg_id = 42`))
	assert.Equal(t, "Ali", stored.FirstName)
	assert.True(t, stored.IsSubscribed)
	assert.Equal(t, 1, stored.Count)
}

func TestProductRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewProductRepository(db, time.Second, nil)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO meat (code, name, price, image, amount) VALUES
		('lamb', 'Qo''y', 120000.50, NULL, 'kg'),
		('beef', 'Mol', 98000, 'images/beef.jpg', 'kg')`)
	require.NoError(t, err)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, domain.Product{Code: "beef", Name: "Mol", Price: 98000, Image: "images/beef.jpg", Amount: "kg"}, products[0])
	assert.Equal(t, "", products[1].Image)
	assert.InDelta(t, 120000.5, products[1].Price, 0.001)

	lamb, err := repo.FindByCode(ctx, "lamb")
	require.NoError(t, err)
	assert.Equal(t, "Qo'y", lamb.Name)

	_, err = repo.FindByCode(ctx, "pork")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
