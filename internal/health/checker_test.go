package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/telebot.v3"
)

type pinger struct {
	err error
}

func (p pinger) PingContext(context.Context) error { return p.err }

func TestChecker_Check(t *testing.T) {
	c := NewChecker(nil)
	c.AddCheck("database", NewDBChecker(pinger{}))
	c.AddCheck("redis", CheckFunc(func(context.Context) error { return errors.New("connection refused") }))
	c.AddCheck("", NewDBChecker(pinger{}))
	c.AddCheck("ignored", nil)

	results, healthy := c.Check(context.Background())

	assert.False(t, healthy)
	assert.Equal(t, map[string]string{
		"database": StatusOK,
		"redis":    "connection refused",
	}, results)
}

func TestChecker_Empty(t *testing.T) {
	results, healthy := NewChecker(nil).Check(context.Background())

	assert.True(t, healthy)
	assert.Empty(t, results)
}

func TestDBChecker(t *testing.T) {
	assert.NoError(t, NewDBChecker(pinger{}).HealthCheck(context.Background()))
	assert.Error(t, NewDBChecker(pinger{err: errors.New("dial tcp: refused")}).HealthCheck(context.Background()))
	assert.Error(t, NewDBChecker(nil).HealthCheck(context.Background()))
}

func TestTelegramChecker(t *testing.T) {
	assert.Error(t, NewTelegramChecker(nil).HealthCheck(context.Background()))
	assert.Error(t, NewTelegramChecker(&telebot.Bot{}).HealthCheck(context.Background()))
	assert.NoError(t, NewTelegramChecker(&telebot.Bot{Me: &telebot.User{ID: 1}}).HealthCheck(context.Background()))
}
