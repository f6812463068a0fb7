package bot

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	telebot "gopkg.in/telebot.v3"

	"github.com/Yusufakmalov/MY-MEAT/internal/bot/handlers"
	"github.com/Yusufakmalov/MY-MEAT/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNormalizeCommand(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "/start", want: "/start", ok: true},
		{in: "  /START  ", want: "/start", ok: true},
		{in: "/start@taqvo_bot", want: "/start", ok: true},
		{in: "/start ref_42", want: "/start", ok: true},
		{in: "/help\nmore", want: "/help", ok: true},
		{in: "hello", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := normalizeCommand(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

type recorder struct {
	calls []string
}

func (r *recorder) handler(name string) handlers.Handler {
	return func(telebot.Context) error {
		r.calls = append(r.calls, name)
		return nil
	}
}

func newTestRouter(rec *recorder) *Router {
	r := NewRouter(discardLogger())
	r.RegisterCommand("/START", rec.handler("start"))
	r.RegisterCallback("check_subscription", rec.handler("check"))
	r.SetCallbackFallback(rec.handler("navigate"))
	r.SetDefault(rec.handler("help"))
	return r
}

func TestRouter_Route(t *testing.T) {
	tests := []struct {
		name string
		ctx  *testutil.FakeContext
		want []string
	}{
		{name: "command", ctx: testutil.NewMessage(1, "/start"), want: []string{"start"}},
		{name: "command with bot suffix", ctx: testutil.NewMessage(1, "/start@taqvo_bot"), want: []string{"start"}},
		{name: "unknown command", ctx: testutil.NewMessage(1, "/price"), want: []string{"help"}},
		{name: "plain text ignored", ctx: testutil.NewMessage(1, "salom"), want: nil},
		{name: "exact callback", ctx: testutil.NewCallback(1, "check_subscription"), want: []string{"check"}},
		{name: "prefixed callback data", ctx: testutil.NewCallback(1, "\fcheck_subscription"), want: []string{"check"}},
		{name: "menu callback", ctx: testutil.NewCallback(1, "meat_beef"), want: []string{"navigate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			require.NoError(t, newTestRouter(rec).Route(tt.ctx))
			assert.Equal(t, tt.want, rec.calls)
		})
	}
}

func TestRouter_NoHandlers(t *testing.T) {
	r := NewRouter(nil)

	assert.NoError(t, r.Route(testutil.NewCallback(1, "about")))
	assert.NoError(t, r.Route(testutil.NewMessage(1, "/start")))
	assert.NoError(t, r.Route(nil))
}

func TestRouter_MiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) handlers.Middleware {
		return func(next handlers.Handler) handlers.Handler {
			return func(c telebot.Context) error {
				order = append(order, name+">")
				err := next(c)
				order = append(order, "<"+name)
				return err
			}
		}
	}

	r := NewRouter(discardLogger())
	r.Use(mw("outer"))
	r.Use(mw("inner"))
	r.RegisterCommand(CommandStart, func(telebot.Context) error {
		order = append(order, "handler")
		return nil
	})

	require.NoError(t, r.Route(testutil.NewMessage(1, "/start")))
	assert.Equal(t, []string{"outer>", "inner>", "handler", "<inner", "<outer"}, order)
}

func TestRouter_PropagatesHandlerError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRouter(discardLogger())
	r.SetCallbackFallback(func(telebot.Context) error { return boom })

	assert.ErrorIs(t, r.Route(testutil.NewCallback(1, "about")), boom)
}
