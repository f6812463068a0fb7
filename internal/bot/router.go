package bot

import (
	"log/slog"
	"strings"
	"sync"

	telebot "gopkg.in/telebot.v3"

	"github.com/Yusufakmalov/MY-MEAT/internal/bot/handlers"
)

// Router picks a handler for each update and runs it inside the middleware chain.
// Commands are matched case-insensitively, callbacks by their exact data.
type Router struct {
	mu        sync.RWMutex
	commands  map[string]handlers.Handler
	callbacks map[string]handlers.Handler
	navigate  handlers.Handler
	unknown   handlers.Handler
	chain     []handlers.Middleware
	log       *slog.Logger
}

func NewRouter(log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}

	return &Router{
		commands:  make(map[string]handlers.Handler),
		callbacks: make(map[string]handlers.Handler),
		log:       log,
	}
}

// RegisterCommand binds cmd, e.g. "/start".
func (r *Router) RegisterCommand(cmd string, h handlers.Handler) {
	r.mu.Lock()
	r.commands[strings.ToLower(cmd)] = h
	r.mu.Unlock()
}

func (r *Router) RegisterCallback(data string, h handlers.Handler) {
	r.mu.Lock()
	r.callbacks[data] = h
	r.mu.Unlock()
}

// SetCallbackFallback handles every callback without an exact registration.
func (r *Router) SetCallbackFallback(h handlers.Handler) {
	r.mu.Lock()
	r.navigate = h
	r.mu.Unlock()
}

// SetDefault handles commands nobody registered.
func (r *Router) SetDefault(h handlers.Handler) {
	r.mu.Lock()
	r.unknown = h
	r.mu.Unlock()
}

// Use appends mw. The first middleware added is the outermost.
func (r *Router) Use(mw handlers.Middleware) {
	r.mu.Lock()
	r.chain = append(r.chain, mw)
	r.mu.Unlock()
}

// Route handles one update. Plain text that is not a command is ignored.
func (r *Router) Route(c telebot.Context) error {
	if c == nil {
		return nil
	}

	h, chain := r.resolve(c)
	if h == nil {
		return nil
	}

	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h(c)
}

// resolve returns the handler for c together with a copy of the middleware chain.
func (r *Router) resolve(c telebot.Context) (handlers.Handler, []handlers.Middleware) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var h handlers.Handler
	if cb := c.Callback(); cb != nil {
		data := strings.TrimPrefix(cb.Data, "\f")
		if h = r.callbacks[data]; h == nil {
			h = r.navigate
		}
		if h == nil {
			r.log.Info("callback dropped, no handler", slog.String("data", data))
		}
	} else if cmd, ok := normalizeCommand(c.Text()); ok {
		if h = r.commands[cmd]; h == nil {
			h = r.unknown
		}
	}

	if h == nil {
		return nil, nil
	}
	return h, append([]handlers.Middleware(nil), r.chain...)
}
