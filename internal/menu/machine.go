// Package menu renders bot screens from navigation keys.
package menu

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"sort"
	"strings"

	"github.com/Yusufakmalov/MY-MEAT/internal/bot/keyboard"
	"github.com/Yusufakmalov/MY-MEAT/internal/domain"
	"github.com/Yusufakmalov/MY-MEAT/internal/i18n"
)

const productsPerRow = 2

var transitionRecorder = func(screen string) {}

// RegisterTransitionRecorder allows external packages to observe rendered screens.
func RegisterTransitionRecorder(recorder func(screen string)) {
	if recorder == nil {
		transitionRecorder = func(string) {}
		return
	}

	transitionRecorder = recorder
}

// ProductSource supplies catalog entries. Implementations absorb store failures.
type ProductSource interface {
	Products(ctx context.Context) []domain.Product
	Find(ctx context.Context, code string) (domain.Product, bool)
}

// MediaStore reports whether a media file is available.
type MediaStore interface {
	Exists(path string) bool
}

// Machine maps navigation keys to screens. It holds no per-user state.
type Machine struct {
	tr          i18n.Translator
	products    ProductSource
	media       MediaStore
	channelLink string
	log         *slog.Logger
}

// NewMachine creates a menu renderer.
func NewMachine(tr i18n.Translator, products ProductSource, media MediaStore, channelLink string, log *slog.Logger) *Machine {
	if log == nil {
		log = slog.Default()
	}

	return &Machine{
		tr:          tr,
		products:    products,
		media:       media,
		channelLink: channelLink,
		log:         log,
	}
}

// Render returns the screen for key. Unknown keys render the not-found screen.
func (m *Machine) Render(ctx context.Context, key Key) Screen {
	n, ok := resolve(key)
	if !ok {
		m.log.Warn("unknown navigation key", slog.String("key", key.String()))
		key = KeyNotFound
		n = graph[KeyNotFound]
	}

	var screen Screen
	switch {
	case n.render != nil:
		screen = n.render(ctx, m, key, n)
	case n.media != nil:
		screen = m.renderMedia(key, n)
	default:
		screen = m.renderStatic(key, n)
	}

	transitionRecorder(metricLabel(key))
	return screen
}

// Validate checks that every edge of the graph resolves to a node.
func Validate() error {
	var missing []string
	for key, n := range graph {
		for _, next := range n.edges() {
			if _, ok := resolve(next); !ok {
				missing = append(missing, fmt.Sprintf("%s -> %s", key, next))
			}
		}
	}
	for _, next := range productNode.edges() {
		if _, ok := resolve(next); !ok {
			missing = append(missing, fmt.Sprintf("%s* -> %s", ProductKeyPrefix, next))
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("menu graph has unresolved keys: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (m *Machine) renderStatic(key Key, n node) Screen {
	rows := make([][]keyboard.InlineButton, 0, len(n.rows)+1)
	for _, row := range n.rows {
		buttons := make([]keyboard.InlineButton, len(row))
		for i, next := range row {
			buttons[i] = m.button(next)
		}
		rows = append(rows, buttons)
	}
	if n.back != "" {
		rows = append(rows, m.backRow(n.back))
	}

	return Screen{
		Key:      key,
		Text:     m.tr.T(n.text),
		HTML:     n.html,
		Rows:     rows,
		Delivery: n.delivery,
	}
}

func (m *Machine) renderMedia(key Key, n node) Screen {
	missing := Screen{
		Key:      key,
		Text:     m.tr.T("screen.media_not_found"),
		Rows:     [][]keyboard.InlineButton{m.backRow(n.parent)},
		Delivery: DeliveryEdit,
	}

	if m.media == nil || !m.media.Exists(n.media.Path) {
		m.log.Warn("media file not found",
			slog.String("key", key.String()),
			slog.String("path", n.media.Path),
		)
		return missing
	}

	media := *n.media
	screen := Screen{
		Key:      key,
		HTML:     n.html,
		Media:    &media,
		Delivery: n.delivery,
		Fallback: &missing,
	}
	if n.text != "" {
		screen.Text = m.tr.T(n.text)
	}
	return screen
}

func renderSubscribe(_ context.Context, m *Machine, key Key, n node) Screen {
	return Screen{
		Key:  key,
		Text: m.tr.T("subscribe.prompt"),
		Rows: [][]keyboard.InlineButton{
			{{Text: m.tr.T("button.subscribe"), URL: m.channelLink}},
			{m.button(KeyCheckSubscription)},
		},
		Delivery: n.delivery,
	}
}

func renderProducts(ctx context.Context, m *Machine, key Key, _ node) Screen {
	var products []domain.Product
	if m.products != nil {
		products = m.products.Products(ctx)
	}

	buttons := make([]keyboard.InlineButton, 0, len(products))
	for _, p := range products {
		next := ProductKey(p.Code)
		if !keyboard.FitsCallback(next.String()) {
			m.log.Warn("skipping product with oversized callback key",
				slog.String("code", p.Code),
				slog.Int("bytes", len(next)),
			)
			continue
		}
		buttons = append(buttons, keyboard.InlineButton{Text: p.Name, Unique: next.String()})
	}

	if len(buttons) == 0 {
		return Screen{
			Key:  key,
			Text: m.tr.T("products.empty"),
			Rows: [][]keyboard.InlineButton{m.backRow(KeyBack)},
		}
	}

	rows := keyboard.Grid(buttons, productsPerRow)
	rows = append(rows, m.backRow(KeyBack))

	return Screen{
		Key:  key,
		Text: m.tr.T("products.title"),
		Rows: rows,
	}
}

func renderProduct(ctx context.Context, m *Machine, key Key, _ node) Screen {
	back := [][]keyboard.InlineButton{m.backRow(KeyMeats)}
	code, _ := key.ProductCode()

	var (
		product domain.Product
		found   bool
	)
	if m.products != nil {
		product, found = m.products.Find(ctx, code)
	}
	if !found {
		return Screen{Key: key, Text: m.tr.T("products.not_found"), Rows: back}
	}

	text := i18n.Fill(m.tr.T("products.details"), map[string]string{
		"Name":   html.EscapeString(product.Name),
		"Code":   html.EscapeString(product.Code),
		"Price":  product.PriceLabel(),
		"Amount": html.EscapeString(product.Amount),
	})
	details := Screen{Key: key, Text: text, HTML: true, Rows: back}

	if !product.HasImage() {
		return details
	}
	if m.media == nil || !m.media.Exists(product.Image) {
		m.log.Warn("product image not found",
			slog.String("code", product.Code),
			slog.String("path", product.Image),
		)
		return details
	}

	withPhoto := details
	withPhoto.Media = &Media{Kind: MediaPhoto, Path: product.Image}
	withPhoto.Delivery = DeliverySend
	withPhoto.Fallback = &details
	return withPhoto
}

func (m *Machine) button(next Key) keyboard.InlineButton {
	return keyboard.InlineButton{Text: m.tr.T("button." + next.String()), Unique: next.String()}
}

func (m *Machine) backRow(to Key) []keyboard.InlineButton {
	return []keyboard.InlineButton{{Text: m.tr.T("button.back"), Unique: to.String()}}
}

// metricLabel collapses product keys so metric cardinality stays bounded.
func metricLabel(key Key) string {
	if _, ok := key.ProductCode(); ok {
		return ProductKeyPrefix + "*"
	}
	return key.String()
}
