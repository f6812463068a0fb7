package keyboard_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yusufakmalov/MY-MEAT/internal/bot/keyboard"
)

func TestInlineKeyboardBuilder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		builder := keyboard.NewInlineKeyboard()
		builder.AddRow(
			keyboard.InlineButton{Text: "Prev", Unique: "nav", Data: "1"},
			keyboard.InlineButton{Text: "Next", Unique: "nav", Data: "2"},
		).AddRow(
			keyboard.InlineButton{Text: "Kanal", URL: "https://t.me/meat"},
		).AddRow()

		markup, err := builder.Build()
		require.NoError(t, err)
		require.NotNil(t, markup)

		require.Len(t, markup.InlineKeyboard, 2)
		assert.Len(t, markup.InlineKeyboard[0], 2)
		assert.Equal(t, "nav:2", markup.InlineKeyboard[0][1].Data)
		assert.Empty(t, markup.InlineKeyboard[0][1].Unique)
		assert.Equal(t, "https://t.me/meat", markup.InlineKeyboard[1][0].URL)
		assert.Empty(t, markup.InlineKeyboard[1][0].Data)
	})

	t.Run("callback data overflow", func(t *testing.T) {
		builder := keyboard.NewInlineKeyboard()
		builder.AddRow(keyboard.InlineButton{
			Text:   "Too big",
			Unique: "overflow",
			Data:   strings.Repeat("x", keyboard.CallbackDataLimitBytes),
		})

		_, err := builder.Build()
		assert.Error(t, err)
	})
}

func TestBuilder_MarkupDropsOversizedButtons(t *testing.T) {
	b := keyboard.NewBuilder(nil)

	markup := b.Markup([][]keyboard.InlineButton{
		{
			{Text: "Mol", Unique: "meat_beef"},
			{Text: "Long", Unique: "meat_" + strings.Repeat("x", keyboard.CallbackDataLimitBytes)},
		},
		{{Text: "🔙 Orqaga", Unique: "back"}},
	})

	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 2)
	require.Len(t, markup.InlineKeyboard[0], 1)
	assert.Equal(t, "meat_beef", markup.InlineKeyboard[0][0].Data)
	assert.Equal(t, "back", markup.InlineKeyboard[1][0].Data)
}

func TestBuilder_MarkupNoRows(t *testing.T) {
	assert.Nil(t, keyboard.NewBuilder(nil).Markup(nil))
}
