package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	m, err := Load("uz")
	require.NoError(t, err)

	tr := m.Translator("")
	assert.Equal(t, "uz", tr.Lang())
	assert.Equal(t, "🔙 Orqaga", tr.T("button.back"))
	assert.Equal(t, "Call center", tr.T("button.call-center"))
	assert.Contains(t, tr.T("welcome"), "xush kelibsiz")
}

func TestTranslator_Fallbacks(t *testing.T) {
	fsys := fstest.MapFS{
		"l/uz.yaml":   {Data: []byte("uz:\n  button:\n    back: Orqaga\n    about: Biz haqimizda\n")},
		"l/ru.yml":    {Data: []byte("ru:\n  button:\n    back: Назад\n")},
		"l/notes.txt": {Data: []byte("ignored")},
	}

	m, err := LoadFS(fsys, "l", "uz")
	require.NoError(t, err)

	ru := m.Translator("RU")
	assert.Equal(t, "ru", ru.Lang())
	assert.Equal(t, "Назад", ru.T("button.back"))
	assert.Equal(t, "Biz haqimizda", ru.T("button.about"), "falls back to default language")
	assert.Equal(t, "button.missing", ru.T("button.missing"), "unknown keys echo the key")

	unknown := m.Translator("de")
	assert.Equal(t, "uz", unknown.Lang())
}

func TestLoadFS_Errors(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{"l/readme.md": {Data: []byte("x")}}, "l", "uz")
	assert.Error(t, err)

	_, err = LoadFS(fstest.MapFS{"l/ru.yaml": {Data: []byte("ru:\n  a: b\n")}}, "l", "uz")
	assert.Error(t, err)
}

func TestFill(t *testing.T) {
	got := Fill("<b>{{.Name}}</b> {{.Price}} so'm/{{.Amount}}", map[string]string{
		"Name":   "Mol go'shti",
		"Price":  "95000",
		"Amount": "kg",
	})
	assert.Equal(t, "<b>Mol go'shti</b> 95000 so'm/kg", got)
}
