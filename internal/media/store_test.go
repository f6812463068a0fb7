package media

import (
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStore(t *testing.T) *Store {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "certificates/halal_cert.png", []byte("png"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "video/meat_processing.mp4", []byte("mp4"), 0o644))
	require.NoError(t, fs.MkdirAll("images", 0o755))

	return NewStore(fs)
}

func TestStore_Exists(t *testing.T) {
	s := newMemStore(t)

	testCases := []struct {
		path     string
		expected bool
	}{
		{path: "certificates/halal_cert.png", expected: true},
		{path: "/video/meat_processing.mp4", expected: true},
		{path: "certificates/../video/meat_processing.mp4", expected: true},
		{path: "certificates/missing.png", expected: false},
		{path: "images", expected: false},
		{path: "", expected: false},
		{path: "../etc/passwd", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.expected, s.Exists(tc.path))
		})
	}
}

func TestStore_Open(t *testing.T) {
	s := newMemStore(t)

	rc, err := s.Open("certificates/halal_cert.png")
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png", string(body))

	_, err = s.Open("certificates/missing.png")
	assert.Error(t, err)

	_, err = s.Open("../secret")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestStore_IsReadOnly(t *testing.T) {
	s := newMemStore(t)

	_, err := s.fs.Create("certificates/new.png")
	assert.Error(t, err)
}
