package localization_test

import (
	"testing"
	"testing/fstest"

	"reelchat/backend/internal/localization"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedLocalesHaveSameKeys(t *testing.T) {
	l, err := localization.NewEmbedded()
	require.NoError(t, err)

	require.True(t, l.Supports("en"))
	require.True(t, l.Supports("uk"))
	for _, key := range []string{"welcome", "help", "waiting", "matched", "partner_left", "reel_shared", "maintenance", "unsupported_message_type"} {
		assert.NotEqual(t, key, l.GetString("en", key), "missing en key %s", key)
		assert.NotEqual(t, key, l.GetString("uk", key), "missing uk key %s", key)
	}
}

func TestGetString_Fallbacks(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.json": {Data: []byte(`{"hello":"Hello","only_en":"English"}`)},
		"locales/uk.json": {Data: []byte(`{"hello":"Привіт"}`)},
		"locales/notes.txt": {Data: []byte(`ignored`)},
	}
	l, err := localization.NewLocalizer(fsys, "locales")
	require.NoError(t, err)

	assert.Equal(t, "Привіт", l.GetString("uk", "hello"))
	assert.Equal(t, "English", l.GetString("uk", "only_en"), "falls back to en")
	assert.Equal(t, "Hello", l.GetString("fr", "hello"), "unknown language falls back to en")
	assert.Equal(t, "missing", l.GetString("en", "missing"), "unknown key returns the key")
	assert.False(t, l.Supports("notes"))
}

func TestNewLocalizer_Errors(t *testing.T) {
	_, err := localization.NewLocalizer(fstest.MapFS{}, "nope")
	assert.Error(t, err)

	_, err = localization.NewLocalizer(fstest.MapFS{"l/en.json": {Data: []byte(`{`)}}, "l")
	assert.Error(t, err)
}
