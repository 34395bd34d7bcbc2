package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator(t *testing.T) {
	b, err := NewBundle()
	require.NoError(t, err)

	tests := []struct {
		accept string
		lang   string
		want   string
	}{
		{"de-DE,de;q=0.9,en;q=0.8", "de", "Einstellungen"},
		{"fr-CA", "fr", "Réglages"},
		{"nl", "nl", "Instellingen"},
		{"en-GB", "en", "Settings"},
		{"ja", "en", "Settings"},
		{"", "en", "Settings"},
		{";;;", "en", "Settings"},
	}

	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			tr := b.Translator(tt.accept)
			assert.Equal(t, tt.lang, tr.Language())
			assert.Equal(t, tt.want, tr.T(MsgSettings))
		})
	}
}

func TestTranslator_FallsBackToKey(t *testing.T) {
	b, err := NewBundle()
	require.NoError(t, err)

	// No Dutch text for this key: the English key is shown.
	assert.Equal(t, MsgFieldShippingMethods, b.Translator("nl").T(MsgFieldShippingMethods))
}

func TestUntranslated(t *testing.T) {
	tr := Untranslated()
	assert.Equal(t, "en", tr.Language())
	assert.Equal(t, MsgDefaultDescription, tr.T(MsgDefaultDescription))
}

func TestBundle_Languages(t *testing.T) {
	// Map iteration order differs between loads; the list must not.
	for i := 0; i < 5; i++ {
		b, err := NewBundle()
		require.NoError(t, err)
		assert.Equal(t, []string{"de", "en", "fr", "nl"}, b.Languages())
	}
}
