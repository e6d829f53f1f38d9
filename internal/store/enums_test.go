package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	for _, want := range []Theme{ThemeDark, ThemeLight} {
		got, err := ParseTheme(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseTheme("sepia")
	assert.ErrorIs(t, err, ErrCorruptRecord)
	_, err = ParseTheme("")
	assert.ErrorIs(t, err, ErrCorruptRecord)
	_, err = ParseTheme("Dark") // tokens are lowercase, no case folding
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestParseContactType(t *testing.T) {
	for _, want := range []ContactType{ContactFriend, ContactAcquaintance} {
		got, err := ParseContactType(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseContactType("enemy")
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestParseMessageType(t *testing.T) {
	for _, want := range []MessageType{MessageText, MessageImage, MessageVideo, MessageDocument, MessageArchive} {
		got, err := ParseMessageType(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Unknown tokens are corruption, never defaulted to text
	_, err := ParseMessageType("sticker")
	assert.ErrorIs(t, err, ErrCorruptRecord)
}
