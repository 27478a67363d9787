package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hws-labs/wetterbot/internal/bot"
)

func TestLocationKey(t *testing.T) {
	assert.Equal(t, "user:42:location", locationKey(42))
	assert.Equal(t, "user:-7:location", locationKey(-7))
}

func TestDecodeLocationRoundTrip(t *testing.T) {
	loc := bot.SavedLocation{FormattedName: "Berlin, Germany", Latitude: 52.52, Longitude: 13.405}
	raw, err := json.Marshal(loc)
	require.NoError(t, err)

	got, err := decodeLocation(raw)
	require.NoError(t, err)
	assert.Equal(t, loc, got)
}

// Corrupt or foreign data in the store must surface as ErrUnavailable,
// never a panic or a half-populated record.
func TestDecodeLocationCorruptRecord(t *testing.T) {
	_, err := decodeLocation([]byte("definitely not json"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}
