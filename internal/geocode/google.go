package geocode

import (
	"context"
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"

	"github.com/hws-labs/wetterbot/internal/bot"
)

// GoogleResolver resolves locations through the Google Geocoding API.
// It forward-geocodes the free text for coordinates, then
// reverse-geocodes once more to obtain the canonical formatted address.
// The geocoder library carries its key in a package-level variable, so
// construct this resolver exactly once at startup.
type GoogleResolver struct{}

func NewGoogleResolver(apiKey string) *GoogleResolver {
	geocoder.ApiKey = apiKey
	return &GoogleResolver{}
}

func (g *GoogleResolver) Resolve(_ context.Context, query string) (bot.SavedLocation, error) {
	location, err := geocoder.Geocoding(geocoder.Address{Street: query})
	if err != nil {
		return bot.SavedLocation{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	name := strings.TrimSpace(query)
	if addresses, err := geocoder.GeocodingReverse(location); err == nil && len(addresses) > 0 {
		if formatted := addresses[0].FormatAddress(); formatted != "" {
			name = formatted
		}
	}

	return bot.SavedLocation{
		FormattedName: name,
		Latitude:      location.Latitude,
		Longitude:     location.Longitude,
	}, nil
}
