// Package geocode resolves free-text location input to a canonical
// named location with coordinates.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/hws-labs/wetterbot/internal/bot"
)

// ErrNotFound is returned when the input does not map to a usable
// location. Timeouts and upstream failures collapse into it as well;
// the handlers do not distinguish them in the reply.
var ErrNotFound = errors.New("location not found")

const openMeteoGeoBaseURL = "https://geocoding-api.open-meteo.com/v1/search"

// OpenMeteoResolver resolves locations through the keyless Open-Meteo
// geocoding API. It is the default resolver when no Google API key is
// configured. Single attempt per invocation.
type OpenMeteoResolver struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoResolver(client *http.Client) *OpenMeteoResolver {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo-geocoding",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoResolver{
		baseURL: openMeteoGeoBaseURL,
		client:  client,
		circuit: cb,
	}
}

func (r *OpenMeteoResolver) Resolve(ctx context.Context, query string) (bot.SavedLocation, error) {
	values := url.Values{}
	values.Set("name", query)
	values.Set("count", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return bot.SavedLocation{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	result, err := r.circuit.Execute(func() (interface{}, error) {
		resp, execErr := r.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return bot.SavedLocation{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return bot.SavedLocation{}, fmt.Errorf("%w: unexpected result type from circuit breaker", ErrNotFound)
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Country   string  `json:"country"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return bot.SavedLocation{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if len(payload.Results) == 0 {
		return bot.SavedLocation{}, fmt.Errorf("%w: %q", ErrNotFound, query)
	}

	hit := payload.Results[0]
	name := hit.Name
	if hit.Country != "" {
		name = hit.Name + ", " + hit.Country
	}

	return bot.SavedLocation{
		FormattedName: name,
		Latitude:      hit.Latitude,
		Longitude:     hit.Longitude,
	}, nil
}
