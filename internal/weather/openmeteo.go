package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

const openMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoClient fetches current and daily conditions from the
// Open-Meteo forecast API. No API key is required. Every Fetch is a
// single attempt over the shared HTTP client; the circuit breaker only
// short-circuits calls while the upstream is known to be down, it never
// adds retries.
type OpenMeteoClient struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoClient(client *http.Client) *OpenMeteoClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo-forecast",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoClient{
		baseURL: openMeteoBaseURL,
		client:  client,
		circuit: cb,
	}
}

// Fetch returns the snapshot for the given coordinates. All upstream
// failures map to ErrUnavailable; the caller decides how to report them.
func (c *OpenMeteoClient) Fetch(ctx context.Context, lat, lon float64) (Snapshot, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("current_weather", "true")
	values.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,weathercode")
	values.Set("forecast_days", "1")
	values.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
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
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: unexpected result type from circuit breaker", ErrUnavailable)
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WindSpeed   float64 `json:"windspeed"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
		Daily struct {
			TempMax     []float64 `json:"temperature_2m_max"`
			TempMin     []float64 `json:"temperature_2m_min"`
			PrecipSum   []float64 `json:"precipitation_sum"`
			WeatherCode []int     `json:"weathercode"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	snap := Snapshot{
		Current: Current{
			Temperature: payload.CurrentWeather.Temperature,
			WindSpeed:   payload.CurrentWeather.WindSpeed,
			Condition:   mapCondition(payload.CurrentWeather.WeatherCode),
		},
	}

	if len(payload.Daily.TempMax) > 0 {
		snap.Today.TempMax = payload.Daily.TempMax[0]
	}
	if len(payload.Daily.TempMin) > 0 {
		snap.Today.TempMin = payload.Daily.TempMin[0]
	}
	if len(payload.Daily.PrecipSum) > 0 {
		snap.Today.PrecipMM = payload.Daily.PrecipSum[0]
	}
	if len(payload.Daily.WeatherCode) > 0 {
		snap.Today.Condition = mapCondition(payload.Daily.WeatherCode[0])
	} else {
		snap.Today.Condition = ConditionUnknown
	}

	return snap, nil
}

// mapCondition maps Open-Meteo weather codes to the normalized enum
// (simplified).
func mapCondition(code int) Condition {
	switch {
	case code == 0:
		return ConditionClear
	case code >= 1 && code <= 3:
		return ConditionCloudy
	case code == 45 || code == 48:
		return ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return ConditionSnow
	case code >= 95:
		return ConditionStorm
	default:
		return ConditionUnknown
	}
}
