package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(handler http.HandlerFunc) (*OpenMeteoResolver, *httptest.Server) {
	server := httptest.NewServer(handler)
	resolver := NewOpenMeteoResolver(server.Client())
	resolver.baseURL = server.URL
	return resolver, server
}

func TestOpenMeteoResolverResolve(t *testing.T) {
	resolver, server := newTestResolver(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Berlin", r.URL.Query().Get("name"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [
				{"name": "Berlin", "latitude": 52.52, "longitude": 13.405, "country": "Germany"}
			]
		}`))
	})
	defer server.Close()

	loc, err := resolver.Resolve(context.Background(), "Berlin")
	require.NoError(t, err)

	assert.Equal(t, "Berlin, Germany", loc.FormattedName)
	assert.Equal(t, 52.52, loc.Latitude)
	assert.Equal(t, 13.405, loc.Longitude)
}

func TestOpenMeteoResolverNameWithoutCountry(t *testing.T) {
	resolver, server := newTestResolver(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{"name": "Null Island", "latitude": 0, "longitude": 0}]}`))
	})
	defer server.Close()

	loc, err := resolver.Resolve(context.Background(), "Null Island")
	require.NoError(t, err)
	assert.Equal(t, "Null Island", loc.FormattedName)
}

func TestOpenMeteoResolverNoResults(t *testing.T) {
	resolver, server := newTestResolver(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	defer server.Close()

	_, err := resolver.Resolve(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenMeteoResolverUpstreamErrorMapsToNotFound(t *testing.T) {
	resolver, server := newTestResolver(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := resolver.Resolve(context.Background(), "Berlin")
	assert.ErrorIs(t, err, ErrNotFound)
}
