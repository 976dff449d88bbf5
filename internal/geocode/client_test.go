package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tripmate/api/internal/itinerary"
)

const citiesPayload = `{
	"features": [
		{
			"id": "place.123",
			"text": "Lisbon",
			"place_name": "Lisbon, Lisboa, Portugal",
			"center": [-9.1372, 38.7169],
			"context": [
				{"id": "region.456", "text": "Lisboa"},
				{"id": "country.789", "text": "Portugal"}
			]
		}
	]
}`

const placesPayload = `{
	"features": [
		{
			"id": "poi.1",
			"text": "Time Out Market",
			"place_name": "Time Out Market, Av. 24 de Julho, Lisbon",
			"center": [-9.1460, 38.7071],
			"properties": {"category": "food court, restaurant"}
		},
		{
			"id": "poi.2",
			"text": "Oriente",
			"place_name": "Oriente Station, Lisbon",
			"center": [-9.0994, 38.7680],
			"properties": {"category": "railway station"}
		},
		{
			"id": "poi.3",
			"text": "Some Shop",
			"place_name": "Some Shop, Lisbon",
			"center": [-9.14, 38.71],
			"properties": {}
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient("test-token")
	c.baseURL = server.URL
	return c
}

func TestSearchCities(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(citiesPayload))
	})

	cities, err := c.SearchCities(context.Background(), "lisb")
	if err != nil {
		t.Fatalf("SearchCities returned error: %v", err)
	}
	if len(cities) != 1 {
		t.Fatalf("wanted 1 city, got %d", len(cities))
	}

	got := cities[0]
	if got.Name != "Lisbon" || got.FullName != "Lisbon, Lisboa, Portugal" {
		t.Errorf("unexpected city names: %+v", got)
	}
	if got.State != "Lisboa" || got.Country != "Portugal" {
		t.Errorf("context extraction failed: state=%q country=%q", got.State, got.Country)
	}
	// Mapbox centers are lon,lat
	if got.Latitude != 38.7169 || got.Longitude != -9.1372 {
		t.Errorf("wanted lat=38.7169 lon=-9.1372, got lat=%v lon=%v", got.Latitude, got.Longitude)
	}

	for _, want := range []string{"types=place%2Clocality", "limit=5", "access_token=test-token"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestSearchCitiesShortQuery(t *testing.T) {
	// Queries under two characters never reach the network

	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	for _, q := range []string{"", "a"} {
		cities, err := c.SearchCities(context.Background(), q)
		if err != nil {
			t.Fatalf("SearchCities(%q) returned error: %v", q, err)
		}
		if len(cities) != 0 {
			t.Errorf("SearchCities(%q): wanted empty result", q)
		}
	}
	if called {
		t.Errorf("short queries must not hit the API")
	}
}

func TestSearchPlaces(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(placesPayload))
	})

	places, err := c.SearchPlaces(context.Background(), "market", &Proximity{Latitude: 38.7169, Longitude: -9.1372})
	if err != nil {
		t.Fatalf("SearchPlaces returned error: %v", err)
	}
	if len(places) != 3 {
		t.Fatalf("wanted 3 places, got %d", len(places))
	}

	wantCategories := map[string]itinerary.Category{
		"poi.1": itinerary.CategoryFood,
		"poi.2": itinerary.CategoryTransport,
		"poi.3": itinerary.CategoryOther,
	}
	for _, p := range places {
		if p.Category != wantCategories[p.ID] {
			t.Errorf("place %s: wanted category %s, got %s", p.ID, wantCategories[p.ID], p.Category)
		}
	}

	for _, want := range []string{"types=poi%2Caddress", "limit=10", "proximity="} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestSearchUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := c.SearchCities(context.Background(), "lisbon"); err == nil {
		t.Errorf("wanted error on upstream failure")
	}
	if _, err := c.SearchPlaces(context.Background(), "market", nil); err == nil {
		t.Errorf("wanted error on upstream failure")
	}
}

func TestInferCategoryPriority(t *testing.T) {
	// Food wins over every other keyword when both appear

	tests := []struct {
		raw  string
		want itinerary.Category
	}{
		{"hotel, restaurant", itinerary.CategoryFood},
		{"cafe", itinerary.CategoryFood},
		{"hotel", itinerary.CategoryLodging},
		{"museum, station", itinerary.CategoryAttraction},
		{"airport", itinerary.CategoryTransport},
		{"bookstore", itinerary.CategoryOther},
		{"", itinerary.CategoryOther},
	}

	for _, tt := range tests {
		if got := inferCategory(tt.raw); got != tt.want {
			t.Errorf("inferCategory(%q): wanted %s, got %s", tt.raw, tt.want, got)
		}
	}
}
