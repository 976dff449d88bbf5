package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tripmate/api/internal/itinerary"
)

const defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// City is a city-level geocoding result
type City struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	FullName  string  `json:"full_name"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is a point-of-interest geocoding result
type Place struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Address   string             `json:"address"`
	Category  itinerary.Category `json:"category"`
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
}

// Proximity biases place results toward a coordinate
type Proximity struct {
	Latitude  float64
	Longitude float64
}

type feature struct {
	ID         string           `json:"id"`
	Text       string           `json:"text"`
	PlaceName  string           `json:"place_name"`
	Center     []float64        `json:"center"`
	Context    []featureContext `json:"context"`
	Properties struct {
		Category string `json:"category"`
	} `json:"properties"`
}

type featureContext struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type geocodeResponse struct {
	Features []feature `json:"features"`
}

// Client queries the Mapbox geocoding v5 API
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geocoding client with the given access token
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) search(ctx context.Context, query string, params url.Values) (*geocodeResponse, error) {
	params.Set("access_token", c.token)

	endpoint := fmt.Sprintf("%s/%s.json?%s", c.baseURL, url.PathEscape(query), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request failed with status %d", resp.StatusCode)
	}

	var data geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	return &data, nil
}

// SearchCities finds city-level matches for a query. Queries shorter than
// two characters return empty without a network call.
func (c *Client) SearchCities(ctx context.Context, query string) ([]City, error) {
	if len(query) < 2 {
		return []City{}, nil
	}

	params := url.Values{}
	params.Set("types", "place,locality")
	params.Set("limit", "5")

	data, err := c.search(ctx, query, params)
	if err != nil {
		return nil, err
	}

	cities := make([]City, 0, len(data.Features))
	for _, f := range data.Features {
		if len(f.Center) < 2 {
			continue
		}

		var state, country string
		for _, cx := range f.Context {
			switch {
			case strings.HasPrefix(cx.ID, "region"):
				state = cx.Text
			case strings.HasPrefix(cx.ID, "country"):
				country = cx.Text
			}
		}

		cities = append(cities, City{
			ID:        f.ID,
			Name:      f.Text,
			FullName:  f.PlaceName,
			State:     state,
			Country:   country,
			Latitude:  f.Center[1],
			Longitude: f.Center[0],
		})
	}

	return cities, nil
}

// SearchPlaces finds points of interest and addresses matching a query,
// optionally biased toward a coordinate. Queries shorter than two characters
// return empty without a network call.
func (c *Client) SearchPlaces(ctx context.Context, query string, proximity *Proximity) ([]Place, error) {
	if len(query) < 2 {
		return []Place{}, nil
	}

	params := url.Values{}
	params.Set("types", "poi,address")
	params.Set("limit", "10")
	if proximity != nil {
		params.Set("proximity", fmt.Sprintf("%f,%f", proximity.Longitude, proximity.Latitude))
	}

	data, err := c.search(ctx, query, params)
	if err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(data.Features))
	for _, f := range data.Features {
		if len(f.Center) < 2 {
			continue
		}

		places = append(places, Place{
			ID:        f.ID,
			Name:      f.Text,
			Address:   f.PlaceName,
			Category:  inferCategory(f.Properties.Category),
			Latitude:  f.Center[1],
			Longitude: f.Center[0],
		})
	}

	return places, nil
}

// inferCategory maps Mapbox's comma-separated POI category string onto an
// activity category by keyword, food taking priority over lodging, lodging
// over attraction, attraction over transport
func inferCategory(raw string) itinerary.Category {
	categories := strings.Split(raw, ", ")

	anyContains := func(keywords ...string) bool {
		for _, c := range categories {
			for _, kw := range keywords {
				if strings.Contains(c, kw) {
					return true
				}
			}
		}
		return false
	}

	switch {
	case anyContains("food", "restaurant", "cafe"):
		return itinerary.CategoryFood
	case anyContains("hotel", "lodging"):
		return itinerary.CategoryLodging
	case anyContains("museum", "park", "landmark", "attraction"):
		return itinerary.CategoryAttraction
	case anyContains("station", "airport", "transport"):
		return itinerary.CategoryTransport
	}
	return itinerary.CategoryOther
}
