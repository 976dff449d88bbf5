package geocode

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tripmate/api/pkg/response"
)

// Handler handles HTTP requests for geocoding lookups
type Handler struct {
	client *Client
}

// NewHandler creates a new geocode handler
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Routes returns the router for geocode endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/cities", h.Cities)
	r.Get("/places", h.Places)

	return r
}

// Cities handles GET /geocode/cities
// @Summary      Search cities
// @Description  Find city-level matches for a query string
// @Tags         geocode
// @Produce      json
// @Param        q query string true "Search query"
// @Success      200 {object} response.APIResponse{data=[]City}
// @Failure      502 {object} response.APIResponse
// @Router       /geocode/cities [get]
func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	cities, err := h.client.SearchCities(r.Context(), query)
	if err != nil {
		response.BadGateway(w, "Geocoding lookup failed")
		return
	}

	response.JSON(w, http.StatusOK, cities)
}

// Places handles GET /geocode/places
// @Summary      Search places
// @Description  Find points of interest and addresses, optionally biased toward lat/lon
// @Tags         geocode
// @Produce      json
// @Param        q query string true "Search query"
// @Param        lat query number false "Proximity latitude"
// @Param        lon query number false "Proximity longitude"
// @Success      200 {object} response.APIResponse{data=[]Place}
// @Failure      400 {object} response.APIResponse
// @Failure      502 {object} response.APIResponse
// @Router       /geocode/places [get]
func (h *Handler) Places(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var proximity *Proximity
	latStr, lonStr := r.URL.Query().Get("lat"), r.URL.Query().Get("lon")
	if latStr != "" && lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			response.BadRequest(w, "Invalid latitude")
			return
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			response.BadRequest(w, "Invalid longitude")
			return
		}
		proximity = &Proximity{Latitude: lat, Longitude: lon}
	}

	places, err := h.client.SearchPlaces(r.Context(), query, proximity)
	if err != nil {
		response.BadGateway(w, "Geocoding lookup failed")
		return
	}

	response.JSON(w, http.StatusOK, places)
}
