package itinerary

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripmate/api/pkg/middleware"
	"github.com/tripmate/api/pkg/response"
)

// Handler handles HTTP requests for itinerary operations
type Handler struct {
	service *Service
}

// NewHandler creates a new itinerary handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for itinerary endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/trip/{tripId}", h.GetByTrip)

	r.Post("/days", h.AddDay)
	r.Put("/days/{id}", h.UpdateDay)
	r.Delete("/days/{id}", h.DeleteDay)
	r.Put("/days/{id}/reorder", h.Reorder)

	r.Post("/activities", h.AddActivity)
	r.Put("/activities/{id}", h.UpdateActivity)
	r.Delete("/activities/{id}", h.DeleteActivity)

	return r
}

// GetByTrip handles GET /itinerary/trip/{tripId}
// @Summary      Get a trip's itinerary
// @Description  List a trip's days in date order with each day's activities nested in position order
// @Tags         itinerary
// @Produce      json
// @Param        tripId path string true "Trip ID"
// @Success      200 {object} response.APIResponse{data=[]DayResponse}
// @Failure      500 {object} response.APIResponse
// @Router       /itinerary/trip/{tripId} [get]
func (h *Handler) GetByTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripId")

	days, err := h.service.FetchItinerary(r.Context(), tripID)
	if err != nil {
		response.InternalError(w, "Failed to fetch itinerary")
		return
	}

	resp := make([]*DayResponse, len(days))
	for i, d := range days {
		resp[i] = d.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// AddDay handles POST /itinerary/days
// @Summary      Add a day to a trip's itinerary
// @Tags         itinerary
// @Accept       json
// @Produce      json
// @Param        request body AddDayRequest true "Day creation request"
// @Success      201 {object} response.APIResponse{data=DayResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /itinerary/days [post]
func (h *Handler) AddDay(w http.ResponseWriter, r *http.Request) {
	var req AddDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.TripID == "" {
		response.BadRequest(w, "Trip ID is required")
		return
	}
	if req.Date == "" {
		response.BadRequest(w, "Date is required")
		return
	}

	d, err := h.service.AddDay(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to add day")
		return
	}

	response.JSON(w, http.StatusCreated, d.ToResponse())
}

// UpdateDay handles PUT /itinerary/days/{id}
// @Summary      Update a day's notes
// @Tags         itinerary
// @Accept       json
// @Produce      json
// @Param        id path string true "Day ID"
// @Param        request body UpdateDayRequest true "Day update request"
// @Success      200 {object} response.APIResponse{data=DayResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /itinerary/days/{id} [put]
func (h *Handler) UpdateDay(w http.ResponseWriter, r *http.Request) {
	dayID := chi.URLParam(r, "id")

	var req UpdateDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	d, err := h.service.UpdateDay(r.Context(), dayID, req.Notes)
	if err != nil {
		if errors.Is(err, ErrDayNotFound) {
			response.NotFound(w, "Day not found")
			return
		}
		response.InternalError(w, "Failed to update day")
		return
	}

	response.JSON(w, http.StatusOK, d.ToResponse())
}

// DeleteDay handles DELETE /itinerary/days/{id}
// @Summary      Delete a day and its activities
// @Tags         itinerary
// @Produce      json
// @Param        id path string true "Day ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /itinerary/days/{id} [delete]
func (h *Handler) DeleteDay(w http.ResponseWriter, r *http.Request) {
	dayID := chi.URLParam(r, "id")

	if err := h.service.DeleteDay(r.Context(), dayID); err != nil {
		if errors.Is(err, ErrDayNotFound) {
			response.NotFound(w, "Day not found")
			return
		}
		response.InternalError(w, "Failed to delete day")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Day deleted successfully"})
}

// Reorder handles PUT /itinerary/days/{id}/reorder
// @Summary      Reorder a day's activities
// @Description  Rewrite activity positions to match the given ID order
// @Tags         itinerary
// @Accept       json
// @Produce      json
// @Param        id path string true "Day ID"
// @Param        request body ReorderRequest true "Ordered activity IDs"
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /itinerary/days/{id}/reorder [put]
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	dayID := chi.URLParam(r, "id")

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if len(req.ActivityIDs) == 0 {
		response.BadRequest(w, "Activity IDs are required")
		return
	}

	if err := h.service.ReorderActivities(r.Context(), dayID, req.ActivityIDs); err != nil {
		if errors.Is(err, ErrDayNotFound) {
			response.NotFound(w, "Day not found")
			return
		}
		response.InternalError(w, "Failed to reorder activities")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Activities reordered successfully"})
}

// AddActivity handles POST /itinerary/activities
// @Summary      Add an activity to a day
// @Tags         itinerary
// @Accept       json
// @Produce      json
// @Param        request body AddActivityRequest true "Activity creation request"
// @Success      201 {object} response.APIResponse{data=ActivityResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /itinerary/activities [post]
func (h *Handler) AddActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req AddActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.DayID == "" {
		response.BadRequest(w, "Day ID is required")
		return
	}
	if req.Name == "" {
		response.BadRequest(w, "Activity name is required")
		return
	}

	a, err := h.service.AddActivity(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDayNotFound):
			response.NotFound(w, "Day not found")
		case errors.Is(err, ErrInvalidCategory), errors.Is(err, ErrInvalidTime):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to add activity")
		}
		return
	}

	response.JSON(w, http.StatusCreated, a.ToResponse())
}

// UpdateActivity handles PUT /itinerary/activities/{id}
// @Summary      Update an activity
// @Tags         itinerary
// @Accept       json
// @Produce      json
// @Param        id path string true "Activity ID"
// @Param        request body UpdateActivityRequest true "Activity update request"
// @Success      200 {object} response.APIResponse{data=ActivityResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /itinerary/activities/{id} [put]
func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	activityID := chi.URLParam(r, "id")

	var req UpdateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	a, err := h.service.UpdateActivity(r.Context(), activityID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrActivityNotFound):
			response.NotFound(w, "Activity not found")
		case errors.Is(err, ErrInvalidCategory), errors.Is(err, ErrInvalidTime):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to update activity")
		}
		return
	}

	response.JSON(w, http.StatusOK, a.ToResponse())
}

// DeleteActivity handles DELETE /itinerary/activities/{id}
// @Summary      Delete an activity
// @Tags         itinerary
// @Produce      json
// @Param        id path string true "Activity ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /itinerary/activities/{id} [delete]
func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	activityID := chi.URLParam(r, "id")

	if err := h.service.DeleteActivity(r.Context(), activityID); err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			response.NotFound(w, "Activity not found")
			return
		}
		response.InternalError(w, "Failed to delete activity")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Activity deleted successfully"})
}
