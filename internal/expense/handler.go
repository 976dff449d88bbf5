package expense

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripmate/api/internal/expense/split"
	"github.com/tripmate/api/pkg/middleware"
	"github.com/tripmate/api/pkg/response"
)

// MemberRoster supplies the member list the balance derivation takes as
// input. The trip membership component implements it.
type MemberRoster interface {
	Roster(ctx context.Context, tripID string) ([]Member, error)
}

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
	roster  MemberRoster
}

// NewHandler creates a new expense handler
func NewHandler(service *Service, roster MemberRoster) *Handler {
	return &Handler{service: service, roster: roster}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Delete("/{id}", h.Delete)

	// Trip-scoped listing and balances
	r.Get("/trip/{tripId}", h.ListByTrip)
	r.Get("/trip/{tripId}/balances", h.Balances)

	// Split operations
	r.Post("/splits/{splitId}/settle", h.SettleSplit)

	return r
}

// Create handles POST /expenses
// @Summary      Record an expense
// @Description  Record an expense split equally among the selected members; the payer's own share is created settled
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	// The ledger persists what it is given, so this is where the contract
	// gets enforced.
	if req.TripID == "" {
		response.BadRequest(w, "Trip ID is required")
		return
	}
	if req.Description == "" {
		response.BadRequest(w, "Description is required")
		return
	}
	if req.Amount <= 0 {
		response.BadRequest(w, "Amount must be greater than zero")
		return
	}
	if len(req.SplitAmong) == 0 {
		response.BadRequest(w, "At least one member to split among is required")
		return
	}
	if req.PaidBy == "" {
		req.PaidBy = userID
	}

	e, err := h.service.AddExpense(r.Context(), &req)
	if err != nil {
		if errors.Is(err, split.ErrUnsupportedType) || errors.Is(err, split.ErrNoParticipants) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to record expense")
		return
	}

	response.JSON(w, http.StatusCreated, e.ToResponse())
}

// ListByTrip handles GET /expenses/trip/{tripId}
// @Summary      List trip expenses
// @Description  Refresh and return the trip's expenses newest first, each with nested splits and payer identity
// @Tags         expenses
// @Produce      json
// @Param        tripId path string true "Trip ID"
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Router       /expenses/trip/{tripId} [get]
func (h *Handler) ListByTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripId")

	expenses, err := h.service.FetchExpenses(r.Context(), tripID)
	if err != nil {
		response.InternalError(w, "Failed to fetch expenses")
		return
	}

	expenseResponses := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		expenseResponses[i] = e.ToResponse()
	}

	response.JSON(w, http.StatusOK, expenseResponses)
}

// Balances handles GET /expenses/trip/{tripId}/balances
// @Summary      Get trip balances
// @Description  Net balance per member; positive means they are owed money, negative means they owe
// @Tags         expenses
// @Produce      json
// @Param        tripId path string true "Trip ID"
// @Success      200 {object} response.APIResponse{data=[]BalanceSummary}
// @Router       /expenses/trip/{tripId}/balances [get]
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripId")

	members, err := h.roster.Roster(r.Context(), tripID)
	if err != nil {
		response.InternalError(w, "Failed to get trip members")
		return
	}

	// Balances derive from the cache; populate it on first touch.
	if _, ok := h.service.CachedExpenses(tripID); !ok {
		if _, err := h.service.FetchExpenses(r.Context(), tripID); err != nil {
			response.InternalError(w, "Failed to fetch expenses")
			return
		}
	}

	balances := h.service.CalculateBalances(tripID, members)
	response.JSON(w, http.StatusOK, balances)
}

// Delete handles DELETE /expenses/{id}
// @Summary      Delete an expense
// @Description  Delete an expense and its splits
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteExpense(r.Context(), id); err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete expense")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}

// SettleSplit handles POST /expenses/splits/{splitId}/settle
// @Summary      Settle a split
// @Description  Mark one member's share as paid; there is no way to unsettle
// @Tags         splits
// @Produce      json
// @Param        splitId path string true "Split ID"
// @Success      200 {object} response.APIResponse{data=SplitResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/splits/{splitId}/settle [post]
func (h *Handler) SettleSplit(w http.ResponseWriter, r *http.Request) {
	splitID := chi.URLParam(r, "splitId")

	sp, err := h.service.SettleSplit(r.Context(), splitID)
	if err != nil {
		if errors.Is(err, ErrSplitNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to settle split")
		return
	}

	response.JSON(w, http.StatusOK, sp.ToResponse())
}
