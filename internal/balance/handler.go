package balance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/splitease/splitease/internal/group"
	"github.com/splitease/splitease/pkg/middleware"
	"github.com/splitease/splitease/pkg/response"
)

// Handler handles HTTP requests for balance queries
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.FriendBalances)
	r.Get("/with/{userId}", h.WithUser)
	r.Get("/group/{groupId}", h.GroupBalances)

	return r
}

// FriendBalances handles GET /balances
// @Summary      List friend balances
// @Description  Get the net position against each friend of the current user
// @Tags         balances
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]FriendBalanceResponse}
// @Router       /balances [get]
func (h *Handler) FriendBalances(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	balances, err := h.service.FriendBalances(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to compute balances")
		return
	}

	balanceResponses := make([]FriendBalanceResponse, len(balances))
	for i, b := range balances {
		balanceResponses[i] = toFriendBalanceResponse(b)
	}

	response.JSON(w, http.StatusOK, balanceResponses)
}

// WithUser handles GET /balances/with/{userId}
// @Summary      Get balance with a user
// @Description  Get the net position against one other user, signed from the caller's perspective
// @Tags         balances
// @Produce      json
// @Param        userId path int true "Other user ID"
// @Success      200 {object} response.APIResponse{data=WithUserResponse}
// @Router       /balances/with/{userId} [get]
func (h *Handler) WithUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	otherID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	net, err := h.service.WithUser(r.Context(), userID, otherID)
	if err != nil {
		response.InternalError(w, "Failed to compute balance")
		return
	}

	response.JSON(w, http.StatusOK, &WithUserResponse{
		UserID:  otherID,
		Net:     net.String(),
		Message: balanceMessage("they", net),
	})
}

// GroupBalances handles GET /balances/group/{groupId}
// @Summary      Get group balances
// @Description  Get per-member nets, pairwise nets and the outstanding total for a group
// @Tags         balances
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupBalancesResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /balances/group/{groupId} [get]
func (h *Handler) GroupBalances(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	summary, pairs, err := h.service.GroupBalances(r.Context(), groupID, userID)
	if err != nil {
		switch {
		case errors.Is(err, group.ErrGroupNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, group.ErrNotAuthorized):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to compute group balances")
		}
		return
	}

	resp := &GroupBalancesResponse{
		PerMember:   make([]MemberNetResponse, len(summary.PerMember)),
		Pairwise:    make([]PairwiseResponse, len(pairs)),
		Outstanding: summary.Outstanding.String(),
	}
	for i, m := range summary.PerMember {
		resp.PerMember[i] = MemberNetResponse{UserID: m.UserID, Net: m.Net.String()}
	}
	for i, p := range pairs {
		resp.Pairwise[i] = toPairwiseResponse(p)
	}

	response.JSON(w, http.StatusOK, resp)
}
