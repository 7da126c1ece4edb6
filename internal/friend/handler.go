package friend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/splitease/splitease/internal/user"
	"github.com/splitease/splitease/pkg/middleware"
	"github.com/splitease/splitease/pkg/response"
)

// Handler handles HTTP requests for friend operations
type Handler struct {
	service *Service
}

// NewHandler creates a new friend handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for friend endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListFriends)
	r.Get("/requests", h.ListPending)
	r.Post("/requests", h.SendRequest)
	r.Post("/requests/{id}/accept", h.Accept)
	r.Post("/requests/{id}/reject", h.Reject)

	return r
}

// ListFriends handles GET /friends
// @Summary      List friends
// @Description  Get all friends of the current user
// @Tags         friends
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]FriendResponse}
// @Router       /friends [get]
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	friends, err := h.service.ListFriends(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list friends")
		return
	}

	friendResponses := make([]*FriendResponse, len(friends))
	for i, f := range friends {
		friendResponses[i] = f.ToResponse()
	}

	response.JSON(w, http.StatusOK, friendResponses)
}

// ListPending handles GET /friends/requests
// @Summary      List pending friend requests
// @Description  Get friend requests awaiting the current user's response
// @Tags         friends
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]RequestResponse}
// @Router       /friends/requests [get]
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	requests, err := h.service.ListPending(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list friend requests")
		return
	}

	requestResponses := make([]*RequestResponse, len(requests))
	for i, req := range requests {
		requestResponses[i] = req.ToResponse()
	}

	response.JSON(w, http.StatusOK, requestResponses)
}

// SendRequest handles POST /friends/requests
// @Summary      Send a friend request
// @Description  Send a friend request to a user identified by email
// @Tags         friends
// @Accept       json
// @Produce      json
// @Param        request body SendRequestRequest true "Friend request"
// @Success      201 {object} response.APIResponse{data=RequestResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /friends/requests [post]
func (h *Handler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req SendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Email == "" {
		response.BadRequest(w, "Email is required")
		return
	}

	request, err := h.service.SendRequest(r.Context(), userID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrSelfRequest):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrAlreadyFriends), errors.Is(err, ErrRequestPending):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to send friend request")
		}
		return
	}

	response.JSON(w, http.StatusCreated, request.ToResponse())
}

// Accept handles POST /friends/requests/{id}/accept
// @Summary      Accept a friend request
// @Description  Accept a pending friend request addressed to the current user
// @Tags         friends
// @Produce      json
// @Param        id path int true "Request ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /friends/requests/{id}/accept [post]
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, requestID, ok := h.requestParams(w, r)
	if !ok {
		return
	}

	if _, err := h.service.Accept(r.Context(), requestID, userID); err != nil {
		h.writeRequestError(w, err, "Failed to accept friend request")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Friend request accepted"})
}

// Reject handles POST /friends/requests/{id}/reject
// @Summary      Reject a friend request
// @Description  Reject a pending friend request addressed to the current user
// @Tags         friends
// @Produce      json
// @Param        id path int true "Request ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /friends/requests/{id}/reject [post]
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	userID, requestID, ok := h.requestParams(w, r)
	if !ok {
		return
	}

	if err := h.service.Reject(r.Context(), requestID, userID); err != nil {
		h.writeRequestError(w, err, "Failed to reject friend request")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Friend request rejected"})
}

func (h *Handler) requestParams(w http.ResponseWriter, r *http.Request) (userID, requestID int64, ok bool) {
	userID, ok = middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return 0, 0, false
	}

	requestID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid request ID")
		return 0, 0, false
	}

	return userID, requestID, true
}

func (h *Handler) writeRequestError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrRequestNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotRecipient):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrRequestNotPending):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
