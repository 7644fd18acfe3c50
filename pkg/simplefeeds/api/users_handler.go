package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/simple-feeds/pkg/simplefeeds"
)

// UsersHandler handles user management API endpoints
type UsersHandler struct {
	service simplefeeds.Service
}

func NewUsersHandler(service simplefeeds.Service) *UsersHandler {
	return &UsersHandler{service: service}
}

// Routes returns the router for users endpoints
func (h *UsersHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateUser)
	r.Get("/{user_id}", h.GetUser)
	return r
}

// CreateUser registers a new user with a generated username
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.CreateUser(r.Context())
	if err != nil {
		slog.Error("Failed to create user", "error", err)
		http.Error(w, "User could not be created", http.StatusInternalServerError)
		return
	}

	slog.Info("User created", "user_id", user.ID.String(), "username", user.Username)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, user)
}

// GetUser returns a single user record
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userIDStr := chi.URLParam(r, "user_id")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		slog.Error("Invalid user ID", "user_id", userIDStr, "error", err)
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "get user", err)
		return
	}

	render.JSON(w, r, user)
}
