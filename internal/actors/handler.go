package actors

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/castboard/castboard/internal/auth"
	"github.com/castboard/castboard/internal/platform/httpx"
	"github.com/castboard/castboard/internal/shared"
)

// Permissions required by the actor endpoints.
const (
	PermRead   = "read:actors"
	PermCreate = "create:actors"
	PermUpdate = "update:actors"
	PermDelete = "delete:actors"
)

// Handler exposes the /actors endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	auth     auth.Middleware
	validate *validator.Validate
}

// NewHandler constructs a new Handler.
func NewHandler(logger *slog.Logger, service *Service, authmw auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, auth: authmw, validate: validator.New()}
}

// MountRoutes attaches the actor endpoints to the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.auth.Require(PermRead)).Get("/", h.List)
	r.With(h.auth.Require(PermCreate)).Post("/", h.Create)
	r.With(h.auth.Require(PermUpdate)).Patch("/{id}", h.Update)
	r.With(h.auth.Require(PermDelete)).Delete("/{id}", h.Delete)
}

type createRequest struct {
	Name        string  `json:"name" validate:"required"`
	DateOfBirth *string `json:"date_of_birth"`
	Gender      *string `json:"gender"`
}

type updateRequest struct {
	Name        *string `json:"name"`
	DateOfBirth *string `json:"date_of_birth"`
	Gender      *string `json:"gender"`
}

type listResponse struct {
	Success bool   `json:"success"`
	Actors  []View `json:"actors"`
}

type actorResponse struct {
	Success bool `json:"success"`
	Actor   View `json:"actor"`
}

type deleteResponse struct {
	Success bool  `json:"success"`
	ActorID int64 `json:"actor_id"`
}

// List returns all actors.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list actors", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if views == nil {
		views = []View{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{Success: true, Actors: views})
}

// Create adds a new actor.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: request body must be valid JSON", shared.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: `name` attribute must be specified", shared.ErrValidation))
		return
	}

	view, err := h.service.Create(r.Context(), CreateInput{Name: req.Name, DateOfBirth: req.DateOfBirth, Gender: req.Gender})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, actorResponse{Success: true, Actor: view})
}

// Update patches an existing actor.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := actorID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: request body must be valid JSON", shared.ErrValidation))
		return
	}

	view, err := h.service.Update(r.Context(), id, UpdateInput{Name: req.Name, DateOfBirth: req.DateOfBirth, Gender: req.Gender})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, actorResponse{Success: true, Actor: view})
}

// Delete removes an actor.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := actorID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, deleteResponse{Success: true, ActorID: id})
}

func actorID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid actor id", shared.ErrNotFound)
	}
	return id, nil
}
