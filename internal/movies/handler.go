package movies

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/castboard/castboard/internal/auth"
	"github.com/castboard/castboard/internal/platform/httpx"
	"github.com/castboard/castboard/internal/roles"
	"github.com/castboard/castboard/internal/shared"
)

// Permissions required by the movie and role endpoints.
const (
	PermRead       = "read:movies"
	PermCreate     = "create:movies"
	PermUpdate     = "update:movies"
	PermDelete     = "delete:movies"
	PermCreateRole = "create:role"
	PermDeleteRole = "delete:role"
)

// Handler exposes the /movies endpoints, including the cast assignment
// routes under /movies/{id}/actors.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	roles    *roles.Service
	auth     auth.Middleware
	validate *validator.Validate
}

// NewHandler constructs a new Handler.
func NewHandler(logger *slog.Logger, service *Service, roleService *roles.Service, authmw auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, roles: roleService, auth: authmw, validate: validator.New()}
}

// MountRoutes attaches the movie endpoints to the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.auth.Require(PermRead)).Get("/", h.List)
	r.With(h.auth.Require(PermCreate)).Post("/", h.Create)
	r.With(h.auth.Require(PermUpdate)).Patch("/{id}", h.Update)
	r.With(h.auth.Require(PermDelete)).Delete("/{id}", h.Delete)
	r.With(h.auth.Require(PermCreateRole)).Post("/{id}/actors", h.AddRole)
	r.With(h.auth.Require(PermDeleteRole)).Delete("/{id}/actors/{actorId}", h.RemoveRole)
}

type createRequest struct {
	Title       string  `json:"title" validate:"required"`
	ReleaseDate *string `json:"release_date"`
}

type updateRequest struct {
	Title       *string `json:"title"`
	ReleaseDate *string `json:"release_date"`
}

type addRoleRequest struct {
	ActorID int64 `json:"actor_id" validate:"required,gt=0"`
}

type listResponse struct {
	Success bool   `json:"success"`
	Movies  []View `json:"movies"`
}

type movieResponse struct {
	Success bool `json:"success"`
	Movie   View `json:"movie"`
}

type deleteResponse struct {
	Success bool  `json:"success"`
	MovieID int64 `json:"movie_id"`
}

type removeRoleResponse struct {
	Success bool  `json:"success"`
	MovieID int64 `json:"movie_id"`
	ActorID int64 `json:"actor_id"`
}

// List returns all movies.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list movies", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if views == nil {
		views = []View{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{Success: true, Movies: views})
}

// Create adds a new movie.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: request body must be valid JSON", shared.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: `title` attribute must be provided", shared.ErrValidation))
		return
	}

	view, err := h.service.Create(r.Context(), CreateInput{Title: req.Title, ReleaseDate: req.ReleaseDate})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, movieResponse{Success: true, Movie: view})
}

// Update patches an existing movie.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := movieID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: request body must be valid JSON", shared.ErrValidation))
		return
	}

	view, err := h.service.Update(r.Context(), id, UpdateInput{Title: req.Title, ReleaseDate: req.ReleaseDate})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, movieResponse{Success: true, Movie: view})
}

// Delete removes a movie.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := movieID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, deleteResponse{Success: true, MovieID: id})
}

// AddRole links an actor to the movie and returns the movie with its
// updated cast.
func (h *Handler) AddRole(w http.ResponseWriter, r *http.Request) {
	id, err := movieID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	var req addRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: request body must be valid JSON", shared.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: `actor_id` attribute must be specified", shared.ErrValidation))
		return
	}

	if err := h.roles.Add(r.Context(), id, req.ActorID); err != nil {
		httpx.RespondError(w, err)
		return
	}

	view, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, movieResponse{Success: true, Movie: view})
}

// RemoveRole unlinks an actor from the movie.
func (h *Handler) RemoveRole(w http.ResponseWriter, r *http.Request) {
	id, err := movieID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	actorID, err := strconv.ParseInt(chi.URLParam(r, "actorId"), 10, 64)
	if err != nil || actorID < 1 {
		httpx.RespondError(w, fmt.Errorf("%w: invalid actor id", shared.ErrNotFound))
		return
	}

	if err := h.roles.Remove(r.Context(), id, actorID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, removeRoleResponse{Success: true, MovieID: id, ActorID: actorID})
}

func movieID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid movie id", shared.ErrNotFound)
	}
	return id, nil
}
