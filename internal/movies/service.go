package movies

import (
	"context"
	"fmt"
	"strconv"

	"github.com/castboard/castboard/internal/shared"
)

// CreateInput carries the fields for a new movie.
type CreateInput struct {
	Title       string
	ReleaseDate *string
}

// UpdateInput is a patch; nil fields are left unchanged.
type UpdateInput struct {
	Title       *string
	ReleaseDate *string
}

// Service wraps movie business rules.
type Service struct {
	repo  Repository
	audit *shared.AuditLogger
}

// NewService constructs a new Service.
func NewService(repo Repository, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns every movie with its embedded cast.
func (s *Service) List(ctx context.Context) ([]View, error) {
	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(movies))
	for _, m := range movies {
		ids = append(ids, m.ID)
	}
	cast, err := s.repo.Cast(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(movies))
	for _, m := range movies {
		views = append(views, newView(m, cast[m.ID]))
	}
	return views, nil
}

// Get returns a single movie view.
func (s *Service) Get(ctx context.Context, id int64) (View, error) {
	movie, err := s.repo.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	cast, err := s.repo.Cast(ctx, []int64{id})
	if err != nil {
		return View{}, err
	}
	return newView(movie, cast[id]), nil
}

// Create validates and persists a new movie.
func (s *Service) Create(ctx context.Context, in CreateInput) (View, error) {
	if in.Title == "" {
		return View{}, fmt.Errorf("%w: `title` attribute must be provided", shared.ErrValidation)
	}
	if err := validateDate(in.ReleaseDate); err != nil {
		return View{}, err
	}

	movie, err := s.repo.Create(ctx, Movie{Title: in.Title, ReleaseDate: in.ReleaseDate})
	if err != nil {
		return View{}, err
	}
	s.record(ctx, "create", movie.ID)
	return newView(movie, nil), nil
}

// Update applies a patch to an existing movie. At least one recognized field
// must be present; validation fully precedes mutation.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (View, error) {
	if in.Title == nil && in.ReleaseDate == nil {
		return View{}, fmt.Errorf("%w: either `title` or `release_date` attribute must be specified", shared.ErrValidation)
	}
	if in.Title != nil && *in.Title == "" {
		return View{}, fmt.Errorf("%w: `title` attribute must be provided", shared.ErrValidation)
	}
	if err := validateDate(in.ReleaseDate); err != nil {
		return View{}, err
	}

	movie, err := s.repo.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	if in.Title != nil {
		movie.Title = *in.Title
	}
	if in.ReleaseDate != nil {
		movie.ReleaseDate = in.ReleaseDate
	}

	if err := s.repo.Update(ctx, movie); err != nil {
		return View{}, err
	}
	s.record(ctx, "update", id)

	cast, err := s.repo.Cast(ctx, []int64{id})
	if err != nil {
		return View{}, err
	}
	return newView(movie, cast[id]), nil
}

// Delete removes the movie. Roles are not cascaded.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "delete", id)
	return nil
}

func (s *Service) record(ctx context.Context, action string, id int64) {
	if s.audit == nil {
		return
	}
	var subject string
	if claims := shared.ClaimsFromContext(ctx); claims != nil {
		subject = claims.Subject
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Subject:  subject,
		Action:   action,
		Entity:   "movie",
		EntityID: strconv.FormatInt(id, 10),
	})
}

func newView(movie Movie, cast []CastMember) View {
	if cast == nil {
		cast = []CastMember{}
	}
	return View{
		ID:          movie.ID,
		Title:       movie.Title,
		ReleaseDate: movie.ReleaseDate,
		Actors:      cast,
	}
}

func validateDate(s *string) error {
	if s == nil {
		return nil
	}
	if _, err := shared.ParseDate(*s); err != nil {
		return fmt.Errorf("%w: `release_date` must be in format YYYY-MM-DD", shared.ErrValidation)
	}
	return nil
}
