package actors

import (
	"context"
	"fmt"
	"strconv"

	"github.com/castboard/castboard/internal/shared"
)

// CreateInput carries the fields for a new actor.
type CreateInput struct {
	Name        string
	DateOfBirth *string
	Gender      *string
}

// UpdateInput is a patch; nil fields are left unchanged.
type UpdateInput struct {
	Name        *string
	DateOfBirth *string
	Gender      *string
}

// Service wraps actor business rules.
type Service struct {
	repo  Repository
	audit *shared.AuditLogger
}

// NewService constructs a new Service.
func NewService(repo Repository, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns every actor with its embedded movie credits.
func (s *Service) List(ctx context.Context) ([]View, error) {
	actors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(actors))
	for _, a := range actors {
		ids = append(ids, a.ID)
	}
	credits, err := s.repo.Credits(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(actors))
	for _, a := range actors {
		views = append(views, newView(a, credits[a.ID]))
	}
	return views, nil
}

// Get returns a single actor view.
func (s *Service) Get(ctx context.Context, id int64) (View, error) {
	actor, err := s.repo.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	credits, err := s.repo.Credits(ctx, []int64{id})
	if err != nil {
		return View{}, err
	}
	return newView(actor, credits[id]), nil
}

// Create validates and persists a new actor.
func (s *Service) Create(ctx context.Context, in CreateInput) (View, error) {
	if in.Name == "" {
		return View{}, fmt.Errorf("%w: `name` attribute must be specified", shared.ErrValidation)
	}
	if err := validateDate(in.DateOfBirth, "date_of_birth"); err != nil {
		return View{}, err
	}

	actor, err := s.repo.Create(ctx, Actor{Name: in.Name, DateOfBirth: in.DateOfBirth, Gender: in.Gender})
	if err != nil {
		return View{}, err
	}
	s.record(ctx, "create", actor.ID)
	return newView(actor, nil), nil
}

// Update applies a patch to an existing actor. At least one recognized field
// must be present; validation fully precedes mutation.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (View, error) {
	if in.Name == nil && in.DateOfBirth == nil && in.Gender == nil {
		return View{}, fmt.Errorf("%w: at least one of `name`, `date_of_birth`, or `gender` must be provided", shared.ErrValidation)
	}
	if in.Name != nil && *in.Name == "" {
		return View{}, fmt.Errorf("%w: `name` attribute must be specified", shared.ErrValidation)
	}
	if err := validateDate(in.DateOfBirth, "date_of_birth"); err != nil {
		return View{}, err
	}

	actor, err := s.repo.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	if in.Name != nil {
		actor.Name = *in.Name
	}
	if in.DateOfBirth != nil {
		actor.DateOfBirth = in.DateOfBirth
	}
	if in.Gender != nil {
		actor.Gender = in.Gender
	}

	if err := s.repo.Update(ctx, actor); err != nil {
		return View{}, err
	}
	s.record(ctx, "update", id)

	credits, err := s.repo.Credits(ctx, []int64{id})
	if err != nil {
		return View{}, err
	}
	return newView(actor, credits[id]), nil
}

// Delete removes the actor. Roles are not cascaded.
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
		Entity:   "actor",
		EntityID: strconv.FormatInt(id, 10),
	})
}

func newView(actor Actor, credits []MovieCredit) View {
	if credits == nil {
		credits = []MovieCredit{}
	}
	return View{
		ID:          actor.ID,
		Name:        actor.Name,
		DateOfBirth: actor.DateOfBirth,
		Age:         shared.YearsSince(actor.DateOfBirth),
		Gender:      actor.Gender,
		Movies:      credits,
	}
}

func validateDate(s *string, field string) error {
	if s == nil {
		return nil
	}
	if _, err := shared.ParseDate(*s); err != nil {
		return fmt.Errorf("%w: `%s` must be in format YYYY-MM-DD", shared.ErrValidation, field)
	}
	return nil
}
