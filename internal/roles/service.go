package roles

import (
	"context"
	"fmt"

	"github.com/castboard/castboard/internal/shared"
)

// Service wraps role business rules.
type Service struct {
	repo  Repository
	audit *shared.AuditLogger
}

// NewService constructs a new Service.
func NewService(repo Repository, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// Add creates a role linking the actor to the movie. Both ids must exist and
// the pair must not already be linked.
func (s *Service) Add(ctx context.Context, movieID, actorID int64) error {
	if err := s.checkIDs(ctx, movieID, actorID); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, Role{ActorID: actorID, MovieID: movieID}); err != nil {
		return err
	}
	s.record(ctx, "add", movieID, actorID)
	return nil
}

// Remove deletes the role for the exact pair. A missing actor or movie is a
// not-found failure; a missing role for an existing pair is a conflict.
func (s *Service) Remove(ctx context.Context, movieID, actorID int64) error {
	if err := s.checkIDs(ctx, movieID, actorID); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, Role{ActorID: actorID, MovieID: movieID})
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: `actor_id`: %d is not currently listed as having a role in `movie_id`: %d",
			shared.ErrConflict, actorID, movieID)
	}
	s.record(ctx, "remove", movieID, actorID)
	return nil
}

func (s *Service) checkIDs(ctx context.Context, movieID, actorID int64) error {
	ok, err := s.repo.MovieExists(ctx, movieID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: unable to find the specified movie_id: %d", shared.ErrNotFound, movieID)
	}

	ok, err = s.repo.ActorExists(ctx, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: unable to find the specified actor_id: %d", shared.ErrNotFound, actorID)
	}
	return nil
}

func (s *Service) record(ctx context.Context, action string, movieID, actorID int64) {
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
		Entity:   "role",
		EntityID: fmt.Sprintf("%d:%d", movieID, actorID),
	})
}
