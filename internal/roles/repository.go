package roles

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/castboard/castboard/internal/shared"
)

// uniqueViolation is the PostgreSQL error code raised when the composite
// primary key on roles rejects a duplicate pair.
const uniqueViolation = "23505"

// Repository is the persistence contract for roles.
type Repository interface {
	ActorExists(ctx context.Context, actorID int64) (bool, error)
	MovieExists(ctx context.Context, movieID int64) (bool, error)
	Create(ctx context.Context, role Role) error
	Delete(ctx context.Context, role Role) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) ActorExists(ctx context.Context, actorID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM actors WHERE id = $1)`, actorID).Scan(&exists)
	return exists, err
}

func (r *repository) MovieExists(ctx context.Context, movieID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, movieID).Scan(&exists)
	return exists, err
}

// Create inserts the role. A duplicate (actor_id, movie_id) pair surfaces as
// ErrConflict, never as an upsert.
func (r *repository) Create(ctx context.Context, role Role) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO roles (actor_id, movie_id) VALUES ($1, $2)`, role.ActorID, role.MovieID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: `actor_id`: %d already has a role in `movie_id`: %d",
			shared.ErrConflict, role.ActorID, role.MovieID)
	}
	return err
}

// Delete removes the role matching the exact (actor_id, movie_id) pair and
// reports whether a row was deleted.
func (r *repository) Delete(ctx context.Context, role Role) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM roles WHERE actor_id = $1 AND movie_id = $2`, role.ActorID, role.MovieID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
