package actors

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/castboard/castboard/internal/shared"
)

// Repository is the persistence contract for actors. Callers receive copies,
// never live references into the store.
type Repository interface {
	List(ctx context.Context) ([]Actor, error)
	Get(ctx context.Context, id int64) (Actor, error)
	Create(ctx context.Context, actor Actor) (Actor, error)
	Update(ctx context.Context, actor Actor) error
	Delete(ctx context.Context, id int64) error
	Credits(ctx context.Context, actorIDs []int64) (map[int64][]MovieCredit, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Actor, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, date_of_birth, gender FROM actors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actors []Actor
	for rows.Next() {
		var a Actor
		if err := rows.Scan(&a.ID, &a.Name, &a.DateOfBirth, &a.Gender); err != nil {
			return nil, err
		}
		actors = append(actors, a)
	}
	return actors, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Actor, error) {
	var a Actor
	err := r.pool.QueryRow(ctx, `SELECT id, name, date_of_birth, gender FROM actors WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.DateOfBirth, &a.Gender)
	if errors.Is(err, pgx.ErrNoRows) {
		return Actor{}, fmt.Errorf("%w: actor with actor_id %d was not found", shared.ErrNotFound, id)
	}
	if err != nil {
		return Actor{}, err
	}
	return a, nil
}

func (r *repository) Create(ctx context.Context, actor Actor) (Actor, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO actors (name, date_of_birth, gender) VALUES ($1, $2, $3) RETURNING id`,
		actor.Name, actor.DateOfBirth, actor.Gender).Scan(&actor.ID)
	if err != nil {
		return Actor{}, err
	}
	return actor, nil
}

func (r *repository) Update(ctx context.Context, actor Actor) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE actors SET name = $1, date_of_birth = $2, gender = $3 WHERE id = $4`,
		actor.Name, actor.DateOfBirth, actor.Gender, actor.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: actor with actor_id %d was not found", shared.ErrNotFound, actor.ID)
	}
	return nil
}

// Delete removes the actor row only. Roles never cascade: rows referencing
// the actor stay behind until removed explicitly.
func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM actors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: actor with actor_id %d was not found", shared.ErrNotFound, id)
	}
	return nil
}

func (r *repository) Credits(ctx context.Context, actorIDs []int64) (map[int64][]MovieCredit, error) {
	credits := make(map[int64][]MovieCredit, len(actorIDs))
	if len(actorIDs) == 0 {
		return credits, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT r.actor_id, m.title, m.release_date
		   FROM roles r
		   JOIN movies m ON m.id = r.movie_id
		  WHERE r.actor_id = ANY($1)
		  ORDER BY m.id`, actorIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var actorID int64
		var credit MovieCredit
		if err := rows.Scan(&actorID, &credit.Title, &credit.ReleaseDate); err != nil {
			return nil, err
		}
		credits[actorID] = append(credits[actorID], credit)
	}
	return credits, rows.Err()
}
