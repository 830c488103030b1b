package movies

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/castboard/castboard/internal/shared"
)

// Repository is the persistence contract for movies.
type Repository interface {
	List(ctx context.Context) ([]Movie, error)
	Get(ctx context.Context, id int64) (Movie, error)
	Create(ctx context.Context, movie Movie) (Movie, error)
	Update(ctx context.Context, movie Movie) error
	Delete(ctx context.Context, id int64) error
	Cast(ctx context.Context, movieIDs []int64) (map[int64][]CastMember, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Movie, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, release_date FROM movies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []Movie
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.ReleaseDate); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Movie, error) {
	var m Movie
	err := r.pool.QueryRow(ctx, `SELECT id, title, release_date FROM movies WHERE id = $1`, id).
		Scan(&m.ID, &m.Title, &m.ReleaseDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return Movie{}, fmt.Errorf("%w: unable to find the specified movie_id: %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return Movie{}, err
	}
	return m, nil
}

func (r *repository) Create(ctx context.Context, movie Movie) (Movie, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO movies (title, release_date) VALUES ($1, $2) RETURNING id`,
		movie.Title, movie.ReleaseDate).Scan(&movie.ID)
	if err != nil {
		return Movie{}, err
	}
	return movie, nil
}

func (r *repository) Update(ctx context.Context, movie Movie) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE movies SET title = $1, release_date = $2 WHERE id = $3`,
		movie.Title, movie.ReleaseDate, movie.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: unable to find the specified movie_id: %d", shared.ErrNotFound, movie.ID)
	}
	return nil
}

// Delete removes the movie row only. Roles never cascade: rows referencing
// the movie stay behind until removed explicitly.
func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: unable to find the specified movie_id: %d", shared.ErrNotFound, id)
	}
	return nil
}

func (r *repository) Cast(ctx context.Context, movieIDs []int64) (map[int64][]CastMember, error) {
	cast := make(map[int64][]CastMember, len(movieIDs))
	if len(movieIDs) == 0 {
		return cast, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT r.movie_id, a.name, a.date_of_birth, a.gender
		   FROM roles r
		   JOIN actors a ON a.id = r.actor_id
		  WHERE r.movie_id = ANY($1)
		  ORDER BY a.id`, movieIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var movieID int64
		var member CastMember
		if err := rows.Scan(&movieID, &member.Name, &member.DateOfBirth, &member.Gender); err != nil {
			return nil, err
		}
		member.Age = shared.YearsSince(member.DateOfBirth)
		cast[movieID] = append(cast[movieID], member)
	}
	return cast, rows.Err()
}
