package movies

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castboard/castboard/internal/shared"
)

type mockRepository struct {
	movies map[int64]Movie
	cast   map[int64][]CastMember
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		movies: make(map[int64]Movie),
		cast:   make(map[int64][]CastMember),
		nextID: 1,
	}
}

func (m *mockRepository) List(ctx context.Context) ([]Movie, error) {
	var out []Movie
	for id := int64(1); id < m.nextID; id++ {
		if movie, ok := m.movies[id]; ok {
			out = append(out, movie)
		}
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Movie, error) {
	movie, ok := m.movies[id]
	if !ok {
		return Movie{}, fmt.Errorf("%w: unable to find the specified movie_id: %d", shared.ErrNotFound, id)
	}
	return movie, nil
}

func (m *mockRepository) Create(ctx context.Context, movie Movie) (Movie, error) {
	movie.ID = m.nextID
	m.nextID++
	m.movies[movie.ID] = movie
	return movie, nil
}

func (m *mockRepository) Update(ctx context.Context, movie Movie) error {
	if _, ok := m.movies[movie.ID]; !ok {
		return fmt.Errorf("%w: unable to find the specified movie_id: %d", shared.ErrNotFound, movie.ID)
	}
	m.movies[movie.ID] = movie
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.movies[id]; !ok {
		return fmt.Errorf("%w: unable to find the specified movie_id: %d", shared.ErrNotFound, id)
	}
	delete(m.movies, id)
	return nil
}

func (m *mockRepository) Cast(ctx context.Context, movieIDs []int64) (map[int64][]CastMember, error) {
	out := make(map[int64][]CastMember)
	for _, id := range movieIDs {
		if c, ok := m.cast[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func TestCreateMovie(t *testing.T) {
	service := NewService(newMockRepository(), nil)

	view, err := service.Create(context.Background(), CreateInput{
		Title:       "Nomadland",
		ReleaseDate: strPtr("2021-02-19"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.ID)
	assert.Equal(t, "Nomadland", view.Title)
	require.NotNil(t, view.ReleaseDate)
	assert.Equal(t, "2021-02-19", *view.ReleaseDate)
	assert.Equal(t, []CastMember{}, view.Actors)
}

func TestCreateMovieMissingTitle(t *testing.T) {
	service := NewService(newMockRepository(), nil)

	_, err := service.Create(context.Background(), CreateInput{})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateMovieBadReleaseDate(t *testing.T) {
	service := NewService(newMockRepository(), nil)

	_, err := service.Create(context.Background(), CreateInput{
		Title:       "X",
		ReleaseDate: strPtr("2021/02/19"),
	})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateMovie(t *testing.T) {
	service := NewService(newMockRepository(), nil)

	created, err := service.Create(context.Background(), CreateInput{Title: "Working Title"})
	require.NoError(t, err)

	view, err := service.Update(context.Background(), created.ID, UpdateInput{
		ReleaseDate: strPtr("2027-06-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Working Title", view.Title, "unpatched field stays unchanged")
	require.NotNil(t, view.ReleaseDate)
	assert.Equal(t, "2027-06-01", *view.ReleaseDate)
}

func TestUpdateMovieEmptyPatch(t *testing.T) {
	service := NewService(newMockRepository(), nil)

	created, err := service.Create(context.Background(), CreateInput{Title: "Keep"})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), created.ID, UpdateInput{})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateMovieNotFound(t *testing.T) {
	service := NewService(newMockRepository(), nil)

	_, err := service.Update(context.Background(), 42, UpdateInput{Title: strPtr("X")})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteMovie(t *testing.T) {
	service := NewService(newMockRepository(), nil)

	created, err := service.Create(context.Background(), CreateInput{Title: "Gone"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	err = service.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGetMovieEmbedsCast(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)

	created, err := service.Create(context.Background(), CreateInput{Title: "Ensemble"})
	require.NoError(t, err)
	repo.cast[created.ID] = []CastMember{{Name: "Lead", Gender: strPtr("female")}}

	view, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, view.Actors, 1)
	assert.Equal(t, "Lead", view.Actors[0].Name)
	assert.Nil(t, view.Actors[0].Age, "cast member without birth date has no age")
}
