package roles

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castboard/castboard/internal/shared"
)

type mockRepository struct {
	actors map[int64]bool
	movies map[int64]bool
	roles  map[Role]bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		actors: make(map[int64]bool),
		movies: make(map[int64]bool),
		roles:  make(map[Role]bool),
	}
}

func (m *mockRepository) ActorExists(ctx context.Context, actorID int64) (bool, error) {
	return m.actors[actorID], nil
}

func (m *mockRepository) MovieExists(ctx context.Context, movieID int64) (bool, error) {
	return m.movies[movieID], nil
}

func (m *mockRepository) Create(ctx context.Context, role Role) error {
	if m.roles[role] {
		return fmt.Errorf("%w: `actor_id`: %d already has a role in `movie_id`: %d",
			shared.ErrConflict, role.ActorID, role.MovieID)
	}
	m.roles[role] = true
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, role Role) (bool, error) {
	if !m.roles[role] {
		return false, nil
	}
	delete(m.roles, role)
	return true, nil
}

func newFixture() (*mockRepository, *Service) {
	repo := newMockRepository()
	repo.actors[1] = true
	repo.movies[10] = true
	return repo, NewService(repo, nil)
}

func TestAddRole(t *testing.T) {
	repo, service := newFixture()

	require.NoError(t, service.Add(context.Background(), 10, 1))
	assert.True(t, repo.roles[Role{ActorID: 1, MovieID: 10}])
}

func TestAddRoleDuplicate(t *testing.T) {
	_, service := newFixture()

	require.NoError(t, service.Add(context.Background(), 10, 1))
	err := service.Add(context.Background(), 10, 1)
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestAddRoleUnknownMovie(t *testing.T) {
	repo, service := newFixture()

	err := service.Add(context.Background(), 99, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, repo.roles, "no role may be created for a missing movie")
}

func TestAddRoleUnknownActor(t *testing.T) {
	repo, service := newFixture()

	err := service.Add(context.Background(), 10, 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, repo.roles, "no role may be created for a missing actor")
}

func TestRemoveRole(t *testing.T) {
	repo, service := newFixture()

	require.NoError(t, service.Add(context.Background(), 10, 1))
	require.NoError(t, service.Remove(context.Background(), 10, 1))
	assert.Empty(t, repo.roles)
}

func TestRemoveRoleTwice(t *testing.T) {
	_, service := newFixture()

	require.NoError(t, service.Add(context.Background(), 10, 1))
	require.NoError(t, service.Remove(context.Background(), 10, 1))

	err := service.Remove(context.Background(), 10, 1)
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestRemoveRoleUnknownIDs(t *testing.T) {
	_, service := newFixture()

	err := service.Remove(context.Background(), 99, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = service.Remove(context.Background(), 10, 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
