// Package roles manages the join records linking actors to movies. A role
// has composite identity (actor_id, movie_id), carries no other attributes,
// and is immutable once created.
package roles

// Role expresses that a specific actor performs in a specific movie.
type Role struct {
	ActorID int64
	MovieID int64
}
