// Package movies manages the casting agency's movie records.
package movies

// Movie is the stored entity.
type Movie struct {
	ID          int64
	Title       string
	ReleaseDate *string
}

// CastMember is a related actor's self view; it carries no nested movie list
// so the embedded representation stays bounded.
type CastMember struct {
	Name        string  `json:"name"`
	DateOfBirth *string `json:"date_of_birth"`
	Age         *int    `json:"age"`
	Gender      *string `json:"gender"`
}

// View is the external representation of a movie.
type View struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	ReleaseDate *string      `json:"release_date"`
	Actors      []CastMember `json:"actors"`
}
