// Package actors manages the casting agency's actor records.
package actors

// Actor is the stored entity. Dates are kept verbatim as YYYY-MM-DD strings
// and only reinterpreted for the derived age.
type Actor struct {
	ID          int64
	Name        string
	DateOfBirth *string
	Gender      *string
}

// MovieCredit is a related movie's self view: title and release date only,
// which keeps the embedded representation from expanding recursively.
type MovieCredit struct {
	Title       string  `json:"title"`
	ReleaseDate *string `json:"release_date"`
}

// View is the external representation of an actor.
type View struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	DateOfBirth *string       `json:"date_of_birth"`
	Age         *int          `json:"age"`
	Gender      *string       `json:"gender"`
	Movies      []MovieCredit `json:"movies"`
}
