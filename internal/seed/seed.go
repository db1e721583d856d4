// Package seed populates an empty store with demo catalog data so a
// fresh deployment has something to browse and book. Seeding is
// driven by SEED_DEMO_DATA and runs once at startup against the
// just-created store.
package seed

import (
	"fmt"

	"github.com/iliyamo/cinema-booking/internal/store"
)

var demoMovies = []string{
	"Terminator",
	"The Matrix",
	"The Flintstones",
}

var demoTheaters = []string{
	"Majestic",
	"Rex",
	"Odeon",
	"Grand Central",
}

// DemoData fills the store with the demo movies and theaters and
// assigns every theater to every movie, giving each movie a bookable
// room in each theater. Any store error aborts seeding; a failure
// here means the process started in an unexpected state.
func DemoData(s *store.BookingStore) error {
	movieIDs, err := s.AddMovies(demoMovies)
	if err != nil {
		return fmt.Errorf("seed movies: %w", err)
	}
	theaterIDs, err := s.AddTheaters(demoTheaters)
	if err != nil {
		return fmt.Errorf("seed theaters: %w", err)
	}
	for _, m := range movieIDs {
		if err := s.AssignTheatersToMovie(m, theaterIDs); err != nil {
			return fmt.Errorf("seed assignments for movie %d: %w", m, err)
		}
	}
	return nil
}
