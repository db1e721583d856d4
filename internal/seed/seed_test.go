package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking/internal/store"
)

func TestDemoDataGivesEveryMovieABookableRoom(t *testing.T) {
	s := store.New()
	require.NoError(t, DemoData(s))

	movieIDs := s.SortedMovieIDs()
	theaterIDs := s.SortedTheaterIDs()
	require.Len(t, movieIDs, len(demoMovies))
	require.Len(t, theaterIDs, len(demoTheaters))

	for _, m := range movieIDs {
		listing, err := s.ListTheatersForMovie(m)
		require.NoError(t, err)
		assert.NotEmpty(t, listing)
		for _, th := range theaterIDs {
			seats, err := s.ListAvailableSeats(m, th)
			require.NoError(t, err)
			assert.NotEqual(t, "\r\n", seats)
		}
	}
}

func TestDemoDataFailsOnPopulatedStore(t *testing.T) {
	s := store.New()
	require.NoError(t, DemoData(s))
	assert.ErrorIs(t, DemoData(s), store.ErrDuplicateName)
}
