package store

import (
    "fmt"
    "sync"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func seedOneRoom(t *testing.T, s *BookingStore) (movieID, theaterID uint64) {
    t.Helper()
    movieIDs, err := s.AddMovies([]string{"Terminator"})
    require.NoError(t, err)
    theaterIDs, err := s.AddTheaters([]string{"Majestic"})
    require.NoError(t, err)
    require.NoError(t, s.AssignTheatersToMovie(movieIDs[0], theaterIDs))
    return movieIDs[0], theaterIDs[0]
}

func TestAddMoviesListsEveryLine(t *testing.T) {
    s := New()
    names := []string{"Terminator", "The Matrix", "The Flintstones"}
    ids, err := s.AddMovies(names)
    require.NoError(t, err)
    require.Len(t, ids, 3)

    listing := s.ListMovies()
    for i, id := range ids {
        assert.Contains(t, listing, fmt.Sprintf("%d,%s\r\n", id, names[i]))
    }

    // Each new movie gets an (empty) theater listing right away.
    for _, id := range ids {
        theaters, err := s.ListTheatersForMovie(id)
        require.NoError(t, err)
        assert.Equal(t, "", theaters)
    }
}

func TestAddMoviesDuplicateIsAtomic(t *testing.T) {
    s := New()
    ids, err := s.AddMovies([]string{"Terminator"})
    require.NoError(t, err)
    before := s.ListMovies()

    _, err = s.AddMovies([]string{"Terminator"})
    assert.ErrorIs(t, err, ErrDuplicateName)
    assert.Equal(t, before, s.ListMovies())

    // A rejected batch must not add its new names either: the only
    // movie in the catalog is the one that was added.
    _, err = s.AddMovies([]string{"Fresh", "Terminator"})
    assert.ErrorIs(t, err, ErrDuplicateName)
    assert.Equal(t, []uint64{ids[0]}, s.SortedMovieIDs())
}

func TestAddTheatersDuplicateIsAtomic(t *testing.T) {
    s := New()
    _, err := s.AddTheaters([]string{"Majestic", "Rex"})
    require.NoError(t, err)

    _, err = s.AddTheaters([]string{"Odeon", "Rex"})
    assert.ErrorIs(t, err, ErrDuplicateName)
    assert.Len(t, s.SortedTheaterIDs(), 2)
}

func TestAssignTheatersToMovie(t *testing.T) {
    s := New()
    movieIDs, err := s.AddMovies([]string{"Terminator"})
    require.NoError(t, err)
    theaterIDs, err := s.AddTheaters([]string{"Majestic", "Rex"})
    require.NoError(t, err)

    require.NoError(t, s.AssignTheatersToMovie(movieIDs[0], theaterIDs))

    listing, err := s.ListTheatersForMovie(movieIDs[0])
    require.NoError(t, err)
    assert.Contains(t, listing, fmt.Sprintf("%d,Majestic\r\n", theaterIDs[0]))
    assert.Contains(t, listing, fmt.Sprintf("%d,Rex\r\n", theaterIDs[1]))

    seats, err := s.ListAvailableSeats(movieIDs[0], theaterIDs[0])
    require.NoError(t, err)
    assert.Equal(t, allSeatsFree, seats)
}

func TestAssignValidationIsAtomic(t *testing.T) {
    s := New()
    movieIDs, err := s.AddMovies([]string{"Terminator"})
    require.NoError(t, err)
    theaterIDs, err := s.AddTheaters([]string{"Majestic"})
    require.NoError(t, err)

    err = s.AssignTheatersToMovie(999, theaterIDs)
    assert.ErrorIs(t, err, ErrUnknownMovie)

    err = s.AssignTheatersToMovie(movieIDs[0], []uint64{theaterIDs[0], 999})
    assert.ErrorIs(t, err, ErrUnknownTheater)
    listing, lerr := s.ListTheatersForMovie(movieIDs[0])
    require.NoError(t, lerr)
    assert.Equal(t, "", listing, "a rejected assignment must not create any room")

    require.NoError(t, s.AssignTheatersToMovie(movieIDs[0], theaterIDs))
    err = s.AssignTheatersToMovie(movieIDs[0], theaterIDs)
    assert.ErrorIs(t, err, ErrAlreadyAssigned)

    // Re-assignment must not reset room state.
    _, err = s.Book(movieIDs[0], theaterIDs[0], []int{0})
    require.NoError(t, err)
    err = s.AssignTheatersToMovie(movieIDs[0], theaterIDs)
    assert.ErrorIs(t, err, ErrAlreadyAssigned)
    seats, err := s.ListAvailableSeats(movieIDs[0], theaterIDs[0])
    require.NoError(t, err)
    assert.NotContains(t, ","+seats, ",0,")
}

func TestBookScenario(t *testing.T) {
    s := New()
    m, th := seedOneRoom(t, s)

    seats, err := s.ListAvailableSeats(m, th)
    require.NoError(t, err)
    require.Equal(t, allSeatsFree, seats)

    outcome, err := s.Book(m, th, []int{0, 1, 2})
    require.NoError(t, err)
    require.Equal(t, BookingAccepted, outcome)

    seats, err = s.ListAvailableSeats(m, th)
    require.NoError(t, err)
    assert.Equal(t, "3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18,19\r\n", seats)

    outcome, err = s.Book(m, th, []int{3, 4})
    require.NoError(t, err)
    require.Equal(t, BookingAccepted, outcome)

    outcome, err = s.Book(m, th, []int{3, 4})
    require.NoError(t, err)
    assert.Equal(t, BookingNotAvailable, outcome)

    outcome, err = s.Book(m, th, []int{25, 26})
    require.NoError(t, err)
    assert.Equal(t, BookingInvalid, outcome)

    seats, err = s.ListAvailableSeats(m, th)
    require.NoError(t, err)
    assert.Equal(t, "5,6,7,8,9,10,11,12,13,14,15,16,17,18,19\r\n", seats)
}

func TestBookUnknownRoom(t *testing.T) {
    s := New()
    m, th := seedOneRoom(t, s)

    _, err := s.Book(m, th+1, []int{0})
    assert.ErrorIs(t, err, ErrUnknownRoom)
    _, err = s.Book(m+1, th, []int{0})
    assert.ErrorIs(t, err, ErrUnknownRoom)
    _, err = s.ListAvailableSeats(m, th+1)
    assert.ErrorIs(t, err, ErrUnknownRoom)
}

func TestListTheatersForUnknownMovie(t *testing.T) {
    s := New()
    _, err := s.ListTheatersForMovie(1)
    assert.ErrorIs(t, err, ErrUnknownMovie)
}

func TestClearIsIdempotentAndKeepsCounters(t *testing.T) {
    s := New()
    m, th := seedOneRoom(t, s)
    _, err := s.Book(m, th, []int{0})
    require.NoError(t, err)

    s.Clear()
    s.Clear()

    assert.Equal(t, "", s.ListMovies())
    assert.Empty(t, s.SortedMovieIDs())
    assert.Empty(t, s.SortedTheaterIDs())
    _, err = s.ListTheatersForMovie(m)
    assert.ErrorIs(t, err, ErrUnknownMovie)
    _, err = s.ListAvailableSeats(m, th)
    assert.ErrorIs(t, err, ErrUnknownRoom)

    // Counters keep running: the same names come back with fresh ids.
    movieIDs, err := s.AddMovies([]string{"Terminator"})
    require.NoError(t, err)
    assert.Greater(t, movieIDs[0], m)
}

func TestMovieAndTheaterNameLookups(t *testing.T) {
    s := New()
    m, th := seedOneRoom(t, s)

    name, err := s.MovieName(m)
    require.NoError(t, err)
    assert.Equal(t, "Terminator", name)

    name, err = s.TheaterName(th)
    require.NoError(t, err)
    assert.Equal(t, "Majestic", name)

    _, err = s.MovieName(999)
    assert.ErrorIs(t, err, ErrUnknownID)
}

// 1000 concurrent bookings on 1000 distinct rooms must all be
// accepted, and each room must end with exactly its seats booked.
func TestParallelBookingsOnDistinctRooms(t *testing.T) {
    s := New()

    const nMovies, nTheaters = 40, 25 // 1000 rooms
    movieNames := make([]string, nMovies)
    for i := range movieNames {
        movieNames[i] = fmt.Sprintf("movie-%d", i)
    }
    theaterNames := make([]string, nTheaters)
    for i := range theaterNames {
        theaterNames[i] = fmt.Sprintf("theater-%d", i)
    }
    movieIDs, err := s.AddMovies(movieNames)
    require.NoError(t, err)
    theaterIDs, err := s.AddTheaters(theaterNames)
    require.NoError(t, err)
    for _, m := range movieIDs {
        require.NoError(t, s.AssignTheatersToMovie(m, theaterIDs))
    }

    var wg sync.WaitGroup
    outcomes := make(chan BookingOutcome, nMovies*nTheaters)
    for i, m := range movieIDs {
        for j, th := range theaterIDs {
            wg.Add(1)
            go func(m, th uint64, seat int) {
                defer wg.Done()
                outcome, err := s.Book(m, th, []int{seat})
                if err == nil {
                    outcomes <- outcome
                }
            }(m, th, (i+j)%SeatsPerRoom)
        }
    }
    wg.Wait()
    close(outcomes)

    accepted := 0
    for outcome := range outcomes {
        require.Equal(t, BookingAccepted, outcome)
        accepted++
    }
    assert.Equal(t, nMovies*nTheaters, accepted)

    for i, m := range movieIDs {
        for j, th := range theaterIDs {
            seats, err := s.ListAvailableSeats(m, th)
            require.NoError(t, err)
            booked := fmt.Sprintf("%d", (i+j)%SeatsPerRoom)
            assert.NotContains(t, ","+seats[:len(seats)-2]+",", ","+booked+",")
        }
    }
}

// Readers and bookers run while a writer adds catalog entries; the
// race detector plus these invariant checks cover the lock contract.
func TestReadersWritersAndBookersInterleave(t *testing.T) {
    s := New()
    m, th := seedOneRoom(t, s)

    var readers, mutators sync.WaitGroup
    stop := make(chan struct{})

    for r := 0; r < 4; r++ {
        readers.Add(1)
        go func() {
            defer readers.Done()
            for {
                select {
                case <-stop:
                    return
                default:
                }
                _ = s.ListMovies()
                if _, err := s.ListAvailableSeats(m, th); err != nil {
                    t.Error(err)
                    return
                }
            }
        }()
    }

    mutators.Add(1)
    go func() {
        defer mutators.Done()
        for seat := 0; seat < SeatsPerRoom; seat++ {
            outcome, err := s.Book(m, th, []int{seat})
            if err != nil || outcome != BookingAccepted {
                t.Errorf("book seat %d: outcome=%v err=%v", seat, outcome, err)
                return
            }
        }
    }()

    mutators.Add(1)
    go func() {
        defer mutators.Done()
        for i := 0; i < 50; i++ {
            if _, err := s.AddMovies([]string{fmt.Sprintf("extra-%d", i)}); err != nil {
                t.Error(err)
                return
            }
        }
    }()

    mutators.Wait()
    close(stop)
    readers.Wait()

    seats, err := s.ListAvailableSeats(m, th)
    require.NoError(t, err)
    assert.Equal(t, "\r\n", seats)
    assert.Len(t, s.SortedMovieIDs(), 51)
}

func TestDefaultIsSingleton(t *testing.T) {
    a := Default()
    b := Default()
    require.Same(t, a, b)
    a.Clear()
}
