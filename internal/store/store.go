package store

import (
    "sort"
    "strconv"
    "strings"
    "sync"
)

// BookingStore is the aggregate the HTTP layer talks to: the movie
// and theater catalogs, the movie→theater→room map, and a per-movie
// rendered listing of assigned theaters.
//
// Locking is two-level. The store-wide reader/writer lock serialises
// structural mutations (adding to the catalogs, assigning theaters,
// clearing) against everything else; listings, id snapshots and —
// deliberately — bookings take only its read side, so bookings never
// block each other or block reads. A booking then takes the target
// room's own write lock, which serialises bookings to the same room
// while bookings to different rooms proceed in parallel. Holding the
// store-wide read lock keeps the room pointer valid for the duration.
//
// Every mutator validates its whole batch before changing any state,
// so a failed call leaves the store exactly as it found it.
type BookingStore struct {
    mu              sync.RWMutex
    movies          *NameTable
    theaters        *NameTable
    rooms           map[uint64]map[uint64]*Room // movie id → theater id → room
    theatersByMovie map[uint64]string           // movie id → rendered theater listing
}

// New returns an empty store. Production code uses the process-wide
// Default instance; tests construct their own.
func New() *BookingStore {
    return &BookingStore{
        movies:          NewNameTable(),
        theaters:        NewNameTable(),
        rooms:           make(map[uint64]map[uint64]*Room),
        theatersByMovie: make(map[uint64]string),
    }
}

var (
    defaultStore *BookingStore
    defaultOnce  sync.Once
)

// Default returns the process-wide store, creating it on first use.
func Default() *BookingStore {
    defaultOnce.Do(func() { defaultStore = New() })
    return defaultStore
}

// AddMovies adds a batch of movie names to the catalog and returns
// their ids in batch order. For each new movie an empty room sub-map
// and an empty theater listing are created. Fails with
// ErrDuplicateName without any effect if a name already exists.
func (s *BookingStore) AddMovies(names []string) ([]uint64, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    ids, err := s.movies.Add(names)
    if err != nil {
        return nil, err
    }
    for _, id := range ids {
        s.rooms[id] = make(map[uint64]*Room)
        s.rebuildTheaterListing(id)
    }
    return ids, nil
}

// AddTheaters adds a batch of theater names to the catalog and
// returns their ids in batch order. Fails with ErrDuplicateName
// without any effect if a name already exists.
func (s *BookingStore) AddTheaters(names []string) ([]uint64, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.theaters.Add(names)
}

// AssignTheatersToMovie creates one fresh fully-available room per
// theater id under the given movie. The batch is atomic: an unknown
// movie (ErrUnknownMovie), an unknown theater (ErrUnknownTheater) or
// a theater already playing the movie (ErrAlreadyAssigned) rejects
// the whole call with no rooms created.
func (s *BookingStore) AssignTheatersToMovie(movieID uint64, theaterIDs []uint64) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if !s.movies.HasID(movieID) {
        return ErrUnknownMovie
    }
    byTheater := s.rooms[movieID]
    seen := make(map[uint64]struct{}, len(theaterIDs))
    for _, tid := range theaterIDs {
        if !s.theaters.HasID(tid) {
            return ErrUnknownTheater
        }
        if _, ok := byTheater[tid]; ok {
            return ErrAlreadyAssigned
        }
        if _, ok := seen[tid]; ok {
            return ErrAlreadyAssigned
        }
        seen[tid] = struct{}{}
    }
    for _, tid := range theaterIDs {
        byTheater[tid] = NewRoom()
    }
    s.rebuildTheaterListing(movieID)
    return nil
}

// ListMovies returns the rendered movie catalog.
func (s *BookingStore) ListMovies() string {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.movies.Rendered()
}

// ListTheatersForMovie returns the rendered listing of theaters
// playing the movie, or ErrUnknownMovie.
func (s *BookingStore) ListTheatersForMovie(movieID uint64) (string, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    listing, ok := s.theatersByMovie[movieID]
    if !ok {
        return "", ErrUnknownMovie
    }
    return listing, nil
}

// ListAvailableSeats returns the free-seat listing for the room
// identified by (movieID, theaterID), or ErrUnknownRoom.
func (s *BookingStore) ListAvailableSeats(movieID, theaterID uint64) (string, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    room, ok := s.rooms[movieID][theaterID]
    if !ok {
        return "", ErrUnknownRoom
    }
    return room.Available(), nil
}

// Book books the seat set in the room identified by (movieID,
// theaterID), or fails with ErrUnknownRoom. It holds only the
// store-wide read lock — the room's own write lock serialises
// bookings to the same room, and bookings to other rooms as well as
// all listings proceed concurrently.
func (s *BookingStore) Book(movieID, theaterID uint64, seats []int) (BookingOutcome, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    room, ok := s.rooms[movieID][theaterID]
    if !ok {
        return BookingInvalid, ErrUnknownRoom
    }
    return room.Book(seats), nil
}

// MovieName returns the catalog name for a movie id, or ErrUnknownID.
func (s *BookingStore) MovieName(movieID uint64) (string, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.movies.GetName(movieID)
}

// TheaterName returns the catalog name for a theater id, or ErrUnknownID.
func (s *BookingStore) TheaterName(theaterID uint64) (string, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.theaters.GetName(theaterID)
}

// SortedMovieIDs returns a snapshot of every movie id, ascending.
func (s *BookingStore) SortedMovieIDs() []uint64 {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.movies.SortedIDs()
}

// SortedTheaterIDs returns a snapshot of every theater id, ascending.
func (s *BookingStore) SortedTheaterIDs() []uint64 {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.theaters.SortedIDs()
}

// Clear empties both catalogs, the room map and the theater listing
// cache, returning the store to its initial state. The id counters
// are not reset, so ids allocated after a clear continue from where
// the old ones stopped. Clearing twice is the same as clearing once.
func (s *BookingStore) Clear() {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.movies.Clear()
    s.theaters.Clear()
    s.rooms = make(map[uint64]map[uint64]*Room)
    s.rebuildTheaterListingsAll()
}

// rebuildTheaterListing re-renders the theater listing for one movie
// from its current room sub-map: one `<theater_id>,<theater_name>`
// line per assigned theater, sorted ascending by theater id. Caller
// holds the store write lock.
func (s *BookingStore) rebuildTheaterListing(movieID uint64) {
    byTheater := s.rooms[movieID]
    ids := make([]uint64, 0, len(byTheater))
    for tid := range byTheater {
        ids = append(ids, tid)
    }
    sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
    var b strings.Builder
    for _, tid := range ids {
        name, err := s.theaters.GetName(tid)
        if err != nil {
            continue // unreachable: assignment validates theater ids
        }
        b.WriteString(strconv.FormatUint(tid, 10))
        b.WriteByte(',')
        b.WriteString(name)
        b.WriteString(EOL)
    }
    s.theatersByMovie[movieID] = b.String()
}

// rebuildTheaterListingsAll wipes the listing cache and re-renders it
// for every movie in the room map, including movies with no assigned
// theaters. Caller holds the store write lock.
func (s *BookingStore) rebuildTheaterListingsAll() {
    s.theatersByMovie = make(map[uint64]string, len(s.rooms))
    for movieID := range s.rooms {
        s.rebuildTheaterListing(movieID)
    }
}
