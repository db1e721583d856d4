// Package handler exposes the HTTP surface of the booking service.
// Listings are served as text/plain bodies containing the store's
// rendered cache strings verbatim (CRLF line endings included); the
// handler does no rendering of its own. Store errors map
// onto HTTP statuses here: business rejections become 403, everything
// the client got wrong (unknown ids, malformed numbers, out-of-range
// seats) becomes 400.
package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-booking/internal/queue"
    "github.com/iliyamo/cinema-booking/internal/store"
)

// BookingOKBody is the fixed success body of a booking request.
const BookingOKBody = "Booking OK" + store.EOL

// BookingHandler serves the catalog listings and the booking
// endpoint. Events is optional; when set, every accepted booking is
// announced on the queue in the background.
type BookingHandler struct {
    Store  *store.BookingStore // the in-memory booking core
    Events *queue.Publisher    // optional booking.accepted publisher
}

// NewBookingHandler constructs a handler and panics if the store is
// missing. A nil publisher is allowed and disables event publishing.
func NewBookingHandler(s *store.BookingStore, events *queue.Publisher) *BookingHandler {
    if s == nil {
        panic("nil store passed to NewBookingHandler")
    }
    return &BookingHandler{Store: s, Events: events}
}

// ListMovies returns the rendered movie catalog.
func (h *BookingHandler) ListMovies(c echo.Context) error {
    return c.String(http.StatusOK, h.Store.ListMovies())
}

// ListTheaters returns the theaters playing the movie in the path.
func (h *BookingHandler) ListTheaters(c echo.Context) error {
    movieID, err := strconv.ParseUint(c.Param("movie_id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
    }
    listing, err := h.Store.ListTheatersForMovie(movieID)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown movie"})
    }
    return c.String(http.StatusOK, listing)
}

// ListSeats returns the free seats of the room named by the path.
func (h *BookingHandler) ListSeats(c echo.Context) error {
    movieID, theaterID, ok := roomParams(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    listing, err := h.Store.ListAvailableSeats(movieID, theaterID)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown room"})
    }
    return c.String(http.StatusOK, listing)
}

// Book books the seats given in the `seats` query parameter (comma
// separated indices) in the room named by the path. Accepted bookings
// answer 200 with the fixed OK body; seats already taken answer 403;
// out-of-range indices, unknown rooms and malformed input answer 400.
func (h *BookingHandler) Book(c echo.Context) error {
    movieID, theaterID, ok := roomParams(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    seats, err := parseSeats(c.QueryParam("seats"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat list"})
    }
    outcome, err := h.Store.Book(movieID, theaterID, seats)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown room"})
    }
    switch outcome {
    case store.BookingAccepted:
        h.announce(movieID, theaterID, seats)
        return c.String(http.StatusOK, BookingOKBody)
    case store.BookingNotAvailable:
        return c.JSON(http.StatusForbidden, echo.Map{"error": "seats not available"})
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seats"})
    }
}

// announce publishes a booking.accepted event in the background.
// Publishing is best effort: the booking is already committed and the
// response must not wait on the broker.
func (h *BookingHandler) announce(movieID, theaterID uint64, seats []int) {
    if h.Events == nil {
        return
    }
    movieTitle, _ := h.Store.MovieName(movieID)
    theaterName, _ := h.Store.TheaterName(theaterID)
    ev := queue.BookingAcceptedEvent{
        MovieID:     movieID,
        MovieTitle:  movieTitle,
        TheaterID:   theaterID,
        TheaterName: theaterName,
        Seats:       seats,
        AcceptedAt:  time.Now().UTC().Format(time.RFC3339),
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = h.Events.PublishBookingAccepted(ctx, ev)
    }()
}

// roomParams parses the movie and theater ids from the route path.
func roomParams(c echo.Context) (movieID, theaterID uint64, ok bool) {
    movieID, err := strconv.ParseUint(c.Param("movie_id"), 10, 64)
    if err != nil {
        return 0, 0, false
    }
    theaterID, err = strconv.ParseUint(c.Param("theater_id"), 10, 64)
    if err != nil {
        return 0, 0, false
    }
    return movieID, theaterID, true
}

// parseSeats turns "0,1,2" into seat indices. An empty parameter is
// an empty booking, which the store accepts as a no-op. Indices that
// parse but fall outside the room are the store's call, not ours.
func parseSeats(raw string) ([]int, error) {
    raw = strings.TrimSpace(raw)
    if raw == "" {
        return nil, nil
    }
    parts := strings.Split(raw, ",")
    seats := make([]int, 0, len(parts))
    for _, p := range parts {
        n, err := strconv.Atoi(strings.TrimSpace(p))
        if err != nil {
            return nil, err
        }
        seats = append(seats, n)
    }
    return seats, nil
}
