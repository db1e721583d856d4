// Package queue defines the booking event payload, its publisher and
// the background consumer that mirrors accepted bookings into a log
// file. The broker is optional infrastructure: the booking core never
// waits on it and the server runs unchanged without it.
package queue

// BookingAcceptedEvent is published after a booking is accepted. It
// carries enough information for downstream consumers to log, notify
// or feed analytics without querying the store. Consumers must
// tolerate unknown fields.
type BookingAcceptedEvent struct {
    MovieID     uint64 `json:"movie_id"`
    MovieTitle  string `json:"movie_title"`
    TheaterID   uint64 `json:"theater_id"`
    TheaterName string `json:"theater_name"`
    Seats       []int  `json:"seats"`
    AcceptedAt  string `json:"accepted_at"`
}
