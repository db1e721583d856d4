// Package store implements the in-memory booking core: the movie and
// theater name tables, the per-room seat state, and the BookingStore
// aggregate that coordinates them under a two-level locking scheme.
//
// This file defines the sentinel error values returned by the core.
// Higher layers such as handlers use them to distinguish failure
// scenarios; for example ErrUnknownRoom is translated into an HTTP
// 400 response while booking rejections are not errors at all (see
// BookingOutcome in room.go).
package store

import "errors"

// ErrDuplicateName is returned by a bulk add when at least one of the
// submitted names already exists in the table. The add is rejected as
// a whole; no id is allocated for any name in the batch.
var ErrDuplicateName = errors.New("duplicate name")

// ErrUnknownID is returned by name lookups on an id the table never
// issued (or issued before the last clear).
var ErrUnknownID = errors.New("unknown id")

// ErrUnknownMovie is returned when a movie id does not refer to any
// movie in the catalog.
var ErrUnknownMovie = errors.New("unknown movie")

// ErrUnknownTheater is returned when a theater id does not refer to
// any theater in the catalog.
var ErrUnknownTheater = errors.New("unknown theater")

// ErrUnknownRoom is returned when a (movie, theater) pair does not
// name an assigned room, either because the theater was never
// assigned to the movie or because the movie itself is unknown.
var ErrUnknownRoom = errors.New("unknown room")

// ErrAlreadyAssigned is returned when an assignment names a theater
// that is already playing the movie. The assignment is rejected as a
// whole; no room is created for any theater in the batch.
var ErrAlreadyAssigned = errors.New("theater already assigned to movie")
