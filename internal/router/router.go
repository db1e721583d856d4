// Package router wires the HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/handler"
)

// RegisterRoutes attaches the booking surface and the health probe.
func RegisterRoutes(e *echo.Echo, h *handler.BookingHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/movies", h.ListMovies)
	e.GET("/movies/:movie_id/theaters", h.ListTheaters)
	e.GET("/movies/:movie_id/theaters/:theater_id/seats", h.ListSeats)
	e.POST("/movies/:movie_id/theaters/:theater_id/bookings", h.Book)
}
