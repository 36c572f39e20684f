package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"fitstudy/internal/delivery/http/controllers"
	"fitstudy/internal/delivery/http/helpers"
	"fitstudy/internal/delivery/http/middleware"
	"fitstudy/internal/domain"
)

// RouterDeps are the collaborators NewRouter wires into routes.
type RouterDeps struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	Bookings       *controllers.BookingController
	Missions       *controllers.MissionController
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.LoggingMiddleware(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(deps.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Verifier, deps.Logger))

		r.Post("/bookings", deps.Bookings.CreateBooking)
		r.Delete("/bookings/{bookingID}", deps.Bookings.CancelBooking)
		r.Get("/me/bookings", deps.Bookings.ListMyBookings)
		r.Get("/me/missions", deps.Missions.ListMyMissions)
	})

	return r
}
