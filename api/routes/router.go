// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"bookly/internal/appointments"
	"bookly/internal/bookings"
	"bookly/internal/notifications"
	"bookly/internal/questions"
	"bookly/internal/reservations"
	"bookly/internal/resources"
	"bookly/internal/schedules"
	"bookly/internal/shared/config"
	"bookly/internal/shared/database"
	"bookly/internal/shared/middleware"
	"bookly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher
	sweeper   *reservations.Sweeper
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// Sweeper returns the background hold sweeper built during route setup.
func (r *Router) Sweeper() *reservations.Sweeper {
	return r.sweeper
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes. Auth is optional across the surface: customer identity
	// rides in request bodies, with token claims attached when present.
	api := engine.Group(r.config.GetAPIBasePath())
	api.Use(middleware.OptionalAuthWithConfig(r.config))
	{
		// Shared repositories; reservations counts committed bookings
		// through the same booking repository the management routes use
		appointmentRepo := appointments.NewRepository(r.db.GetPostgreSQL())
		scheduleRepo := schedules.NewRepository(r.db.GetPostgreSQL())
		questionRepo := questions.NewRepository(r.db.GetPostgreSQL())
		resourceRepo := resources.NewRepository(r.db.GetPostgreSQL())
		bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())

		r.setupAppointmentRoutes(api, appointmentRepo, scheduleRepo, questionRepo)
		r.setupBookingRoutes(api, bookingRepo)
		r.setupReservationRoutes(api, appointmentRepo, scheduleRepo, questionRepo, resourceRepo, bookingRepo)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "bookly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "bookly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAppointmentRoutes configures the public appointment-type read routes
func (r *Router) setupAppointmentRoutes(rg *gin.RouterGroup,
	appointmentRepo appointments.Repository,
	scheduleRepo schedules.Repository,
	questionRepo questions.Repository,
) {
	appointmentService := appointments.NewService(appointmentRepo, scheduleRepo, questionRepo)
	appointmentService.SetCacheService(cache.NewService(r.db.GetRedisClient()))
	appointmentController := appointments.NewController(appointmentService)

	appointments.SetupAppointmentRoutes(rg, appointmentController)
}

// setupBookingRoutes configures booking management routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup, bookingRepo bookings.Repository) {
	bookingService := bookings.NewService(bookingRepo, r.publisher)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupReservationRoutes configures the hold lifecycle routes and the
// background sweeper that shares the reservation repository
func (r *Router) setupReservationRoutes(rg *gin.RouterGroup,
	appointmentRepo appointments.Repository,
	scheduleRepo schedules.Repository,
	questionRepo questions.Repository,
	resourceRepo resources.Repository,
	bookingRepo bookings.Repository,
) {
	reservationRepo := reservations.NewRepository(r.db.GetPostgreSQL(), bookingRepo)
	reservationService := reservations.NewService(
		reservationRepo,
		appointmentRepo,
		scheduleRepo,
		resourceRepo,
		questionRepo,
		r.publisher,
		r.config.Reservation.HoldTTL,
	)
	reservationController := reservations.NewController(reservationService)

	r.sweeper = reservations.NewSweeper(reservationRepo, r.config.Reservation.SweepInterval)

	reservations.SetupReservationRoutes(rg, reservationController)
}
