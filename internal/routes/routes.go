package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/wallclock"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    zerolog.Logger
	Audit  *audit.Dispatcher

	// SlotCache may be nil.
	SlotCache ucBooking.SlotCache
	Clock     domain.Clock
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)

	loc := wallclock.Location(cfg.Timezone)
	clock := d.Clock
	if clock == nil {
		clock = time.Now
	}

	// ======================================================
	// USE CASES (BOOKINGS)
	// ======================================================
	getSlotsUC := ucBooking.NewGetSlots(bookingRepo, d.SlotCache)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		d.SlotCache,
		d.Audit,
		clock,
		loc,
		cfg.MinAdvance(),
	)

	transitionUC := ucBooking.NewTransitionBooking(bookingRepo, d.SlotCache, d.Audit, clock)
	cancelUC := ucBooking.NewCancelBooking(transitionUC)
	overrideUC := ucBooking.NewOverrideBookingStatus(bookingRepo, d.SlotCache, d.Audit, clock)

	listByDateUC := ucBooking.NewListBookingsByDate(bookingRepo)
	listByMonthUC := ucBooking.NewListBookingsByMonth(bookingRepo)
	listMineUC := ucBooking.NewListBookingsForUser(bookingRepo, clock, loc)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg)
	meHandler := handlers.NewMeHandler(d.DB)
	publicHandler := handlers.NewPublicHandler(catalogRepo, getSlotsUC)
	workingHoursHandler := handlers.NewWorkingHoursHandler(scheduleRepo)
	timeOffHandler := handlers.NewTimeOffHandler(scheduleRepo, d.SlotCache, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		cancelUC,
		transitionUC,
		overrideUC,
		listByDateUC,
		listByMonthUC,
		listMineUC,
	)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/services", publicHandler.ListServices)
		api.GET("/barbers", publicHandler.ListBarbers)
		api.GET("/barbers/:id/slots", publicHandler.Slots)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(cfg, bookingRepo))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/bookings", bookingHandler.ListMine)

			customer := secured.Group("", middleware.RequireRole(models.RoleCustomer))
			{
				customer.POST("/bookings", bookingHandler.Create)
				customer.PATCH("/me/bookings/:id/cancel", bookingHandler.CancelMine)
			}

			// ------------------------------
			// BARBER PANEL
			// ------------------------------
			barber := secured.Group("/barber",
				middleware.RequireRole(models.RoleBarber),
				middleware.RequireBarberProfile(),
			)
			{
				barber.GET("/bookings", bookingHandler.ListByDate)
				barber.GET("/bookings/month", bookingHandler.ListByMonth)

				barber.GET("/working-hours", workingHoursHandler.Get)
				barber.PUT("/working-hours", workingHoursHandler.Update)

				barber.GET("/time-off", timeOffHandler.List)
				barber.POST("/time-off", timeOffHandler.Create)
			}

			staff := secured.Group("", middleware.RequireRole(models.RoleBarber, models.RoleAdmin))
			{
				staff.PATCH("/barber/bookings/:id/status", bookingHandler.UpdateStatus)
				staff.DELETE("/barber/time-off/:id", timeOffHandler.Delete)
				staff.PUT("/admin/bookings/:id/status", bookingHandler.OverrideStatus)
			}

			admin := secured.Group("/admin", middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
