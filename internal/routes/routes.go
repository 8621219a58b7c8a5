package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/restaurant-reservations/internal/audit"
	"github.com/BruksfildServices01/restaurant-reservations/internal/config"
	"github.com/BruksfildServices01/restaurant-reservations/internal/domain/menu"
	"github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-reservations/internal/handlers"
	"github.com/BruksfildServices01/restaurant-reservations/internal/middleware"
	"github.com/BruksfildServices01/restaurant-reservations/internal/session"
	ucReservation "github.com/BruksfildServices01/restaurant-reservations/internal/usecase/reservation"
)

// Deps are the process singletons the API is wired from. DB and Images may
// be nil (memory store, no object storage).
type Deps struct {
	Config *config.Config

	DB           *gorm.DB
	Reservations reservation.Repository
	Menu         menu.Repository
	Sessions     session.Store
	Images       handlers.ImageStore
	Audit        *audit.Dispatcher

	Options ucReservation.Options
}

func RegisterRoutes(r *gin.Engine, deps Deps) {

	// ======================================================
	// USE CASES: RESERVATIONS
	// ======================================================
	opts := deps.Options

	submitUC := ucReservation.NewSubmitReservation(deps.Reservations, deps.Audit, opts)
	transitionUC := ucReservation.NewTransitionReservation(deps.Reservations, deps.Audit, opts)
	updateUC := ucReservation.NewUpdateReservation(deps.Reservations, deps.Audit, opts)
	deleteUC := ucReservation.NewDeleteReservation(deps.Reservations, deps.Audit, opts)
	getUC := ucReservation.NewGetReservation(deps.Reservations, opts)
	listUC := ucReservation.NewListReservations(deps.Reservations, opts)
	availabilityUC := ucReservation.NewGetAvailability(deps.Reservations, opts)
	statsUC := ucReservation.NewReservationStats(deps.Reservations, opts)

	// ======================================================
	// HANDLERS
	// ======================================================
	reservationHandler := handlers.NewReservationHandler(
		submitUC,
		transitionUC,
		updateUC,
		deleteUC,
		getUC,
		listUC,
		availabilityUC,
	)

	menuHandler := handlers.NewMenuHandler(deps.Menu, deps.Images, deps.Audit, opts.StoreTimeout)
	authHandler := handlers.NewAuthHandler(deps.Config, deps.Sessions, deps.Audit)
	adminHandler := handlers.NewAdminHandler(statsUC, deps.Menu, opts.StoreTimeout)

	staff := middleware.AdminAuth(deps.Config.JWTSecret, deps.Sessions)

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Restaurant API"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", staff, authHandler.Logout)

		// ------------------------------
		// RESERVATIONS
		// ------------------------------
		reservations := api.Group("/reservations")
		{
			reservations.POST("", reservationHandler.Create)
			reservations.GET("/availability", reservationHandler.Availability)

			reservations.GET("", staff, reservationHandler.List)
			reservations.GET("/date/:date", staff, reservationHandler.ListByDate)
			reservations.GET("/:id", staff, reservationHandler.Get)
			reservations.PATCH("/:id/status", staff, reservationHandler.UpdateStatus)
			reservations.PATCH("/:id", staff, reservationHandler.Update)
			reservations.DELETE("/:id", staff, reservationHandler.Delete)
		}

		// ------------------------------
		// MENU
		// ------------------------------
		menuGroup := api.Group("/menu")
		{
			menuGroup.GET("", menuHandler.List)
			menuGroup.GET("/category/:category", menuHandler.ListByCategory)
			menuGroup.GET("/:id", menuHandler.Get)

			menuGroup.POST("", staff, menuHandler.Create)
			menuGroup.PUT("/:id", staff, menuHandler.Update)
			menuGroup.DELETE("/:id", staff, menuHandler.Delete)
			menuGroup.PATCH("/:id/toggle-availability", staff, menuHandler.ToggleAvailability)
			menuGroup.POST("/:id/image", staff, menuHandler.UploadImage)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(staff)
		{
			admin.GET("/stats", adminHandler.Stats)

			if deps.DB != nil {
				auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
