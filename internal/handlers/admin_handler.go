package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/restaurant-reservations/internal/domain/menu"
	"github.com/BruksfildServices01/restaurant-reservations/internal/dto"
	"github.com/BruksfildServices01/restaurant-reservations/internal/httpresp"
	ucReservation "github.com/BruksfildServices01/restaurant-reservations/internal/usecase/reservation"
)

type AdminHandler struct {
	reservationStats *ucReservation.ReservationStats
	menu             menu.Repository
	storeTimeout     time.Duration
}

func NewAdminHandler(
	stats *ucReservation.ReservationStats,
	menuRepo menu.Repository,
	storeTimeout time.Duration,
) *AdminHandler {
	if storeTimeout <= 0 {
		storeTimeout = defaultStoreTimeout
	}
	return &AdminHandler{
		reservationStats: stats,
		menu:             menuRepo,
		storeTimeout:     storeTimeout,
	}
}

// Stats feeds the staff dashboard counters.
func (h *AdminHandler) Stats(c *gin.Context) {
	reservations, err := h.reservationStats.Execute(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.storeTimeout)
	defer cancel()

	total, available, err := h.menu.Count(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.DashboardStatsDTO{
		Reservations: reservations,
		Menu: dto.MenuStats{
			Total:     total,
			Available: available,
		},
	})
}
