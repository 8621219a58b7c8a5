package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-reservations/internal/httpresp"
	"github.com/BruksfildServices01/restaurant-reservations/internal/middleware"
	ucReservation "github.com/BruksfildServices01/restaurant-reservations/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	submit       *ucReservation.SubmitReservation
	transition   *ucReservation.TransitionReservation
	update       *ucReservation.UpdateReservation
	remove       *ucReservation.DeleteReservation
	get          *ucReservation.GetReservation
	list         *ucReservation.ListReservations
	availability *ucReservation.GetAvailability
}

func NewReservationHandler(
	submit *ucReservation.SubmitReservation,
	transition *ucReservation.TransitionReservation,
	update *ucReservation.UpdateReservation,
	remove *ucReservation.DeleteReservation,
	get *ucReservation.GetReservation,
	list *ucReservation.ListReservations,
	availability *ucReservation.GetAvailability,
) *ReservationHandler {
	return &ReservationHandler{
		submit:       submit,
		transition:   transition,
		update:       update,
		remove:       remove,
		get:          get,
		list:         list,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Guests          int    `json:"guests"`
	SpecialRequests string `json:"specialRequests"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateReservationRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	Guests          *int    `json:"guests"`
	SpecialRequests *string `json:"specialRequests"`
	Status          *string `json:"status"`
}

func (r UpdateReservationRequest) toPatch() (domain.Patch, error) {
	p := domain.Patch{
		GuestName:       r.Name,
		GuestEmail:      r.Email,
		GuestPhone:      r.Phone,
		Time:            r.Time,
		PartySize:       r.Guests,
		SpecialRequests: r.SpecialRequests,
		Status:          r.Status,
	}

	if r.Date != nil {
		d, err := domain.ParseDate(*r.Date)
		if err != nil {
			return domain.Patch{}, domain.ErrValidation("date")
		}
		p.Date = &d
	}

	return p, nil
}

// ======================================================
// GUEST
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c)
		return
	}

	res, err := h.submit.Execute(c.Request.Context(), ucReservation.SubmitReservationInput{
		GuestName:       req.Name,
		GuestEmail:      req.Email,
		GuestPhone:      req.Phone,
		Date:            req.Date,
		Time:            req.Time,
		PartySize:       req.Guests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, res)
}

func (h *ReservationHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		writeError(c, domain.ErrValidation("date"))
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// STAFF
// ======================================================

func (h *ReservationHandler) List(c *gin.Context) {
	list, err := h.list.Execute(c.Request.Context(), ucReservation.ListFilter{
		Status: c.Query("status"),
		Date:   c.Query("date"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Array(c, list)
}

func (h *ReservationHandler) ListByDate(c *gin.Context) {
	list, err := h.list.ByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Array(c, list)
}

func (h *ReservationHandler) Get(c *gin.Context) {
	res, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c)
		return
	}

	res, err := h.transition.Execute(
		c.Request.Context(),
		middleware.AdminUsername(c),
		c.Param("id"),
		req.Status,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Update(c *gin.Context) {
	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c)
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := h.update.Execute(
		c.Request.Context(),
		middleware.AdminUsername(c),
		c.Param("id"),
		patch,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(
		c.Request.Context(),
		middleware.AdminUsername(c),
		c.Param("id"),
	); err != nil {
		writeError(c, err)
		return
	}

	httpresp.Message(c, "Reservation deleted successfully")
}
